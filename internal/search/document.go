// Package search provides full-text search over the approved listing
// directory using Bleve. Travelers search by brand name, country, or city;
// country and city fields are also indexed as keywords for exact filters.
package search

import (
	"strings"

	"github.com/directstay/directstay-server/internal/domain"
)

// ListingDocument is the Bleve document for one approved submission.
//
// City names are denormalized twice: the raw declared strings (what the
// host typed) and the validated canonical names when known, so a search
// for "New York" finds a listing declared as "NYC" once it has been
// reconciled.
type ListingDocument struct {
	ID          string   `json:"id"`
	BrandName   string   `json:"brand_name"`
	Description string   `json:"description,omitempty"`
	WebsiteURL  string   `json:"website_url"`
	Countries   []string `json:"countries,omitempty"`
	Cities      []string `json:"cities,omitempty"`
	PlanTier    string   `json:"plan_tier"`
	CreatedAt   int64    `json:"created_at"` // Unix millis, for recency sort
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping (Bleve defaults to Go field names otherwise).
func (d *ListingDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"brand_name": d.BrandName,
		"website_url": d.WebsiteURL,
		"plan_tier":  d.PlanTier,
		"created_at": d.CreatedAt,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Countries) > 0 {
		m["countries"] = d.Countries
	}
	if len(d.Cities) > 0 {
		m["cities"] = d.Cities
	}
	return m
}

// DocumentFromSubmission builds the index document for a submission.
// Canonical city names from reconciliation may be supplied to enrich the
// searchable city list; duplicates are collapsed case-insensitively.
func DocumentFromSubmission(sub *domain.Submission, canonicalCities []string) *ListingDocument {
	cities := make([]string, 0, len(sub.CitiesRegions)+len(canonicalCities))
	seen := make(map[string]bool)

	appendCity := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		cities = append(cities, strings.TrimSpace(name))
	}

	for _, cr := range sub.CitiesRegions {
		appendCity(cr.Name)
	}
	for _, name := range canonicalCities {
		appendCity(name)
	}

	return &ListingDocument{
		ID:          sub.ID,
		BrandName:   sub.BrandName,
		Description: sub.Description,
		WebsiteURL:  sub.WebsiteURL,
		Countries:   sub.Countries,
		Cities:      cities,
		PlanTier:    string(sub.PlanTier),
		CreatedAt:   sub.CreatedAt.UnixMilli(),
	}
}
