// Package domain contains the core types for the DirectStay directory.
package domain

import "time"

// SubmissionStatus tracks where a submission is in the review workflow.
type SubmissionStatus string

// Submission statuses.
const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PlanTier is the listing plan a host signed up for.
type PlanTier string

// Plan tiers.
const (
	PlanBasic    PlanTier = "basic"
	PlanFeatured PlanTier = "featured"
)

// Valid reports whether the tier is one of the known values.
func (p PlanTier) Valid() bool {
	return p == PlanBasic || p == PlanFeatured
}

// CityRegion is a city or region a host declared on their submission.
// GeonameID is zero until the name has been validated against GeoNames.
type CityRegion struct {
	Name      string `json:"name"`
	GeonameID int64  `json:"geoname_id,omitempty"`
}

// Submission is a direct-booking site listed (or pending listing) in the
// directory. Countries and CitiesRegions hold the host's free-text input;
// geography validation happens downstream in the reconciliation pipeline.
type Submission struct {
	ID            string           `json:"id"`
	BrandName     string           `json:"brand_name"`
	WebsiteURL    string           `json:"website_url"`
	Email         string           `json:"email,omitempty"`
	Description   string           `json:"description,omitempty"`
	Countries     []string         `json:"countries"`
	CitiesRegions []CityRegion     `json:"cities_regions,omitempty"`
	Status        SubmissionStatus `json:"status"`
	PlanTier      PlanTier         `json:"plan_tier"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// InitTimestamps sets creation and update times to now.
func (s *Submission) InitTimestamps() {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
}

// Touch updates the modification time.
func (s *Submission) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// CanTransitionTo reports whether the review workflow allows moving from
// the current status to next. Approved and rejected are terminal; an admin
// must reset a submission to pending before re-reviewing it.
func (s *Submission) CanTransitionTo(next SubmissionStatus) bool {
	if s.Status == next {
		return false
	}
	switch s.Status {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved, StatusRejected:
		return next == StatusPending
	}
	return false
}

// DeclaresCountry reports whether the submission lists the given country
// name verbatim, ignoring case. Alias-aware matching lives in the country
// package; this is the raw check.
func (s *Submission) DeclaresCountry(name string) bool {
	for _, c := range s.Countries {
		if equalFold(c, name) {
			return true
		}
	}
	return false
}

// DeclaresCity reports whether the submission lists the given city name
// verbatim, ignoring case. This intentionally checks the raw declared
// string, not the validated canonical name.
func (s *Submission) DeclaresCity(name string) bool {
	for _, cr := range s.CitiesRegions {
		if equalFold(cr.Name, name) {
			return true
		}
	}
	return false
}
