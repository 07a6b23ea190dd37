package domain

import "strings"

// ResolvedCity is the outcome of validating one declared city name against
// one declared country. When Valid is false the canonical name and geoname
// id are absent.
type ResolvedCity struct {
	Name          string `json:"name"`           // host's declared city name
	Country       string `json:"country"`        // declared country name
	Valid         bool   `json:"valid"`          // whether GeoNames recognized it
	CanonicalName string `json:"canonical_name"` // e.g. "NYC" -> "New York"
	GeonameID     int64  `json:"geoname_id"`
}

// SameCity reports whether two resolved cities refer to the same place,
// matching by geoname id when both are known, otherwise by
// case-insensitive canonical name. This is the dedup rule for the
// reconciliation session cache.
func (r ResolvedCity) SameCity(other ResolvedCity) bool {
	if r.GeonameID != 0 && other.GeonameID != 0 {
		return r.GeonameID == other.GeonameID
	}
	return equalFold(r.CanonicalName, other.CanonicalName)
}

// CountryAggregate is a derived per-country rollup for navigation pages.
// It is computed on demand and never stored.
type CountryAggregate struct {
	Country         string `json:"country"` // canonical display name
	SubmissionCount int    `json:"submission_count"`
}

// CityAggregate is a derived per-city rollup. A city appears only when at
// least one approved submission's declared name validated against the
// country.
type CityAggregate struct {
	City            string `json:"city"` // canonical validated name
	Country         string `json:"country"`
	SubmissionCount int    `json:"submission_count"`
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
