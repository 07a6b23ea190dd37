// Package geonames provides a rate-limited client for the GeoNames
// place-search API, used to validate host-declared city names against
// their declared countries.
package geonames

// Place is a populated place returned by the GeoNames search endpoint.
type Place struct {
	GeonameID   int64  `json:"geoname_id"`
	Name        string `json:"name"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	Population  int64  `json:"population,omitempty"`
}

// Status classifies the outcome of validating a (city, country) pair.
// Transport and upstream failures are reported as errors, not statuses,
// so callers can retry an outage without treating it as "city does not
// exist".
type Status string

// Validation statuses.
const (
	StatusValid              Status = "valid"
	StatusNotFound           Status = "not_found"
	StatusUnsupportedCountry Status = "unsupported_country"
)

// Result is the outcome of validating one city name within one country.
// CanonicalName and GeonameID are set only when Status is StatusValid.
type Result struct {
	Status        Status `json:"status"`
	CanonicalName string `json:"canonical_name,omitempty"`
	GeonameID     int64  `json:"geoname_id,omitempty"`
}

// Valid reports whether the result is a successful validation.
func (r Result) Valid() bool {
	return r.Status == StatusValid
}

// Validation pairs a batch input with its result. Err is set when the
// lookup itself failed (service outage, malformed response); Result is
// then zero-valued.
type Validation struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Result  Result `json:"result"`
	Err     error  `json:"-"`
}

// searchResponse is the raw GeoNames searchJSON payload.
type searchResponse struct {
	TotalResultsCount int         `json:"totalResultsCount"`
	Geonames          []rawPlace  `json:"geonames"`
	Status            *rawStatus  `json:"status,omitempty"`
}

// rawPlace is a single entry in the geonames array.
type rawPlace struct {
	GeonameID   int64  `json:"geonameId"`
	Name        string `json:"name"`
	ToponymName string `json:"toponymName"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	FeatureCl   string `json:"fcl"`
	Population  int64  `json:"population"`
}

// rawStatus is the in-band error object GeoNames returns with HTTP 200.
// Value codes: 10 = invalid credentials, 18/19/20 = quota exceeded.
type rawStatus struct {
	Message string `json:"message"`
	Value   int    `json:"value"`
}
