package geonames

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/directstay/directstay-server/internal/country"
	"github.com/directstay/directstay-server/internal/domain"
)

// ResolveCountryCode resolves a country display name to its ISO alpha-2
// code, accepting known aliases. The second return is false when the
// country is not in the supported table — an expected miss, not an error.
func ResolveCountryCode(name string) (string, bool) {
	return country.Code(country.Canonical(name))
}

// SearchPlaces queries the GeoNames search endpoint for populated places
// matching name within the given ISO alpha-2 country code. Results arrive
// in GeoNames relevance order.
func (c *Client) SearchPlaces(ctx context.Context, name, countryCode string) ([]Place, error) {
	if err := c.wait(ctx); err != nil {
		return nil, wrapError("search", name, countryCode, fmt.Errorf("rate limit: %w", err))
	}

	params := url.Values{}
	params.Set("name", name)
	params.Set("country", countryCode)
	params.Set("featureClass", "P") // populated places only
	params.Set("maxRows", strconv.Itoa(maxRows))
	params.Set("username", c.user)

	searchURL := c.baseURL + "/searchJSON?" + params.Encode()

	c.logger.Debug("searching GeoNames",
		"name", name,
		"country", countryCode,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, wrapError("search", name, countryCode, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "DirectStay/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError("search", name, countryCode, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, wrapError("search", name, countryCode, ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, wrapError("search", name, countryCode, ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, wrapError("search", name, countryCode, ErrServer)
	case resp.StatusCode >= 400:
		return nil, wrapError("search", name, countryCode, ErrBadRequest)
	default:
		return nil, wrapError("search", name, countryCode, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, wrapError("search", name, countryCode, fmt.Errorf("parse response: %w", err))
	}

	// GeoNames reports auth and quota problems in-band with HTTP 200.
	if searchResp.Status != nil {
		return nil, wrapError("search", name, countryCode, statusError(searchResp.Status))
	}

	c.logger.Debug("GeoNames search results",
		"name", name,
		"country", countryCode,
		"count", len(searchResp.Geonames),
	)

	places := make([]Place, 0, len(searchResp.Geonames))
	for i := range searchResp.Geonames {
		g := &searchResp.Geonames[i]
		places = append(places, Place{
			GeonameID:   g.GeonameID,
			Name:        g.Name,
			CountryName: g.CountryName,
			CountryCode: g.CountryCode,
			Population:  g.Population,
		})
	}

	return places, nil
}

// ValidateCityInCountry checks whether cityName is a recognized populated
// place in countryName. An unsupported country short-circuits with no
// network call so quota is not spent on lookups that cannot succeed.
//
// Candidate selection prefers an exact case-insensitive name match; when
// none exists the first candidate wins, trusting the remote relevance
// ranking rather than re-deriving one locally.
func (c *Client) ValidateCityInCountry(ctx context.Context, cityName, countryName string) (Result, error) {
	code, ok := ResolveCountryCode(countryName)
	if !ok {
		return Result{Status: StatusUnsupportedCountry}, nil
	}

	places, err := c.SearchPlaces(ctx, cityName, code)
	if err != nil {
		return Result{}, err
	}
	if len(places) == 0 {
		return Result{Status: StatusNotFound}, nil
	}

	best := places[0]
	for _, p := range places {
		if strings.EqualFold(p.Name, cityName) {
			best = p
			break
		}
	}

	return Result{
		Status:        StatusValid,
		CanonicalName: best.Name,
		GeonameID:     best.GeonameID,
	}, nil
}

// BatchValidate validates every (city, country) pair in the cross product,
// sequentially; the client's token bucket paces the calls. Results are
// grouped by country, preserving input city order within each group.
// Per-pair lookup failures are recorded on the Validation and do not stop
// the batch; only context cancellation aborts it.
func (c *Client) BatchValidate(ctx context.Context, cities []domain.CityRegion, countries []string) ([]Validation, error) {
	validations := make([]Validation, 0, len(cities)*len(countries))

	for _, countryName := range countries {
		for _, city := range cities {
			if err := ctx.Err(); err != nil {
				return validations, err
			}

			v := Validation{City: city.Name, Country: countryName}
			v.Result, v.Err = c.ValidateCityInCountry(ctx, city.Name, countryName)
			if v.Err != nil {
				c.logger.Warn("city validation failed",
					"city", city.Name,
					"country", countryName,
					"error", v.Err,
				)
			}
			validations = append(validations, v)
		}
	}

	return validations, nil
}

// statusError maps a GeoNames in-band status object to a sentinel error.
func statusError(s *rawStatus) error {
	switch s.Value {
	case 10:
		return fmt.Errorf("%w: %s", ErrUnauthorized, s.Message)
	case 18, 19, 20:
		return fmt.Errorf("%w: %s", ErrQuota, s.Message)
	default:
		return fmt.Errorf("geonames status %d: %s", s.Value, s.Message)
	}
}
