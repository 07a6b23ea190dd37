// Package service provides the business logic layer for the DirectStay
// directory: the submission workflow, the geography reconciliation
// pipeline, and listing search.
package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/directstay/directstay-server/internal/country"
	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/errors"
	"github.com/directstay/directstay-server/internal/geocode/geonames"
	"github.com/directstay/directstay-server/internal/store"
)

// Geocoder validates free-text city names against countries. Implemented
// by the GeoNames client; mocked in tests.
type Geocoder interface {
	ValidateCityInCountry(ctx context.Context, cityName, countryName string) (geonames.Result, error)
	BatchValidate(ctx context.Context, cities []domain.CityRegion, countries []string) ([]geonames.Validation, error)
}

// ReconcileService runs the submission geography reconciliation pipeline:
// it validates declared city names against declared countries, maintains
// the session city cache, and answers the aggregate queries behind the
// country and city navigation pages.
//
// Aggregates are recomputed from the submission source on every call.
// Cost therefore scales with submissions x cities per query; fine for a
// low-traffic directory, and the recompute keeps results correct without
// any invalidation machinery.
type ReconcileService struct {
	source   store.SubmissionSource
	geocoder Geocoder
	cache    *CityCache
	logger   *slog.Logger
}

// NewReconcileService creates a reconciliation service. The cache is
// injected so callers control its lifetime and tests can inspect it.
func NewReconcileService(source store.SubmissionSource, geocoder Geocoder, cache *CityCache, logger *slog.Logger) *ReconcileService {
	if cache == nil {
		cache = NewCityCache()
	}
	return &ReconcileService{
		source:   source,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
	}
}

// Cache exposes the session cache for inspection.
func (s *ReconcileService) Cache() *CityCache {
	return s.cache
}

// ProcessApprovedSubmission validates one submission's declared cities
// against its declared countries and folds the valid results into the
// session cache. A submission without cities contributes nothing and is
// skipped without any network calls.
//
// Failures never propagate: a lookup error means the affected pair
// contributes nothing this round, and is logged.
func (s *ReconcileService) ProcessApprovedSubmission(ctx context.Context, sub *domain.Submission) error {
	if len(sub.CitiesRegions) == 0 {
		s.logger.Debug("submission has no cities to reconcile", "id", sub.ID)
		return nil
	}
	if len(sub.Countries) == 0 {
		s.logger.Warn("submission has no declared countries, skipping", "id", sub.ID)
		return nil
	}

	validations, err := s.geocoder.BatchValidate(ctx, sub.CitiesRegions, sub.Countries)
	if err != nil {
		// BatchValidate only fails outright on cancellation.
		return err
	}

	added := 0
	for _, v := range validations {
		if v.Err != nil || !v.Result.Valid() {
			continue
		}
		resolved := domain.ResolvedCity{
			Name:          v.City,
			Country:       country.NormalizeDisplayName(v.Country),
			Valid:         true,
			CanonicalName: v.Result.CanonicalName,
			GeonameID:     v.Result.GeonameID,
		}
		if s.cache.Add(resolved) {
			added++
		}
	}

	s.logger.Info("reconciled submission",
		"id", sub.ID,
		"pairs", len(validations),
		"cached_new", added,
	)
	return nil
}

// Report summarizes a full reconciliation run.
type Report struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// ProcessAllApprovedSubmissions reconciles every approved submission
// sequentially, continuing past individual failures. The geocoder's token
// bucket paces the outbound calls. Cancellation is honored between
// submissions and aborts the run.
func (s *ReconcileService) ProcessAllApprovedSubmissions(ctx context.Context) (Report, error) {
	var report Report

	subs, err := s.source.ListApprovedSubmissions(ctx)
	if err != nil {
		return report, errors.Internal("list approved submissions", err)
	}

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.ProcessApprovedSubmission(ctx, sub); err != nil {
			if ctx.Err() != nil {
				return report, err
			}
			report.Failed++
			s.logger.Error("failed to reconcile submission",
				"id", sub.ID,
				"error", err,
			)
			continue
		}
		report.Processed++
	}

	s.logger.Info("reconciliation run complete",
		"processed", report.Processed,
		"failed", report.Failed,
	)
	return report, nil
}

// ActiveCountries returns the alphabetically sorted, deduplicated set of
// normalized country names declared across all approved submissions.
func (s *ReconcileService) ActiveCountries(ctx context.Context) ([]string, error) {
	subs, err := s.source.ListApprovedSubmissions(ctx)
	if err != nil {
		return nil, errors.Internal("list approved submissions", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, sub := range subs {
		for _, declared := range sub.Countries {
			name := country.NormalizeDisplayName(declared)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// SubmissionsForCountry returns approved submissions declaring the given
// country. Matching is alias-aware on both sides, so "usa" matches
// submissions stored as "USA" or "United States" equally.
func (s *ReconcileService) SubmissionsForCountry(ctx context.Context, countryName string) ([]*domain.Submission, error) {
	subs, err := s.source.ListApprovedSubmissions(ctx)
	if err != nil {
		return nil, errors.Internal("list approved submissions", err)
	}

	var matched []*domain.Submission
	for _, sub := range subs {
		for _, declared := range sub.Countries {
			if country.Equivalent(declared, countryName) {
				matched = append(matched, sub)
				break
			}
		}
	}
	return matched, nil
}

// SubmissionsForCity narrows SubmissionsForCountry to submissions whose
// declared city list contains cityName.
//
// The check is against the raw declared string, not the validated
// canonical name: a host who typed "NYC" is found under "nyc" but not
// under "New York", even though city counts use canonical names. This
// mirrors the directory's historical behavior; see DESIGN.md.
func (s *ReconcileService) SubmissionsForCity(ctx context.Context, cityName, countryName string) ([]*domain.Submission, error) {
	inCountry, err := s.SubmissionsForCountry(ctx, countryName)
	if err != nil {
		return nil, err
	}

	var matched []*domain.Submission
	for _, sub := range inCountry {
		if sub.DeclaresCity(cityName) {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}

// CitySubmissionCounts returns, for every validated city in the country,
// how many approved submissions declare it. Validation is recomputed for
// every call rather than read from the session cache, trading repeat
// geocoder traffic for always-fresh results. Each submission increments a
// city at most once, however many times it declared it.
func (s *ReconcileService) CitySubmissionCounts(ctx context.Context, countryName string) (map[string]int, error) {
	inCountry, err := s.SubmissionsForCountry(ctx, countryName)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, sub := range inCountry {
		if len(sub.CitiesRegions) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		validations, err := s.geocoder.BatchValidate(ctx, sub.CitiesRegions, []string{countryName})
		if err != nil {
			return nil, err
		}

		// Count each canonical city once per submission.
		seen := make(map[string]bool)
		for _, v := range validations {
			if v.Err != nil || !v.Result.Valid() {
				continue
			}
			key := strings.ToLower(v.Result.CanonicalName)
			if seen[key] {
				continue
			}
			seen[key] = true
			counts[v.Result.CanonicalName]++
		}
	}

	return counts, nil
}

// ValidatedCitiesForCountry returns the alphabetically sorted canonical
// city names with at least one approved submission in the country.
func (s *ReconcileService) ValidatedCitiesForCountry(ctx context.Context, countryName string) ([]string, error) {
	counts, err := s.CitySubmissionCounts(ctx, countryName)
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(counts))
	for name, count := range counts {
		if count > 0 {
			cities = append(cities, name)
		}
	}
	sort.Strings(cities)
	return cities, nil
}
