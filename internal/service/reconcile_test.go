package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/geocode/geonames"
)

// fakeGeocoder resolves cities from a fixed table keyed by
// lower(city)|country-code-insensitive country name. Unknown cities are
// not found; listed error cities fail the lookup.
type fakeGeocoder struct {
	known  map[string]geonames.Result // key: lower(city) + "|" + lower(country)
	broken map[string]error
	calls  int
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{
		known:  make(map[string]geonames.Result),
		broken: make(map[string]error),
	}
}

func geoKey(city, country string) string {
	return strings.ToLower(city) + "|" + strings.ToLower(country)
}

func (f *fakeGeocoder) add(city, country, canonical string, id int64) {
	f.known[geoKey(city, country)] = geonames.Result{
		Status:        geonames.StatusValid,
		CanonicalName: canonical,
		GeonameID:     id,
	}
}

func (f *fakeGeocoder) fail(city, country string, err error) {
	f.broken[geoKey(city, country)] = err
}

func (f *fakeGeocoder) ValidateCityInCountry(_ context.Context, cityName, countryName string) (geonames.Result, error) {
	f.calls++
	if err, ok := f.broken[geoKey(cityName, countryName)]; ok {
		return geonames.Result{}, err
	}
	if r, ok := f.known[geoKey(cityName, countryName)]; ok {
		return r, nil
	}
	return geonames.Result{Status: geonames.StatusNotFound}, nil
}

func (f *fakeGeocoder) BatchValidate(ctx context.Context, cities []domain.CityRegion, countries []string) ([]geonames.Validation, error) {
	var out []geonames.Validation
	for _, country := range countries {
		for _, city := range cities {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			v := geonames.Validation{City: city.Name, Country: country}
			v.Result, v.Err = f.ValidateCityInCountry(ctx, city.Name, country)
			out = append(out, v)
		}
	}
	return out, nil
}

// fakeSource serves a fixed set of approved submissions.
type fakeSource struct {
	subs []*domain.Submission
	err  error
}

func (f *fakeSource) ListApprovedSubmissions(_ context.Context) ([]*domain.Submission, error) {
	return f.subs, f.err
}

func approvedSubmission(id, brand string, countries []string, cities ...string) *domain.Submission {
	regions := make([]domain.CityRegion, len(cities))
	for i, c := range cities {
		regions[i] = domain.CityRegion{Name: c}
	}
	return &domain.Submission{
		ID:            id,
		BrandName:     brand,
		WebsiteURL:    "https://" + id + ".example.com",
		Countries:     countries,
		CitiesRegions: regions,
		Status:        domain.StatusApproved,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestProcessApprovedSubmission_CachesValidCities(t *testing.T) {
	geo := newFakeGeocoder()
	geo.add("madrid", "Spain", "Madrid", 3117735)
	geo.add("barcelona", "Spain", "Barcelona", 3128760)

	svc := NewReconcileService(&fakeSource{}, geo, nil, testLogger())
	sub := approvedSubmission("sub-1", "Madrid Rooftops", []string{"Spain"}, "madrid", "barcelona", "nowhere")

	require.NoError(t, svc.ProcessApprovedSubmission(context.Background(), sub))

	cities := svc.Cache().CitiesForCountry("Spain")
	require.Len(t, cities, 2)
	assert.Equal(t, "Barcelona", cities[0].CanonicalName)
	assert.Equal(t, "Madrid", cities[1].CanonicalName)
}

func TestProcessApprovedSubmission_EmptyCitiesNoCalls(t *testing.T) {
	geo := newFakeGeocoder()
	svc := NewReconcileService(&fakeSource{}, geo, nil, testLogger())

	sub := approvedSubmission("sub-1", "No Cities Yet", []string{"Spain"})
	require.NoError(t, svc.ProcessApprovedSubmission(context.Background(), sub))

	assert.Equal(t, 0, geo.calls, "no declared cities means no geocoder traffic")
	assert.Equal(t, 0, svc.Cache().Len())
}

func TestProcessApprovedSubmission_DeduplicatesAcrossSubmissions(t *testing.T) {
	geo := newFakeGeocoder()
	geo.add("madrid", "Spain", "Madrid", 3117735)
	geo.add("madrid city", "Spain", "Madrid", 3117735)

	svc := NewReconcileService(&fakeSource{}, geo, nil, testLogger())

	first := approvedSubmission("sub-1", "A", []string{"Spain"}, "Madrid")
	second := approvedSubmission("sub-2", "B", []string{"Spain"}, "Madrid City")

	require.NoError(t, svc.ProcessApprovedSubmission(context.Background(), first))
	require.NoError(t, svc.ProcessApprovedSubmission(context.Background(), second))

	assert.Equal(t, 1, svc.Cache().Len(), "same geoname id resolves to one cached city")
}

func TestProcessAllApprovedSubmissions_ContinuesPastFailures(t *testing.T) {
	geo := newFakeGeocoder()
	geo.add("lisbon", "Portugal", "Lisbon", 2267057)
	geo.add("porto", "Portugal", "Porto", 2735943)

	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"Portugal"}, "Lisbon"),
		approvedSubmission("sub-2", "B", []string{"Portugal"}, "Porto"),
		approvedSubmission("sub-3", "C", []string{"Portugal"}, "Faro"),
	}}

	svc := NewReconcileService(source, geo, nil, testLogger())

	report, err := svc.ProcessAllApprovedSubmissions(context.Background())
	require.NoError(t, err)

	// Lookup errors stay inside BatchValidate, so every submission is
	// processed; Faro just contributes nothing.
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 2, svc.Cache().Len())
}

func TestProcessAllApprovedSubmissions_CancellationAborts(t *testing.T) {
	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"Portugal"}, "Lisbon"),
	}}
	svc := NewReconcileService(source, newFakeGeocoder(), nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProcessAllApprovedSubmissions(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestActiveCountries_NormalizedAndSorted(t *testing.T) {
	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"usa", "Portugal"}),
		approvedSubmission("sub-2", "B", []string{"United States", "spain"}),
	}}
	svc := NewReconcileService(source, newFakeGeocoder(), nil, testLogger())

	countries, err := svc.ActiveCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Portugal", "Spain", "United States"}, countries)
}

func TestSubmissionsForCountry_AliasAware(t *testing.T) {
	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"USA"}),
		approvedSubmission("sub-2", "B", []string{"United States"}),
		approvedSubmission("sub-3", "C", []string{"Portugal"}),
	}}
	svc := NewReconcileService(source, newFakeGeocoder(), nil, testLogger())

	subs, err := svc.SubmissionsForCountry(context.Background(), "usa")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "sub-1", subs[0].ID)
	assert.Equal(t, "sub-2", subs[1].ID)
}

func TestSubmissionsForCity_MatchesRawDeclaredName(t *testing.T) {
	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"United States"}, "NYC"),
		approvedSubmission("sub-2", "B", []string{"United States"}, "New York"),
	}}
	svc := NewReconcileService(source, newFakeGeocoder(), nil, testLogger())

	subs, err := svc.SubmissionsForCity(context.Background(), "nyc", "USA")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub-1", subs[0].ID, "matching is raw declared string, not canonical")
}

func TestCitySubmissionCounts(t *testing.T) {
	geo := newFakeGeocoder()
	geo.add("madrid", "Spain", "Madrid", 3117735)
	geo.add("madrid centro", "Spain", "Madrid", 3117735)
	geo.add("barcelona", "Spain", "Barcelona", 3128760)

	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"Spain"}, "Madrid", "Barcelona"),
		// Declares Madrid twice under different spellings; counts once.
		approvedSubmission("sub-2", "B", []string{"Spain"}, "Madrid", "Madrid Centro"),
		approvedSubmission("sub-3", "C", []string{"Spain"}, "Atlantisville"),
	}}
	svc := NewReconcileService(source, geo, nil, testLogger())

	counts, err := svc.CitySubmissionCounts(context.Background(), "Spain")
	require.NoError(t, err)

	assert.Equal(t, 2, counts["Madrid"])
	assert.Equal(t, 1, counts["Barcelona"])
	assert.NotContains(t, counts, "Atlantisville")
}

func TestValidatedCitiesForCountry_Sorted(t *testing.T) {
	geo := newFakeGeocoder()
	geo.add("porto", "Portugal", "Porto", 2735943)
	geo.add("lisbon", "Portugal", "Lisbon", 2267057)

	source := &fakeSource{subs: []*domain.Submission{
		approvedSubmission("sub-1", "A", []string{"Portugal"}, "porto", "lisbon"),
	}}
	svc := NewReconcileService(source, geo, nil, testLogger())

	cities, err := svc.ValidatedCitiesForCountry(context.Background(), "Portugal")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lisbon", "Porto"}, cities)
}
