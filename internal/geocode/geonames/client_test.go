package geonames

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/directstay/directstay-server/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		Username: "test",
		BaseURL:  server.URL,
		RPS:      1000, // no pacing in tests
		Burst:    1000,
	}, slog.New(slog.DiscardHandler))

	return client, server
}

func TestResolveCountryCode(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		wantCode string
		wantOK   bool
	}{
		{"canonical name", "Spain", "ES", true},
		{"lowercase alias", "usa", "US", true},
		{"uppercase alias", "UK", "GB", true},
		{"full name", "United States", "US", true},
		{"unknown country", "Atlantis", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ResolveCountryCode(tt.country)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestSearchPlaces_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, "", ErrRateLimited},
		{"server error", http.StatusInternalServerError, "", ErrServer},
		{"bad request", http.StatusNotFound, "", ErrBadRequest},
		{
			"in-band auth failure",
			http.StatusOK,
			`{"status": {"message": "user does not exist.", "value": 10}}`,
			ErrUnauthorized,
		},
		{
			"in-band quota exceeded",
			http.StatusOK,
			`{"status": {"message": "the hourly limit has been exceeded.", "value": 19}}`,
			ErrQuota,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			_, err := client.SearchPlaces(context.Background(), "Madrid", "ES")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var geoErr *Error
			require.ErrorAs(t, err, &geoErr)
			assert.Equal(t, "search", geoErr.Op)
			assert.Equal(t, "Madrid", geoErr.Query)
		})
	}
}

func TestValidateCityInCountry_ExactMatchPreferred(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "P", r.URL.Query().Get("featureClass"))
		w.Write([]byte(`{
			"totalResultsCount": 2,
			"geonames": [
				{"geonameId": 1, "name": "San Jose Village", "countryCode": "US"},
				{"geonameId": 2, "name": "San Jose", "countryCode": "US"}
			]
		}`))
	})

	result, err := client.ValidateCityInCountry(context.Background(), "san jose", "United States")
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, "San Jose", result.CanonicalName)
	assert.Equal(t, int64(2), result.GeonameID)
}

func TestValidateCityInCountry_FirstCandidateFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"totalResultsCount": 2,
			"geonames": [
				{"geonameId": 10, "name": "Firstville", "countryCode": "US"},
				{"geonameId": 11, "name": "Secondton", "countryCode": "US"}
			]
		}`))
	})

	result, err := client.ValidateCityInCountry(context.Background(), "Thirdopolis", "USA")
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, "Firstville", result.CanonicalName)
	assert.Equal(t, int64(10), result.GeonameID)
}

func TestValidateCityInCountry_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"totalResultsCount": 0, "geonames": []}`))
	})

	result, err := client.ValidateCityInCountry(context.Background(), "Nowhereville", "Spain")
	require.NoError(t, err)
	assert.False(t, result.Valid())
	assert.Equal(t, StatusNotFound, result.Status)
}

func TestValidateCityInCountry_UnsupportedCountrySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"geonames": []}`))
	})

	result, err := client.ValidateCityInCountry(context.Background(), "Anywhere", "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, StatusUnsupportedCountry, result.Status)
	assert.False(t, result.Valid())
	assert.Equal(t, int32(0), calls.Load(), "unsupported country must not spend quota")
}

func TestBatchValidate_GroupsByCountryPreservingCityOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		w.Write([]byte(`{"geonames": [{"geonameId": 1, "name": "` + name + `"}]}`))
	})

	cities := []domain.CityRegion{{Name: "Lisbon"}, {Name: "Porto"}}
	countries := []string{"Portugal", "Spain"}

	validations, err := client.BatchValidate(context.Background(), cities, countries)
	require.NoError(t, err)
	require.Len(t, validations, 4)

	assert.Equal(t, "Portugal", validations[0].Country)
	assert.Equal(t, "Lisbon", validations[0].City)
	assert.Equal(t, "Portugal", validations[1].Country)
	assert.Equal(t, "Porto", validations[1].City)
	assert.Equal(t, "Spain", validations[2].Country)
	assert.Equal(t, "Lisbon", validations[2].City)
	assert.Equal(t, "Spain", validations[3].Country)
	assert.Equal(t, "Porto", validations[3].City)
}

func TestBatchValidate_RecordsPerPairErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"geonames": [{"geonameId": 7, "name": "Porto"}]}`))
	})

	cities := []domain.CityRegion{{Name: "Lisbon"}, {Name: "Porto"}}

	validations, err := client.BatchValidate(context.Background(), cities, []string{"Portugal"})
	require.NoError(t, err, "per-pair failures must not abort the batch")
	require.Len(t, validations, 2)

	assert.Error(t, validations[0].Err)
	assert.ErrorIs(t, validations[0].Err, ErrServer)
	require.NoError(t, validations[1].Err)
	assert.Equal(t, "Porto", validations[1].Result.CanonicalName)
}

func TestBatchValidate_CancellationAborts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"geonames": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.BatchValidate(ctx, []domain.CityRegion{{Name: "Lisbon"}}, []string{"Portugal"})
	assert.True(t, errors.Is(err, context.Canceled))
}
