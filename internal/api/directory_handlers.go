package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/directstay/directstay-server/internal/search"
)

func (s *Server) registerDirectoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listActiveCountries",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/countries",
		Summary:     "List active countries",
		Description: "Returns canonical country names with at least one approved listing",
		Tags:        []string{"Directory"},
	}, s.handleListActiveCountries)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCountrySubmissions",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/countries/{country}/submissions",
		Summary:     "List listings in a country",
		Description: "Returns approved listings that declared the given country",
		Tags:        []string{"Directory"},
	}, s.handleListCountrySubmissions)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCountryCities",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/countries/{country}/cities",
		Summary:     "List validated cities in a country",
		Description: "Returns canonical city names with at least one approved listing",
		Tags:        []string{"Directory"},
	}, s.handleListCountryCities)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCityCounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/countries/{country}/city-counts",
		Summary:     "Get listing counts per city",
		Description: "Returns the number of approved listings per validated city",
		Tags:        []string{"Directory"},
	}, s.handleGetCityCounts)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCitySubmissions",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/countries/{country}/cities/{city}/submissions",
		Summary:     "List listings in a city",
		Description: "Returns approved listings that declared the given city",
		Tags:        []string{"Directory"},
	}, s.handleListCitySubmissions)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchDirectory",
		Method:      http.MethodGet,
		Path:        "/api/v1/directory/search",
		Summary:     "Search the directory",
		Description: "Full-text search across approved listings",
		Tags:        []string{"Directory"},
	}, s.handleSearchDirectory)
}

// === DTOs ===

type ListCountriesResponse struct {
	Countries []string `json:"countries" doc:"Canonical country names"`
}

type ListCountriesOutput struct {
	Body ListCountriesResponse
}

type CountryPathInput struct {
	Country string `path:"country" maxLength:"80" doc:"Country name or alias"`
}

type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions" doc:"Matching listings"`
	Total       int                  `json:"total" doc:"Number of matches"`
}

type SubmissionListOutput struct {
	Body SubmissionListResponse
}

type ListCitiesResponse struct {
	Country string   `json:"country" doc:"Canonical country name"`
	Cities  []string `json:"cities" doc:"Validated canonical city names"`
}

type ListCitiesOutput struct {
	Body ListCitiesResponse
}

// CityCount pairs a canonical city name with its listing count.
type CityCount struct {
	City  string `json:"city" doc:"Canonical city name"`
	Count int    `json:"count" doc:"Approved listings declaring this city"`
}

type CityCountsResponse struct {
	Country string      `json:"country" doc:"Canonical country name"`
	Cities  []CityCount `json:"cities" doc:"Per-city listing counts"`
}

type CityCountsOutput struct {
	Body CityCountsResponse
}

type CityPathInput struct {
	Country string `path:"country" maxLength:"80" doc:"Country name or alias"`
	City    string `path:"city" maxLength:"120" doc:"City name as declared by hosts"`
}

type SearchDirectoryInput struct {
	Query   string `query:"q" maxLength:"200" doc:"Search text"`
	Country string `query:"country" maxLength:"80" doc:"Optional country filter"`
	City    string `query:"city" maxLength:"120" doc:"Optional city filter"`
	Limit   int    `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Max results"`
	Offset  int    `query:"offset" minimum:"0" doc:"Pagination offset"`
}

type SearchHitResult struct {
	ID        string   `json:"id" doc:"Submission ID"`
	Score     float64  `json:"score" doc:"Relevance score"`
	BrandName string   `json:"brand_name" doc:"Brand or property name"`
	Countries []string `json:"countries,omitempty" doc:"Declared countries"`
	Cities    []string `json:"cities,omitempty" doc:"Declared and canonical cities"`
	PlanTier  string   `json:"plan_tier" doc:"Listing plan tier"`
}

type SearchDirectoryResponse struct {
	Query  string            `json:"query" doc:"Original search text"`
	Total  uint64            `json:"total" doc:"Total matches"`
	TookMs int64             `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchHitResult `json:"hits" doc:"Matching listings"`
}

type SearchDirectoryOutput struct {
	Body SearchDirectoryResponse
}

// === Handlers ===

func (s *Server) handleListActiveCountries(ctx context.Context, _ *struct{}) (*ListCountriesOutput, error) {
	countries, err := s.services.Reconcile.ActiveCountries(ctx)
	if err != nil {
		return nil, err
	}

	return &ListCountriesOutput{Body: ListCountriesResponse{Countries: countries}}, nil
}

func (s *Server) handleListCountrySubmissions(ctx context.Context, input *CountryPathInput) (*SubmissionListOutput, error) {
	subs, err := s.services.Reconcile.SubmissionsForCountry(ctx, input.Country)
	if err != nil {
		return nil, err
	}

	resp := make([]SubmissionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = mapSubmissionResponse(sub)
	}

	return &SubmissionListOutput{Body: SubmissionListResponse{Submissions: resp, Total: len(resp)}}, nil
}

func (s *Server) handleListCountryCities(ctx context.Context, input *CountryPathInput) (*ListCitiesOutput, error) {
	cities, err := s.services.Reconcile.ValidatedCitiesForCountry(ctx, input.Country)
	if err != nil {
		return nil, err
	}

	return &ListCitiesOutput{Body: ListCitiesResponse{
		Country: input.Country,
		Cities:  cities,
	}}, nil
}

func (s *Server) handleGetCityCounts(ctx context.Context, input *CountryPathInput) (*CityCountsOutput, error) {
	counts, err := s.services.Reconcile.CitySubmissionCounts(ctx, input.Country)
	if err != nil {
		return nil, err
	}

	cities := make([]CityCount, 0, len(counts))
	for city, count := range counts {
		cities = append(cities, CityCount{City: city, Count: count})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].City < cities[j].City })

	return &CityCountsOutput{Body: CityCountsResponse{
		Country: input.Country,
		Cities:  cities,
	}}, nil
}

func (s *Server) handleListCitySubmissions(ctx context.Context, input *CityPathInput) (*SubmissionListOutput, error) {
	subs, err := s.services.Reconcile.SubmissionsForCity(ctx, input.City, input.Country)
	if err != nil {
		return nil, err
	}

	resp := make([]SubmissionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = mapSubmissionResponse(sub)
	}

	return &SubmissionListOutput{Body: SubmissionListResponse{Submissions: resp, Total: len(resp)}}, nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, input *SearchDirectoryInput) (*SearchDirectoryOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Country = input.Country
	params.City = input.City
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHitResult, len(result.Hits))
	for i, hit := range result.Hits {
		hits[i] = SearchHitResult{
			ID:        hit.ID,
			Score:     hit.Score,
			BrandName: hit.BrandName,
			Countries: hit.Countries,
			Cities:    hit.Cities,
			PlanTier:  hit.PlanTier,
		}
	}

	return &SearchDirectoryOutput{Body: SearchDirectoryResponse{
		Query:  result.Query,
		Total:  result.Total,
		TookMs: result.TookMs,
		Hits:   hits,
	}}, nil
}
