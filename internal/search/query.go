package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a listing search.
type Params struct {
	Query   string // traveler's search text
	Country string // optional country filter (display name)
	City    string // optional city filter

	Limit  int
	Offset int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{Limit: 20}
}

// Result is a page of search hits.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is a single matching listing.
type Hit struct {
	ID        string   `json:"id"`
	Score     float64  `json:"score"`
	BrandName string   `json:"brand_name"`
	Countries []string `json:"countries,omitempty"`
	Cities    []string `json:"cities,omitempty"`
	PlanTier  string   `json:"plan_tier"`
}

// Search executes a listing search.
func (i *Index) Search(params Params) (*Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.Fields = []string{"brand_name", "countries", "cities", "plan_tier"}

	res, err := i.index.Search(req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}

	for _, hit := range res.Hits {
		h := Hit{
			ID:        hit.ID,
			Score:     hit.Score,
			BrandName: stringField(hit.Fields, "brand_name"),
			Countries: stringsField(hit.Fields, "countries"),
			Cities:    stringsField(hit.Fields, "cities"),
			PlanTier:  stringField(hit.Fields, "plan_tier"),
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildQuery combines the free-text query with country/city filters.
func buildQuery(params Params) query.Query {
	var parts []query.Query

	text := strings.TrimSpace(params.Query)
	if text != "" {
		match := bleve.NewMatchQuery(text)
		brand := bleve.NewMatchQuery(text)
		brand.SetField("brand_name")
		brand.SetBoost(2.0) // brand hits rank above incidental city/description matches
		parts = append(parts, bleve.NewDisjunctionQuery(match, brand))
	}

	if params.Country != "" {
		countryQuery := bleve.NewMatchQuery(params.Country)
		countryQuery.SetField("countries")
		parts = append(parts, countryQuery)
	}

	if params.City != "" {
		cityQuery := bleve.NewMatchQuery(params.City)
		cityQuery.SetField("cities")
		parts = append(parts, cityQuery)
	}

	if len(parts) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return bleve.NewConjunctionQuery(parts...)
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// stringsField handles Bleve's habit of returning a bare string when a
// slice field holds a single value.
func stringsField(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
