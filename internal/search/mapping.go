package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	_ "github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for listing documents:
// full-text search with English stemming on brand name and description,
// plain text matching on country and city names, and keyword fields for
// exact plan filtering.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Brand name is the primary search target.
	brandFieldMapping := bleve.NewTextFieldMapping()
	brandFieldMapping.Analyzer = en.AnalyzerName
	brandFieldMapping.Store = true
	brandFieldMapping.IncludeTermVectors = true // for highlighting
	docMapping.AddFieldMappingsAt("brand_name", brandFieldMapping)

	// Description is searchable but not stored.
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Countries and cities: searchable without stemming so "Paris" does
	// not match "parish" listings.
	countryFieldMapping := bleve.NewTextFieldMapping()
	countryFieldMapping.Analyzer = "simple"
	countryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("countries", countryFieldMapping)

	cityFieldMapping := bleve.NewTextFieldMapping()
	cityFieldMapping.Analyzer = "simple"
	cityFieldMapping.Store = true
	cityFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("cities", cityFieldMapping)

	// Exact-match fields.
	planFieldMapping := bleve.NewTextFieldMapping()
	planFieldMapping.Analyzer = keyword.Name
	planFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("plan_tier", planFieldMapping)

	urlFieldMapping := bleve.NewTextFieldMapping()
	urlFieldMapping.Analyzer = keyword.Name
	urlFieldMapping.Store = true
	urlFieldMapping.Index = false
	docMapping.AddFieldMappingsAt("website_url", urlFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Numeric field for recency sorting.
	createdFieldMapping := bleve.NewNumericFieldMapping()
	createdFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
