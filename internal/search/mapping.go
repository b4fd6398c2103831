package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/fr"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for pin documents.
//
// Names and addresses are French; the French analyzer handles accents and
// stemming so "pâtisserie" matches "patisseries". Region and type are exact
// keywords for filtering.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = fr.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = fr.AnalyzerName
	nameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Reading form of the name - searchable alias
	readingFieldMapping := bleve.NewTextFieldMapping()
	readingFieldMapping.Analyzer = fr.AnalyzerName
	docMapping.AddFieldMappingsAt("name_reading", readingFieldMapping)

	// Address - searchable
	addressFieldMapping := bleve.NewTextFieldMapping()
	addressFieldMapping.Analyzer = fr.AnalyzerName
	addressFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("address", addressFieldMapping)

	// Characteristics - free text about specialties
	charFieldMapping := bleve.NewTextFieldMapping()
	charFieldMapping.Analyzer = fr.AnalyzerName
	docMapping.AddFieldMappingsAt("characteristics", charFieldMapping)

	// --- Keyword fields (exact match) ---

	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	regionFieldMapping := bleve.NewTextFieldMapping()
	regionFieldMapping.Analyzer = keyword.Name
	regionFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("region", regionFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
