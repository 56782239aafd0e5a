package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the mapping for book documents.
//
// Titles, authors and publishers mix Hangul and Latin text and use the CJK
// analyzer. It keeps Hangul words whole, particles included ("소년이"), so
// partial-word matches come from the prefix queries in buildQuery.
// Identifiers and the source table are keywords.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName

	doc := bleve.NewDocumentMapping()

	text := func(name string, store bool) {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = cjk.AnalyzerName
		fm.Store = store
		fm.IncludeTermVectors = store
		doc.AddFieldMappingsAt(name, fm)
	}
	text(fieldTitle, true)
	text(fieldAuthor, true)
	text(fieldPublisher, true)

	kw := func(name string) {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		doc.AddFieldMappingsAt(name, fm)
	}
	kw(fieldSource)
	kw(fieldISBN)

	image := bleve.NewTextFieldMapping()
	image.Index = false
	image.Store = true
	doc.AddFieldMappingsAt(fieldImage, image)

	num := func(name string) {
		fm := bleve.NewNumericFieldMapping()
		fm.Store = true
		doc.AddFieldMappingsAt(name, fm)
	}
	num(fieldRow)
	num(fieldSalesPoint)
	num(fieldBSR)

	indexMapping.AddDocumentMapping("_default", doc)
	return indexMapping
}
