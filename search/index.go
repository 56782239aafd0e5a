// Package search keeps an in-memory full-text index over the book tables.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/schema"
)

const (
	fieldSource     = "source"
	fieldRow        = "row"
	fieldISBN       = "isbn"
	fieldTitle      = "title"
	fieldAuthor     = "author"
	fieldPublisher  = "publisher"
	fieldImage      = "image"
	fieldSalesPoint = "salespoint"
	fieldBSR        = "avg_bsr"
)

const batchSize = 500

// Index wraps a memory-only bleve index. Safe for concurrent use.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the index.
type Options struct {
	Logger *slog.Logger // uses discard if nil
}

// New creates an empty index.
func New(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx, logger: logger}, nil
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Add indexes every row of view under source. Rows without a title are
// skipped. It returns the number of indexed rows.
func (s *Index) Add(ctx context.Context, source string, view engine.RecordView) (int, error) {
	if view == nil {
		return 0, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	added := 0
	batch := s.index.NewBatch()
	for i := 0; i < view.Len(); i++ {
		doc := documentOf(source, i, view)
		if doc == nil {
			continue
		}
		if err := batch.Index(docID(source, i), doc); err != nil {
			return added, fmt.Errorf("index %s row %d: %w", source, i, err)
		}
		added++

		if batch.Size() >= batchSize {
			if err := ctx.Err(); err != nil {
				return added, err
			}
			if err := s.index.Batch(batch); err != nil {
				return added, fmt.Errorf("execute batch: %w", err)
			}
			batch = s.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := s.index.Batch(batch); err != nil {
			return added, fmt.Errorf("execute batch: %w", err)
		}
	}

	s.logger.Debug("search documents indexed", "source", source, "count", added)
	return added, nil
}

// Count returns the number of indexed documents.
func (s *Index) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

func docID(source string, row int) string {
	return source + ":" + strconv.Itoa(row)
}

func documentOf(source string, row int, view engine.RecordView) map[string]any {
	title := view.Dimension(row, schema.KeyTitle)
	if title == "" {
		return nil
	}
	doc := map[string]any{
		fieldSource: source,
		fieldRow:    float64(row),
		fieldTitle:  title,
	}
	for _, k := range []string{fieldISBN, fieldAuthor, fieldPublisher, fieldImage} {
		if v := view.Dimension(row, k); v != "" {
			doc[k] = v
		}
	}
	for _, k := range []string{fieldSalesPoint, fieldBSR} {
		if v, ok := view.Measure(row, k); ok {
			doc[k] = v
		}
	}
	return doc
}

// ============================================================================
// QUERY
// ============================================================================

// Params configures a search.
type Params struct {
	Query  string
	Source string // restrict to one table; empty searches all
	Limit  int
	Offset int
}

// Hit is one matching book.
type Hit struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	Row        int      `json:"row"`
	ISBN       string   `json:"isbn,omitempty"`
	Title      string   `json:"title"`
	Author     string   `json:"author,omitempty"`
	Publisher  string   `json:"publisher,omitempty"`
	Image      string   `json:"image,omitempty"`
	SalesPoint *float64 `json:"salespoint,omitempty"`
	BSR        *float64 `json:"avgBsr,omitempty"`
	Score      float64  `json:"score"`
}

// Result is a page of hits.
type Result struct {
	Query string `json:"query"`
	Total uint64 `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// Search runs a text query over title, author and publisher. A blank query
// is a VALIDATION error.
func (s *Index) Search(ctx context.Context, p Params) (*Result, error) {
	q := strings.TrimSpace(p.Query)
	if q == "" {
		return nil, domainerrors.Validation("search query is empty")
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildQuery(q, p.Source), p.Limit, p.Offset, false)
	req.Fields = []string{
		fieldSource, fieldRow, fieldISBN, fieldTitle, fieldAuthor,
		fieldPublisher, fieldImage, fieldSalesPoint, fieldBSR,
	}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &Result{Query: q, Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		hit.Source, _ = h.Fields[fieldSource].(string)
		hit.ISBN, _ = h.Fields[fieldISBN].(string)
		hit.Title, _ = h.Fields[fieldTitle].(string)
		hit.Author, _ = h.Fields[fieldAuthor].(string)
		hit.Publisher, _ = h.Fields[fieldPublisher].(string)
		hit.Image, _ = h.Fields[fieldImage].(string)
		if r, ok := h.Fields[fieldRow].(float64); ok {
			hit.Row = int(r)
		}
		if v, ok := h.Fields[fieldSalesPoint].(float64); ok {
			hit.SalesPoint = &v
		}
		if v, ok := h.Fields[fieldBSR].(float64); ok {
			hit.BSR = &v
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

func buildQuery(text, source string) query.Query {
	title := bleve.NewMatchQuery(text)
	title.SetField(fieldTitle)
	title.SetBoost(2.0)

	author := bleve.NewMatchQuery(text)
	author.SetField(fieldAuthor)
	author.SetBoost(1.5)

	publisher := bleve.NewMatchQuery(text)
	publisher.SetField(fieldPublisher)

	isbn := bleve.NewTermQuery(text)
	isbn.SetField(fieldISBN)
	isbn.SetBoost(3.0)

	queries := []query.Query{title, author, publisher, isbn}

	// Hangul words are indexed whole with their particles ("소년이"), so
	// partial words need a prefix query per word (minimum 2 bytes).
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) < 2 {
			continue
		}
		for _, field := range []string{fieldTitle, fieldAuthor} {
			prefix := bleve.NewPrefixQuery(word)
			prefix.SetField(field)
			prefix.SetBoost(0.5)
			queries = append(queries, prefix)
		}
	}

	match := bleve.NewDisjunctionQuery(queries...)
	if source == "" {
		return match
	}

	src := bleve.NewTermQuery(source)
	src.SetField(fieldSource)
	return bleve.NewConjunctionQuery(match, src)
}
