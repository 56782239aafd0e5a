package dashboard

import (
	"context"

	"github.com/HyungjinO/k-novel-dashboard/category"
	"github.com/HyungjinO/k-novel-dashboard/dataset"
	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
	"github.com/HyungjinO/k-novel-dashboard/schema"
)

// Metric keys with a computed value.
const (
	MetricSuccessRate          = "success_rate"
	MetricCatalogSalesPoint    = "catalog_salespoint"
	MetricTranslatedSalesPoint = "translated_salespoint"
	MetricNonHitSalesPoint     = "nonhit_salespoint"
	MetricSimilarity           = "similarity"
)

// Section keys, matching the content document.
const (
	SectionMetrics  = "metrics"
	SectionRanking  = "ranking"
	SectionAuthors  = "authors"
	SectionOverseas = "overseas"
	SectionTrend    = "trend"
	SectionAnalysis = "analysis"
	SectionSelected = "selected"
)

// TrendColor fills the year trend bars.
const TrendColor = "#568955"

// ChartFailedMessage replaces a chart that could not be drawn.
const ChartFailedMessage = "차트를 그릴 수 없습니다."

// MissingTranslatedMessage replaces the analysis when the translated table
// could not be read.
const MissingTranslatedMessage = "번역 도서 데이터(`trans_final_with_url.csv`)를 찾을 수 없어 분석을 표시할 수 없습니다."

type scoreColumn struct {
	key   string
	label string
}

var (
	salesScore = scoreColumn{schema.KeySalesPoint, "판매지수"}
	bsrScore   = scoreColumn{schema.KeyBSR, "평균 BSR"}
)

// ============================================================================
// METRICS
// ============================================================================

// Metrics computes the metric cards on their own, for the summary command.
func (c *Composer) Metrics(ctx context.Context) ([]MetricCard, []Notice) {
	n := &notices{}
	cards := c.metrics(ctx, n)
	return cards, n.list
}

func (c *Composer) metrics(ctx context.Context, n *notices) []MetricCard {
	cards := make([]MetricCard, 0, len(c.content.Metrics))
	for _, m := range c.content.Metrics {
		card := MetricCard{
			Key:         m.Key,
			Label:       m.Label,
			Desc:        m.Desc,
			Explanation: m.HTML(),
		}

		var (
			v   float64
			ok  bool
			err error
		)
		if m.Static != nil {
			v, ok, card.Static = *m.Static, true, true
		} else {
			v, ok, err = c.computeMetric(ctx, m.Key)
		}
		if err != nil && !n.add(SectionMetrics, err) {
			c.logger.WarnContext(ctx, "metric not computed", "metric", m.Key, "error", err)
		}

		if ok {
			card.Raw = v
			card.Value = c.format.Number(v, m.Decimals) + m.Unit
		} else {
			card.Empty = true
			card.Value = "-"
		}
		cards = append(cards, card)
	}
	return cards
}

func (c *Composer) computeMetric(ctx context.Context, key string) (float64, bool, error) {
	switch key {
	case MetricCatalogSalesPoint:
		return c.meanSalesPoint(ctx, c.data.Catalog, engine.Filters{})
	case MetricTranslatedSalesPoint:
		return c.meanSalesPoint(ctx, c.data.Translated, engine.Filters{})
	case MetricNonHitSalesPoint:
		if err := c.data.Ranked.Require(schema.KeyISBN); err != nil {
			return 0, false, err
		}
		if err := c.data.Catalog.Require(schema.KeyISBN); err != nil {
			return 0, false, err
		}
		hits := engine.UniqueValues(c.data.Ranked.View, schema.KeyISBN)
		return c.meanSalesPoint(ctx, c.data.Catalog, engine.Filters{
			Exclude: map[string][]string{schema.KeyISBN: hits},
		})
	default:
		return 0, false, domainerrors.NotFoundf("metric %q has neither a static value nor a computation", key)
	}
}

func (c *Composer) meanSalesPoint(ctx context.Context, t *dataset.Table, f engine.Filters) (float64, bool, error) {
	if err := t.Require(schema.KeySalesPoint); err != nil {
		return 0, false, err
	}
	q := engine.Query{Intent: "text", Aggregation: "avg", Measure: schema.KeySalesPoint, Filters: f}
	res, err := engine.Execute(ctx, q, t.View, engine.WithLogger(c.logger), engine.WithFormatter(c.format))
	if err != nil {
		return 0, false, err
	}
	if res.TextData.Empty {
		return 0, false, nil
	}
	return res.TextData.RawValue, true, nil
}

// ============================================================================
// BOOK LISTS
// ============================================================================

func (c *Composer) ranking(ctx context.Context, s Session, n *notices) (BookList, error) {
	title := c.content.Domestic.Section(SectionRanking)
	t := c.data.Catalog
	if err := t.Require(schema.KeyTitle); err != nil {
		if n.add(SectionRanking, err) {
			return emptyList(title), nil
		}
		return emptyList(title), err
	}

	// Without sales points the catalog is listed in file order.
	view := t.View
	if err := t.Require(schema.KeySalesPoint); err != nil {
		n.add(SectionRanking, err)
	} else {
		view = engine.TopRows(view, schema.KeySalesPoint, 0, false)
	}
	return c.bookList(ctx, title, t.Name, view, salesScore, s.Page, c.opts.PageSize, s.ISBN)
}

func (c *Composer) overseas(ctx context.Context, s Session, n *notices) (BookList, error) {
	title := c.content.Domestic.Section(SectionOverseas)
	t := c.data.Translated
	if err := t.Require(schema.KeyTitle, schema.KeyBSR); err != nil {
		if n.add(SectionOverseas, err) {
			return emptyList(title), nil
		}
		return emptyList(title), err
	}
	view := engine.TopRows(t.View, schema.KeyBSR, c.opts.OverseasTop, true)
	return c.bookList(ctx, title, t.Name, view, bsrScore, 1, c.opts.OverseasTop, s.ISBN)
}

func emptyList(title string) BookList {
	return BookList{Title: title, Books: []Book{}, Page: 1, Pages: 1}
}

// bookList pages through view with the engine's list table.
func (c *Composer) bookList(ctx context.Context, title, source string, view engine.RecordView, score scoreColumn, page, size int, selected string) (BookList, error) {
	cols := []engine.TableColumn{
		{Key: schema.KeyISBN, Label: "ISBN", Type: "text"},
		{Key: schema.KeyTitle, Label: "제목", Type: "text"},
		{Key: schema.KeyAuthor, Label: "작가", Type: "text"},
		{Key: schema.KeyPublisher, Label: "출판사", Type: "text"},
		{Key: score.key, Label: score.label, Type: "number", Align: "right"},
		{Key: schema.KeyImage, Label: "표지", Type: "image"},
	}
	q := engine.Query{Intent: "table", Aggregation: "list", Title: title}
	res, err := engine.Execute(ctx, q, view,
		engine.WithColumns(cols...),
		engine.WithPage(page, size),
		engine.WithLogger(c.logger),
		engine.WithFormatter(c.format),
	)
	if err != nil {
		return emptyList(title), err
	}

	td := res.TableData
	list := BookList{Title: title, Books: make([]Book, 0, len(td.Rows)), Page: td.Page, Pages: td.Pages, Total: td.TotalRows}
	for _, row := range td.Rows {
		b := Book{
			Source:     source,
			ISBN:       row[0],
			Title:      row[1],
			Author:     row[2],
			Publisher:  row[3],
			ScoreLabel: score.label,
			Score:      row[4],
			Image:      row[5],
		}
		b.Selected = selected != "" && b.ISBN == selected
		list.Books = append(list.Books, b)
	}
	return list, nil
}

// ============================================================================
// BAR CHARTS
// ============================================================================

// AuthorsChart sums catalog sales points per author and draws the top
// authors, largest first.
func (c *Composer) AuthorsChart(ctx context.Context) (*engine.ChartConfig, *render.Artifact, error) {
	title := c.content.Domestic.Section(SectionAuthors)
	t := c.data.Catalog
	if err := t.Require(schema.KeyAuthor, schema.KeySalesPoint); err != nil {
		return nil, nil, err
	}

	sums := engine.GroupSum(t.View, schema.KeyAuthor, schema.KeySalesPoint)
	top := engine.TopN(sums, c.opts.TopAuthors)
	if len(top) == 0 {
		return nil, nil, domainerrors.EmptyDistribution(title)
	}
	points := make([]engine.ChartPoint, len(top))
	for i, author := range top {
		v, _ := sums.Get(author)
		points[i] = engine.ChartPoint{Label: author, Value: v}
	}

	cfg := &engine.ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     "작가",
		YAxis:     "총 판매지수",
		Series:    []engine.ChartSeries{{Name: "총 판매지수", Data: points}},
		Colors:    render.GreenScale,
		ShowGrid:  true,
	}
	c.logger.DebugContext(ctx, "authors chart", "authors", sums.Len(), "shown", len(top))

	art, err := render.RenderBars(cfg, render.BarOptions{Scale: render.GreenScale, Formatter: &c.format})
	if err != nil {
		return nil, nil, err
	}
	return cfg, art, nil
}

// TrendChart counts successful translated books per publication year,
// oldest first.
func (c *Composer) TrendChart(ctx context.Context) (*engine.ChartConfig, *render.Artifact, error) {
	title := c.content.Domestic.Section(SectionTrend)
	t := c.data.Translated
	if err := t.Require(schema.KeySuccess, schema.KeyPublishedYear); err != nil {
		return nil, nil, err
	}

	q := engine.Query{
		Intent:      "chart",
		Filters:     engine.Filters{Measures: map[string]float64{schema.KeySuccess: 1}},
		Aggregation: "count",
		GroupBy:     schema.KeyPublishedYear,
		SortBy:      "numeric_asc",
		Title:       title,
		XAxis:       "출판 연도",
		YAxis:       "흥행한 도서의 총합",
	}
	res, err := engine.Execute(ctx, q, t.View, engine.WithLogger(c.logger), engine.WithFormatter(c.format))
	if err != nil {
		return nil, nil, err
	}
	if res.ChartConfig == nil {
		return nil, nil, domainerrors.EmptyDistribution(title)
	}

	cfg := res.ChartConfig
	cfg.Series[0].Color = TrendColor
	art, err := render.RenderBars(cfg, render.BarOptions{Formatter: &c.format})
	if err != nil {
		return nil, nil, err
	}
	return cfg, art, nil
}

func (c *Composer) authors(ctx context.Context, n *notices) (ChartPanel, error) {
	panel := ChartPanel{Title: c.content.Domestic.Section(SectionAuthors)}
	cfg, art, err := c.AuthorsChart(ctx)
	return fillPanel(panel, cfg, art, err, SectionAuthors, n)
}

func (c *Composer) trend(ctx context.Context, n *notices) (ChartPanel, error) {
	panel := ChartPanel{Title: c.content.Domestic.Section(SectionTrend)}
	cfg, art, err := c.TrendChart(ctx)
	return fillPanel(panel, cfg, art, err, SectionTrend, n)
}

func fillPanel(p ChartPanel, cfg *engine.ChartConfig, art *render.Artifact, err error, section string, n *notices) (ChartPanel, error) {
	if err != nil {
		if n.add(section, err) {
			p.Message = n.list[len(n.list)-1].Message
			return p, nil
		}
		return p, err
	}
	p.Config, p.Artifact = cfg, art
	return p, nil
}

// ============================================================================
// CHARACTERISTIC ANALYSIS
// ============================================================================

// Distribution counts the decorated labels of one category over the
// translated books.
func (c *Composer) Distribution(d category.Dimension) (engine.Distribution, error) {
	if !d.Valid() {
		return engine.Distribution{}, domainerrors.UnknownDimension(d.Key())
	}
	t := c.data.Translated
	if err := t.Require(d.Column()); err != nil {
		return engine.Distribution{}, err
	}
	decorated, err := category.Decorate(engine.ColumnOf(t.View, d.Column()), d)
	if err != nil {
		return engine.Distribution{}, err
	}
	dist := engine.CountValues(decorated)
	if dist.IsEmpty() {
		return dist, domainerrors.EmptyDistribution(d.Name())
	}
	return dist, nil
}

// Chart renders one category as one chart kind.
func (c *Composer) Chart(d category.Dimension, kind render.Kind) (*render.Artifact, error) {
	r, err := render.For(kind)
	if err != nil {
		return nil, err
	}
	dist, err := c.Distribution(d)
	if err != nil {
		return nil, err
	}
	return r.Render(render.Spec{Distribution: dist, Title: d.Name()})
}

func (c *Composer) analysis(ctx context.Context, s Session, n *notices) (Analysis, error) {
	dom := c.content.Domestic
	a := Analysis{
		Title:    dom.Section(SectionAnalysis),
		Prompt:   dom.CategoryPrompt,
		Category: s.Category,
		Active:   s.Chart,
		Buckets:  []engine.Bucket{},
	}
	for _, d := range category.All() {
		a.Categories = append(a.Categories, CategoryOption{Dimension: d, Name: d.Name(), Key: d.Key(), Active: d == s.Category})
	}
	for _, k := range render.Kinds() {
		a.Kinds = append(a.Kinds, KindOption{Kind: k, Key: k.Key(), Tab: k.Tab(), Active: k == s.Chart})
	}

	if err := c.data.Translated.Require(); err != nil {
		n.add(SectionAnalysis, err)
		a.Message = MissingTranslatedMessage
		return a, nil
	}

	dist, err := c.Distribution(s.Category)
	if err != nil {
		if n.add(SectionAnalysis, err) {
			a.Message = render.NoDataMessage
			return a, nil
		}
		if domainerrors.CodeOf(err) == domainerrors.CodeUnknownDimension {
			c.logger.ErrorContext(ctx, "analysis category outside the selector", "error", err)
		}
		return a, err
	}

	a.Buckets = dist.Ranked()
	a.Total = dist.Total()

	// A kind that fails to draw becomes a notice; the other kinds still show.
	spec := render.Spec{Distribution: dist, Title: s.Category.Name()}
	a.Charts = make(map[render.Kind]*render.Artifact, len(render.Kinds()))
	for _, k := range render.Kinds() {
		r, _ := render.For(k)
		art, err := r.Render(spec)
		if err != nil {
			c.logger.WarnContext(ctx, "chart not rendered",
				"category", s.Category.Key(), "chart", k.Key(), "error", err)
			n.chartFailed(SectionAnalysis, k, err)
			continue
		}
		a.Charts[k] = art
	}
	if a.ActiveChart() == nil {
		a.Message = ChartFailedMessage
	}
	return a, nil
}

// ============================================================================
// SELECTED BOOK
// ============================================================================

// Book finds a book by ISBN in the catalog, then among the translated books.
func (c *Composer) Book(isbn string) (*Book, error) {
	for _, t := range []*dataset.Table{c.data.Catalog, c.data.Translated} {
		if t.Len() == 0 || !t.Has(schema.KeyISBN) {
			continue
		}
		for i := 0; i < t.View.Len(); i++ {
			if t.View.Dimension(i, schema.KeyISBN) == isbn {
				b := c.bookAt(t, i)
				return &b, nil
			}
		}
	}
	return nil, domainerrors.NotFoundf("no book with ISBN %s", isbn)
}

func (c *Composer) bookAt(t *dataset.Table, i int) Book {
	v := t.View
	b := Book{
		Source:    t.Name,
		ISBN:      v.Dimension(i, schema.KeyISBN),
		Title:     v.Dimension(i, schema.KeyTitle),
		Author:    v.Dimension(i, schema.KeyAuthor),
		Publisher: v.Dimension(i, schema.KeyPublisher),
		Image:     v.Dimension(i, schema.KeyImage),
		Year:      v.Dimension(i, schema.KeyPublishedYear),
		Selected:  true,
	}
	score := salesScore
	if t.Name == dataset.Translated && t.Has(schema.KeyBSR) {
		score = bsrScore
	}
	b.ScoreLabel = score.label
	if x, ok := v.Measure(i, score.key); ok {
		b.Score = c.format.Number(x, 0)
	}
	for _, d := range category.All() {
		code := v.Dimension(i, d.Column())
		if code == "" {
			continue
		}
		col, _ := category.Decorate(engine.Column{engine.Text(code)}, d)
		b.Traits = append(b.Traits, Trait{Dimension: d.Name(), Label: col[0].Value})
	}
	return b
}

func (c *Composer) selected(s Session, n *notices) *Book {
	if s.ISBN == "" {
		return nil
	}
	b, err := c.Book(s.ISBN)
	if err != nil {
		n.list = append(n.list, Notice{
			Section: SectionSelected,
			Code:    domainerrors.CodeNotFound,
			Message: "선택한 도서를 찾을 수 없습니다.",
			Detail:  err.Error(),
		})
		return nil
	}
	return b
}
