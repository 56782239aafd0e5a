// Package dashboard composes the dashboard pages from the loaded tables.
//
// The composer is stateless: every call takes the viewer's Session and
// recomputes its widgets from the immutable bundle. Data-availability
// problems become Notices on the page. Anything else is returned.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/HyungjinO/k-novel-dashboard/content"
	"github.com/HyungjinO/k-novel-dashboard/dataset"
	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
)

// Options tunes widget sizes.
type Options struct {
	PageSize    int // books per ranking page
	TopAuthors  int
	OverseasTop int
}

// DefaultOptions match the published dashboard.
func DefaultOptions() Options {
	return Options{PageSize: 6, TopAuthors: 15, OverseasTop: 6}
}

// Composer builds pages.
type Composer struct {
	data    *dataset.Bundle
	content *content.Content
	logger  *slog.Logger
	opts    Options
	format  engine.Formatter
}

// New returns a composer over data. A nil logger discards output.
func New(data *dataset.Bundle, c *content.Content, logger *slog.Logger, opts Options) *Composer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	def := DefaultOptions()
	if opts.PageSize <= 0 {
		opts.PageSize = def.PageSize
	}
	if opts.TopAuthors <= 0 {
		opts.TopAuthors = def.TopAuthors
	}
	if opts.OverseasTop <= 0 {
		opts.OverseasTop = def.OverseasTop
	}
	if data == nil {
		data = &dataset.Bundle{}
	}
	if c == nil {
		// The embedded document is covered by the content tests.
		c, _ = content.Default()
	}
	return &Composer{
		data:    data,
		content: c,
		logger:  logger.With("component", "dashboard"),
		opts:    opts,
		format:  engine.Korean(),
	}
}

// Content returns the page content the composer renders with.
func (c *Composer) Content() *content.Content { return c.content }

// Data returns the loaded tables.
func (c *Composer) Data() *dataset.Bundle { return c.data }

// Domestic builds the market overview page for s.
func (c *Composer) Domestic(ctx context.Context, s Session) (*DomesticPage, error) {
	if !s.Category.Valid() {
		err := domainerrors.UnknownDimension(s.Category.Key())
		c.logger.ErrorContext(ctx, "unknown analysis category", "category", int(s.Category), "error", err)
		return nil, err
	}
	if s.Page < 1 {
		s.Page = 1
	}

	dom := c.content.Domestic
	page := &DomesticPage{
		AppName:      c.content.App.Name,
		Title:        dom.Title,
		ExplainLabel: dom.ExplainLabel,
		Session:      s,
	}
	n := &notices{}

	page.Metrics = c.metrics(ctx, n)

	var err error
	if page.Ranking, err = c.ranking(ctx, s, n); err != nil {
		return nil, err
	}
	if page.Authors, err = c.authors(ctx, n); err != nil {
		return nil, err
	}
	if page.Overseas, err = c.overseas(ctx, s, n); err != nil {
		return nil, err
	}
	if page.Trend, err = c.trend(ctx, n); err != nil {
		return nil, err
	}
	if page.Analysis, err = c.analysis(ctx, s, n); err != nil {
		return nil, err
	}
	page.Selected = c.selected(s, n)

	page.Notices = n.list
	c.logger.DebugContext(ctx, "domestic page composed",
		"category", s.Category.Key(),
		"chart", s.Chart.Key(),
		"page", s.Page,
		"notices", len(n.list),
	)
	return page, nil
}

// Home builds the landing page. An unknown shelf key selects nothing.
func (c *Composer) Home(s Session) *HomePage {
	home := c.content.Home
	page := &HomePage{
		AppName: c.content.App.Name,
		Title:   home.Title,
		Intro:   home.Intro,
		Hint:    home.Hint,
		Nav:     c.content.App.Nav,
		Session: s,
	}
	for _, b := range home.Shelf {
		item := ShelfItem{ShelfBook: b, Selected: b.Key == s.Shelf}
		page.Shelf = append(page.Shelf, item)
		if item.Selected {
			book := b
			page.Selected = &book
			page.Heading = b.Label + " 책 대시보드 정보"
		}
	}
	return page
}

// notices collects data-availability problems for one page.
type notices struct {
	list []Notice
}

// add records err for section when it is a data-availability problem and
// reports whether it did. Other errors are left to the caller.
func (n *notices) add(section string, err error) bool {
	if err == nil || !domainerrors.IsDataAvailability(err) {
		return false
	}
	notice := Notice{Section: section, Code: domainerrors.CodeOf(err), Detail: err.Error()}
	switch notice.Code {
	case domainerrors.CodeEmptyDistribution:
		notice.Message = "분석할 데이터가 없습니다."
	default:
		notice.Message = "데이터를 찾을 수 없습니다."
	}
	n.list = append(n.list, notice)
	return true
}

// chartFailed records a chart kind that could not be drawn.
func (n *notices) chartFailed(section string, kind render.Kind, err error) {
	n.list = append(n.list, Notice{
		Section: section,
		Code:    domainerrors.CodeOf(err),
		Message: kind.Tab() + ": " + ChartFailedMessage,
		Detail:  err.Error(),
	})
}
