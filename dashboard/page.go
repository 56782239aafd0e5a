package dashboard

import (
	"html/template"

	"github.com/HyungjinO/k-novel-dashboard/category"
	"github.com/HyungjinO/k-novel-dashboard/content"
	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
)

// Notice is an informational message shown in place of a widget.
type Notice struct {
	Section string            `json:"section"`
	Code    domainerrors.Code `json:"code"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
}

// MetricCard is one headline figure.
type MetricCard struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Value       string        `json:"value"`
	Raw         float64       `json:"raw"`
	Static      bool          `json:"static"`
	Empty       bool          `json:"empty"`
	Desc        string        `json:"desc"`
	Explanation template.HTML `json:"explanation"`
}

// Trait is one decorated analytical label of a book.
type Trait struct {
	Dimension string `json:"dimension"`
	Label     string `json:"label"`
}

// Book is a list item or the selected book.
type Book struct {
	Source     string  `json:"source"`
	ISBN       string  `json:"isbn,omitempty"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Publisher  string  `json:"publisher"`
	Image      string  `json:"image,omitempty"`
	ScoreLabel string  `json:"scoreLabel"`
	Score      string  `json:"score"`
	Year       string  `json:"year,omitempty"`
	Traits     []Trait `json:"traits,omitempty"`
	Selected   bool    `json:"selected"`
}

// BookList is a titled, paginated list of books.
type BookList struct {
	Title string `json:"title"`
	Books []Book `json:"books"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Total int    `json:"total"`
}

// ChartPanel is a titled bar chart.
type ChartPanel struct {
	Title    string              `json:"title"`
	Config   *engine.ChartConfig `json:"config,omitempty"`
	Artifact *render.Artifact    `json:"artifact,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// Empty reports whether the panel has nothing to draw.
func (p ChartPanel) Empty() bool { return p.Artifact == nil }

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	Dimension category.Dimension
	Name      string
	Key       string
	Active    bool
}

// KindOption is one chart tab.
type KindOption struct {
	Kind   render.Kind
	Key    string
	Tab    string
	Active bool
}

// Analysis is the characteristic-analysis widget. Every chart kind is drawn
// from the same distribution; Active marks the selected tab.
type Analysis struct {
	Title      string                           `json:"title"`
	Prompt     string                           `json:"prompt"`
	Category   category.Dimension               `json:"category"`
	Categories []CategoryOption                 `json:"-"`
	Kinds      []KindOption                     `json:"-"`
	Active     render.Kind                      `json:"active"`
	Buckets    []engine.Bucket                  `json:"buckets"`
	Total      int                              `json:"total"`
	Charts     map[render.Kind]*render.Artifact `json:"-"`
	Message    string                           `json:"message,omitempty"`
}

// Empty reports whether there is nothing to chart.
func (a Analysis) Empty() bool { return len(a.Charts) == 0 }

// ActiveChart is the artifact of the selected tab.
func (a Analysis) ActiveChart() *render.Artifact { return a.Charts[a.Active] }

// DomesticPage is the market overview page.
type DomesticPage struct {
	AppName      string       `json:"appName"`
	Title        string       `json:"title"`
	ExplainLabel string       `json:"-"`
	Session      Session      `json:"session"`
	Metrics      []MetricCard `json:"metrics"`
	Ranking      BookList     `json:"ranking"`
	Authors      ChartPanel   `json:"authors"`
	Overseas     BookList     `json:"overseas"`
	Trend        ChartPanel   `json:"trend"`
	Analysis     Analysis     `json:"analysis"`
	Selected     *Book        `json:"selected,omitempty"`
	Notices      []Notice     `json:"notices,omitempty"`
}

// ShelfItem is a shelf book with its selection state.
type ShelfItem struct {
	content.ShelfBook
	Selected bool
}

// HomePage is the landing page.
type HomePage struct {
	AppName  string
	Title    string
	Intro    string
	Shelf    []ShelfItem
	Selected *content.ShelfBook
	Heading  string
	Hint     string
	Nav      []content.Link
	Session  Session
}
