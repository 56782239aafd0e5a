// Package render turns a label distribution into chart artifacts.
//
// Every renderer is a pure function of its Spec: it reads the distribution
// through copies, computes the displayed items and draws an SVG with
// go-chart. SVG keeps Hangul and emoji labels as text, so the browser's
// fonts draw them.
package render

import (
	"bytes"
	"html"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// ErrNoData is returned for an empty distribution. Callers show the
// "분석할 데이터가 없습니다." placeholder instead of a chart.
var ErrNoData = domainerrors.ErrEmptyDistribution

// NoDataMessage is the placeholder text for an empty distribution.
const NoDataMessage = "분석할 데이터가 없습니다."

// Spec is the input of every renderer.
type Spec struct {
	Distribution engine.Distribution
	Title        string // dimension name, e.g. "전개"
	Axis         string // category axis name; defaults to Title
	Width        int
	Height       int
}

func (s Spec) axis() string {
	if s.Axis != "" {
		return s.Axis
	}
	return s.Title
}

func (s Spec) size(w, h int) (int, int) {
	if s.Width > 0 {
		w = s.Width
	}
	if s.Height > 0 {
		h = s.Height
	}
	return w, h
}

// Item is one displayed element of a chart.
type Item struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color,omitempty"`
}

// Artifact is a rendered chart plus the data it displays.
type Artifact struct {
	Kind       Kind   `json:"kind"`
	Title      string `json:"title"`
	Total      int    `json:"total"`
	Items      []Item `json:"items"`
	Annotation string `json:"annotation,omitempty"`
	SVG        []byte `json:"-"`
}

// Renderer draws one chart kind.
type Renderer interface {
	Render(spec Spec) (*Artifact, error)
}

// For returns the renderer of a distribution chart kind.
func For(kind Kind) (Renderer, error) {
	switch kind {
	case Donut:
		return donutRenderer{}, nil
	case Treemap:
		return treemapRenderer{}, nil
	case Bubble:
		return bubbleRenderer{}, nil
	default:
		return nil, domainerrors.UnknownChart(kind.Key())
	}
}

// RenderAll renders every distribution kind from the same spec. The map
// holds an artifact for each kind that rendered.
func RenderAll(spec Spec) (map[Kind]*Artifact, error) {
	out := make(map[Kind]*Artifact, len(Kinds()))
	for _, k := range Kinds() {
		r, _ := For(k)
		a, err := r.Render(spec)
		if err != nil {
			return nil, err
		}
		out[k] = a
	}
	return out, nil
}

// title formats a distribution chart title.
func title(name string) string {
	if name == "" {
		return "분포"
	}
	return name + " 분포"
}

// items lists the ranked buckets with their share of the total.
func items(d engine.Distribution, palette []string) []Item {
	total := d.Total()
	ranked := d.Ranked()
	out := make([]Item, len(ranked))
	for i, b := range ranked {
		out[i] = Item{
			Label:   b.Label,
			Value:   b.Count,
			Percent: percent(b.Count, total),
			Color:   palette[i%len(palette)],
		}
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// escape prepares text for go-chart's SVG writer, which writes text nodes
// and titles verbatim.
func escape(s string) string { return html.EscapeString(s) }

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

type svgChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderSVG(c svgChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		return nil, domainerrors.Internal("chart rendering failed", err)
	}
	return buf.Bytes(), nil
}
