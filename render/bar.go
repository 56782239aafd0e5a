package render

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// GreenScale colors bars from light to dark as values grow.
var GreenScale = []string{"#E0F2E9", "#A3C9A8", "#7FB77E", "#568955", "#355C36"}

// BarOptions controls a bar chart.
type BarOptions struct {
	Width  int
	Height int
	// Scale maps each bar to a color by its value relative to the largest.
	// Empty uses the series color.
	Scale []string
	// Formatter labels the value axis; nil uses engine.Korean().
	Formatter *engine.Formatter
}

// RenderBars draws the first series of a ChartConfig as a vertical bar
// chart. Items keep the config's point order.
func RenderBars(cfg *engine.ChartConfig, opts BarOptions) (*Artifact, error) {
	if cfg == nil || len(cfg.Series) == 0 || len(cfg.Series[0].Data) == 0 {
		name := ""
		if cfg != nil {
			name = cfg.Title
		}
		return nil, domainerrors.EmptyDistribution(name)
	}

	series := cfg.Series[0]
	f := engine.Korean()
	if opts.Formatter != nil {
		f = *opts.Formatter
	}

	maxValue := 0.0
	total := 0
	for _, p := range series.Data {
		maxValue = math.Max(maxValue, p.Value)
		total += int(math.Round(p.Value))
	}

	a := &Artifact{Kind: Bar, Title: cfg.Title, Total: total}
	bars := make([]chart.Value, len(series.Data))
	for i, p := range series.Data {
		hex := barColor(series.Color, opts.Scale, p.Value, maxValue)
		a.Items = append(a.Items, Item{
			Label:   p.Label,
			Value:   int(math.Round(p.Value)),
			Percent: percent(int(math.Round(p.Value)), total),
			Color:   hex,
		})
		bars[i] = chart.Value{
			Label: escape(p.Label),
			Value: p.Value,
			Style: chart.Style{FillColor: color(hex), StrokeColor: color(hex)},
		}
	}

	w := opts.Width
	if w <= 0 {
		w = 800
	}
	h := opts.Height
	if h <= 0 {
		h = 500
	}
	barWidth := (w - 120) / (2 * len(bars))
	if barWidth < 8 {
		barWidth = 8
	}
	if barWidth > 60 {
		barWidth = 60
	}

	top := maxValue * 1.1
	if top <= 0 {
		top = 1
	}

	c := chart.BarChart{
		Title:    escape(cfg.Title),
		Width:    w,
		Height:   h,
		BarWidth: barWidth,
		Background: chart.Style{
			FillColor: color("#F9F9F9"),
			Padding:   chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  escape(cfg.YAxis),
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string {
				if n, ok := v.(float64); ok {
					return f.Number(n, 0)
				}
				return ""
			},
		},
		Bars: bars,
	}

	svg, err := renderSVG(c)
	if err != nil {
		return nil, err
	}
	a.SVG = svg
	return a, nil
}

func barColor(series string, scale []string, v, maxValue float64) string {
	if len(scale) == 0 {
		if series != "" {
			return series
		}
		return engine.Palette()[0]
	}
	if maxValue <= 0 {
		return scale[0]
	}
	i := int(math.Round(v / maxValue * float64(len(scale)-1)))
	if i < 0 {
		i = 0
	}
	if i >= len(scale) {
		i = len(scale) - 1
	}
	return scale[i]
}
