package render

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

type donutRenderer struct{}

// Render draws a donut with one sector per label, ranked by count, and the
// total in the hole.
func (donutRenderer) Render(spec Spec) (*Artifact, error) {
	d := spec.Distribution
	if d.IsEmpty() {
		return nil, domainerrors.EmptyDistribution(spec.Title)
	}

	total := d.Total()
	a := &Artifact{
		Kind:       Donut,
		Title:      title(spec.Title),
		Total:      total,
		Items:      items(d, engine.Palette()),
		Annotation: fmt.Sprintf("전체 %d권", total),
	}

	values := make([]chart.Value, len(a.Items))
	for i, it := range a.Items {
		values[i] = chart.Value{
			Label: escape(fmt.Sprintf("%s %.1f%%", it.Label, it.Percent)),
			Value: float64(it.Value),
			Style: chart.Style{
				FillColor:   color(it.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontColor:   drawing.ColorBlack,
			},
		}
	}

	w, h := spec.size(700, 700)
	c := chart.DonutChart{
		Title:  escape(a.Title),
		Width:  w,
		Height: h,
		Background: chart.Style{
			FillColor: color("#F8F8F8"),
		},
		Values:   values,
		Elements: []chart.Renderable{centerLabel(a.Annotation)},
	}

	svg, err := renderSVG(c)
	if err != nil {
		return nil, err
	}
	a.SVG = svg
	return a, nil
}

// centerLabel writes text in the middle of the canvas box.
func centerLabel(text string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		chart.Style{
			FontSize:  24,
			FontColor: drawing.ColorBlack,
		}.InheritFrom(defaults).WriteTextOptionsToRenderer(r)

		tb := r.MeasureText(text)
		cx, cy := box.Center()
		r.Text(escape(text), cx-tb.Width()/2, cy+tb.Height()/2)
	}
}
