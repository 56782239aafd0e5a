package render

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// MaxBubbleRadius is the radius of the largest bubble, in pixels.
const MaxBubbleRadius = 30.0

const countAxis = "등장 횟수"

type bubbleRenderer struct{}

// Render places one bubble per label on a category axis. Height and area
// both follow the count.
func (bubbleRenderer) Render(spec Spec) (*Artifact, error) {
	d := spec.Distribution
	if d.IsEmpty() {
		return nil, domainerrors.EmptyDistribution(spec.Title)
	}

	a := &Artifact{
		Kind:  Bubble,
		Title: title(spec.Title),
		Total: d.Total(),
		Items: items(d, engine.Palette()),
	}

	// The series carries an invisible anchor at each end of the axis, so a
	// single label still spans a non-zero x range.
	n := len(a.Items)
	xs := make([]float64, 0, n+2)
	ys := make([]float64, 0, n+2)
	ticks := make([]chart.Tick, n)
	maxCount := 0
	xs, ys = append(xs, 0.5), append(ys, 0)
	for i, it := range a.Items {
		x := float64(i + 1)
		xs, ys = append(xs, x), append(ys, float64(it.Value))
		ticks[i] = chart.Tick{Value: x, Label: escape(it.Label)}
		if it.Value > maxCount {
			maxCount = it.Value
		}
	}
	xs, ys = append(xs, float64(n)+0.5), append(ys, 0)

	// index counts the anchors; item i sits at index i+1.
	item := func(index int) (Item, bool) {
		if index < 1 || index > n {
			return Item{}, false
		}
		return a.Items[index-1], true
	}
	radius := func(_, _ chart.Range, index int, _, _ float64) float64 {
		it, ok := item(index)
		if !ok {
			return 0
		}
		return BubbleRadius(it.Value, maxCount)
	}
	fill := func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		it, ok := item(index)
		if !ok {
			return drawing.ColorTransparent
		}
		return color(it.Color).WithAlpha(220)
	}

	w, h := spec.size(800, 500)
	c := chart.Chart{
		Title:  escape(a.Title),
		Width:  w,
		Height: h,
		Background: chart.Style{
			FillColor: color("#F8F8F8"),
			Padding:   chart.Box{Top: 60, Left: 20, Right: 40, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:      escape(spec.axis()),
			Ticks:     ticks,
			Range:     &chart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
			TickStyle: chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{
			Name:           countAxis,
			Range:          &chart.ContinuousRange{Min: 0, Max: math.Ceil(float64(maxCount)*1.25) + 1},
			ValueFormatter: intFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    escape(a.Title),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth:      chart.Disabled,
					DotWidthProvider: radius,
					DotColorProvider: fill,
				},
			},
		},
	}

	svg, err := renderSVG(c)
	if err != nil {
		return nil, err
	}
	a.SVG = svg
	return a, nil
}

// BubbleRadius scales a count to a radius so that bubble area is
// proportional to count. The largest count gets MaxBubbleRadius.
func BubbleRadius(count, maxCount int) float64 {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	r := MaxBubbleRadius * math.Sqrt(float64(count)/float64(maxCount))
	return math.Max(r, 3)
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}
