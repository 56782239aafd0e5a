package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

func plotDistribution() engine.Distribution {
	return engine.CountValues(engine.Column{
		engine.Text("🏕️ 생존"), engine.Text("🧙‍♂️ 저주"), engine.Null, engine.Text("🏕️ 생존"),
	})
}

func sumItems(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Value
	}
	return n
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"donut":   Donut,
		"TREEMAP": Treemap,
		" bubble": Bubble,
		"도넛 차트":   Donut,
		"트리맵":     Treemap,
		"버블 차트":   Bubble,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("pie")
	assert.ErrorIs(t, err, domainerrors.ErrUnknownChart)
	_, err = ParseKind("bar")
	assert.ErrorIs(t, err, domainerrors.ErrUnknownChart, "bar is not a distribution chart")

	assert.Equal(t, []Kind{Donut, Treemap, Bubble}, Kinds())
	assert.Equal(t, "트리맵", Treemap.Tab())
}

func TestFor_UnknownKind(t *testing.T) {
	_, err := For(Bar)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownChart)
	_, err = For(Kind(42))
	assert.ErrorIs(t, err, domainerrors.ErrUnknownChart)
}

func TestRenderers_ItemsSumToTotal(t *testing.T) {
	d := plotDistribution()
	before := d.Buckets()

	for _, k := range Kinds() {
		t.Run(k.Key(), func(t *testing.T) {
			r, err := For(k)
			require.NoError(t, err)

			a, err := r.Render(Spec{Distribution: d, Title: "전개"})
			require.NoError(t, err)

			assert.Equal(t, k, a.Kind)
			assert.Equal(t, "전개 분포", a.Title)
			assert.Equal(t, 3, a.Total)
			assert.Equal(t, a.Total, sumItems(a.Items))
			require.Len(t, a.Items, 2)
			assert.Equal(t, "🏕️ 생존", a.Items[0].Label)
			assert.InDelta(t, 66.67, a.Items[0].Percent, 0.01)

			require.NotEmpty(t, a.SVG)
			assert.Contains(t, string(a.SVG), "<svg")
		})
	}

	assert.Equal(t, before, d.Buckets(), "input distribution is not mutated")
}

func TestDonut_Annotation(t *testing.T) {
	a, err := donutRenderer{}.Render(Spec{Distribution: plotDistribution(), Title: "전개"})
	require.NoError(t, err)
	assert.Equal(t, "전체 3권", a.Annotation)
	assert.Contains(t, string(a.SVG), "전체 3권")
}

func TestTreemap_RootAndLeaves(t *testing.T) {
	a, err := treemapRenderer{}.Render(Spec{Distribution: plotDistribution(), Title: "전개"})
	require.NoError(t, err)
	assert.Equal(t, RootLabel, a.Annotation)

	svg := string(a.SVG)
	assert.Contains(t, svg, RootLabel)
	assert.Contains(t, svg, "생존")
	assert.Contains(t, svg, "저주")
}

func TestRenderers_EmptyDistribution(t *testing.T) {
	empty := engine.CountValues(engine.Column{engine.Null})
	for _, k := range Kinds() {
		r, _ := For(k)
		a, err := r.Render(Spec{Distribution: empty, Title: "장르"})
		assert.Nil(t, a)
		assert.ErrorIs(t, err, ErrNoData, k.Key())
	}

	_, err := RenderAll(Spec{Title: "장르"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRenderAll(t *testing.T) {
	all, err := RenderAll(Spec{Distribution: plotDistribution(), Title: "전개"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, k := range Kinds() {
		assert.Equal(t, k, all[k].Kind)
	}
}

func TestRenderAll_SingleLabel(t *testing.T) {
	d := engine.NewDistribution(engine.Bucket{Label: "🏕️ 생존", Count: 3})

	all, err := RenderAll(Spec{Distribution: d, Title: "전개"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, k := range Kinds() {
		a := all[k]
		require.Len(t, a.Items, 1, k.Key())
		assert.Equal(t, 3, a.Items[0].Value, k.Key())
		assert.Equal(t, 3, a.Total, k.Key())
		assert.NotEmpty(t, a.SVG, k.Key())
	}
}

// wellFormed decodes every token of an SVG document.
func wellFormed(t *testing.T, svg []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestRenderers_EscapeMarkup(t *testing.T) {
	d := engine.NewDistribution(
		engine.Bucket{Label: "Crime & <Punishment>", Count: 2},
		engine.Bucket{Label: `"quoted" 'label'`, Count: 1},
	)
	for _, k := range Kinds() {
		t.Run(k.Key(), func(t *testing.T) {
			r, _ := For(k)
			a, err := r.Render(Spec{Distribution: d, Title: "R&D"})
			require.NoError(t, err)
			wellFormed(t, a.SVG)
			assert.Contains(t, string(a.SVG), "Crime &amp; &lt;Punishment&gt;")
			assert.Equal(t, "Crime & <Punishment>", a.Items[0].Label, "items keep the raw label")
		})
	}

	bars, err := RenderBars(&engine.ChartConfig{
		Title:  "Q&A",
		YAxis:  "총 판매지수",
		Series: []engine.ChartSeries{{Data: []engine.ChartPoint{{Label: "Kim & Lee", Value: 10}, {Label: "<b>", Value: 5}}}},
	}, BarOptions{Scale: GreenScale})
	require.NoError(t, err)
	wellFormed(t, bars.SVG)
}

func TestBubbleRadius(t *testing.T) {
	assert.InDelta(t, MaxBubbleRadius, BubbleRadius(9, 9), 1e-9)
	assert.InDelta(t, MaxBubbleRadius/2, BubbleRadius(1, 4), 1e-9, "area halves with radius")
	assert.Equal(t, 0.0, BubbleRadius(0, 4))
	assert.Equal(t, 3.0, BubbleRadius(1, 10000), "floor keeps tiny bubbles visible")
}

func TestSquarify_AreasAndBounds(t *testing.T) {
	bounds := Rect{X: 10, Y: 20, W: 600, H: 400}
	values := []float64{6, 6, 4, 3, 2, 2, 1}

	cells := Squarify(values, bounds)
	require.Len(t, cells, len(values))

	total := 24.0
	area := 0.0
	for i, c := range cells {
		want := values[i] / total * bounds.W * bounds.H
		assert.InDelta(t, want, c.W*c.H, 1e-6, "cell %d", i)
		assert.GreaterOrEqual(t, c.X, bounds.X-1e-9)
		assert.GreaterOrEqual(t, c.Y, bounds.Y-1e-9)
		assert.LessOrEqual(t, c.X+c.W, bounds.X+bounds.W+1e-6)
		assert.LessOrEqual(t, c.Y+c.H, bounds.Y+bounds.H+1e-6)
		area += c.W * c.H
	}
	assert.InDelta(t, bounds.W*bounds.H, area, 1e-6)
	assert.Equal(t, []float64{6, 6, 4, 3, 2, 2, 1}, values, "input untouched")
}

func TestSquarify_Degenerate(t *testing.T) {
	assert.Equal(t, []Rect{{}, {}}, Squarify([]float64{0, -1}, Rect{W: 10, H: 10}))
	assert.Empty(t, Squarify(nil, Rect{W: 10, H: 10}))

	one := Squarify([]float64{5}, Rect{W: 100, H: 50})
	assert.Equal(t, Rect{W: 100, H: 50}, one[0])
}

func TestWorst(t *testing.T) {
	assert.InDelta(t, 1.0, worst([]float64{100}, 10), 1e-9, "square")
	assert.Greater(t, worst([]float64{1, 99}, 10), 1.0)
	assert.Equal(t, 0.0, worst(nil, 10))
	assert.False(t, math.IsNaN(worst([]float64{1}, 0)))
}

func TestRenderBars(t *testing.T) {
	cfg := &engine.ChartConfig{
		ChartType: "bar",
		Title:     "국내 인기 작가",
		YAxis:     "총 판매지수",
		Series: []engine.ChartSeries{{
			Name: "총 판매지수",
			Data: []engine.ChartPoint{{Label: "한강", Value: 218000}, {Label: "정유정", Value: 40000}},
		}},
	}

	a, err := RenderBars(cfg, BarOptions{Scale: GreenScale})
	require.NoError(t, err)
	assert.Equal(t, Bar, a.Kind)
	assert.Equal(t, 258000, a.Total)
	assert.Equal(t, "한강", a.Items[0].Label)
	assert.Equal(t, GreenScale[len(GreenScale)-1], a.Items[0].Color, "largest bar is darkest")
	assert.Contains(t, string(a.SVG), "한강")

	_, err = RenderBars(nil, BarOptions{})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = RenderBars(&engine.ChartConfig{Title: "x"}, BarOptions{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBarColor(t *testing.T) {
	assert.Equal(t, "#568955", barColor("#568955", nil, 1, 2))
	assert.Equal(t, engine.Palette()[0], barColor("", nil, 1, 2))
	assert.Equal(t, GreenScale[0], barColor("", GreenScale, 0, 10))
	assert.Equal(t, GreenScale[0], barColor("", GreenScale, 5, 0))
}
