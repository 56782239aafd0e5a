package render

import (
	"bytes"
	"sort"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// RootLabel names the node every treemap leaf hangs from.
const RootLabel = "전체"

// pastel is the treemap palette.
var pastel = []string{
	"#66C5CC", "#F6CF71", "#F89C74", "#DCB0F2", "#87C55F", "#9EB9F3",
	"#FE88B1", "#C9DB74", "#8BE0A4", "#B497E7", "#B3B3B3",
}

const (
	treemapTitleHeight = 36
	treemapRootHeight  = 24
	treemapMargin      = 10
)

// Rect is a laid-out treemap cell in canvas coordinates.
type Rect struct {
	X, Y, W, H float64
}

type treemapRenderer struct{}

// Render lays out one leaf per label under the RootLabel node with the
// squarified algorithm.
func (treemapRenderer) Render(spec Spec) (*Artifact, error) {
	d := spec.Distribution
	if d.IsEmpty() {
		return nil, domainerrors.EmptyDistribution(spec.Title)
	}

	a := &Artifact{
		Kind:       Treemap,
		Title:      title(spec.Title),
		Total:      d.Total(),
		Items:      items(d, pastel),
		Annotation: RootLabel,
	}

	w, h := spec.size(800, 500)
	root := Rect{
		X: treemapMargin,
		Y: treemapTitleHeight,
		W: float64(w - 2*treemapMargin),
		H: float64(h - treemapTitleHeight - treemapMargin),
	}
	leafArea := Rect{X: root.X, Y: root.Y + treemapRootHeight, W: root.W, H: root.H - treemapRootHeight}

	values := make([]float64, len(a.Items))
	for i, it := range a.Items {
		values[i] = float64(it.Value)
	}
	cells := Squarify(values, leafArea)

	svg, err := drawTreemap(a, root, cells, w, h)
	if err != nil {
		return nil, err
	}
	a.SVG = svg
	return a, nil
}

func drawTreemap(a *Artifact, root Rect, cells []Rect, w, h int) ([]byte, error) {
	r, err := chart.SVG(w, h)
	if err != nil {
		return nil, domainerrors.Internal("treemap canvas", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, domainerrors.Internal("treemap font", err)
	}
	r.SetFont(font)

	fillRect(r, Rect{W: float64(w), H: float64(h)}, color("#F8F8F8"), color("#F8F8F8"))

	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(16)
	r.Text(escape(a.Title), treemapMargin, treemapTitleHeight-12)

	fillRect(r, root, color("#E8E8E8"), drawing.ColorWhite)
	r.SetFontSize(13)
	r.Text(RootLabel, int(root.X)+6, int(root.Y)+17)

	for i, c := range cells {
		it := a.Items[i]
		fillRect(r, c, color(it.Color), drawing.ColorWhite)

		size := 16.0
		if c.W < 90 || c.H < 50 {
			size = 10
		}
		r.SetFontSize(size)
		r.SetFontColor(drawing.ColorBlack)

		label := r.MeasureText(it.Label)
		value := strconv.Itoa(it.Value)
		vb := r.MeasureText(value)
		cx := int(c.X + c.W/2)
		cy := int(c.Y + c.H/2)
		r.Text(escape(it.Label), cx-label.Width()/2, cy-2)
		r.Text(value, cx-vb.Width()/2, cy+vb.Height()+2)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, domainerrors.Internal("treemap rendering failed", err)
	}
	return buf.Bytes(), nil
}

func fillRect(r chart.Renderer, c Rect, fill, stroke drawing.Color) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(2)
	x0, y0 := int(c.X), int(c.Y)
	x1, y1 := int(c.X+c.W), int(c.Y+c.H)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.LineTo(x0, y0)
	r.Close()
	r.FillStroke()
}

// ============================================================================
// SQUARIFIED LAYOUT
// ============================================================================

// Squarify lays values out inside bounds. Cell areas are proportional to
// the values and cells come back in input order. Values should be sorted
// descending for the best aspect ratios; non-positive values get empty
// cells.
func Squarify(values []float64, bounds Rect) []Rect {
	out := make([]Rect, len(values))

	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 || bounds.W <= 0 || bounds.H <= 0 {
		return out
	}

	// Work on area-scaled copies so the caller's slice is untouched.
	scale := bounds.W * bounds.H / total
	type cell struct {
		index int
		area  float64
	}
	cells := make([]cell, 0, len(values))
	for i, v := range values {
		if v > 0 {
			cells = append(cells, cell{index: i, area: v * scale})
		}
	}
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].area > cells[j].area })

	free := bounds
	row := make([]cell, 0)
	rowAreas := func(extra ...cell) []float64 {
		areas := make([]float64, 0, len(row)+len(extra))
		for _, c := range row {
			areas = append(areas, c.area)
		}
		for _, c := range extra {
			areas = append(areas, c.area)
		}
		return areas
	}

	flush := func() {
		if len(row) == 0 {
			return
		}
		sum := 0.0
		for _, c := range row {
			sum += c.area
		}
		if free.W >= free.H {
			// Column along the left edge.
			colW := sum / free.H
			y := free.Y
			for _, c := range row {
				ch := c.area / colW
				out[c.index] = Rect{X: free.X, Y: y, W: colW, H: ch}
				y += ch
			}
			free.X += colW
			free.W -= colW
		} else {
			// Row along the top edge.
			rowH := sum / free.W
			x := free.X
			for _, c := range row {
				cw := c.area / rowH
				out[c.index] = Rect{X: x, Y: free.Y, W: cw, H: rowH}
				x += cw
			}
			free.Y += rowH
			free.H -= rowH
		}
		row = row[:0]
	}

	for _, c := range cells {
		side := free.W
		if free.H < side {
			side = free.H
		}
		if len(row) == 0 || worst(rowAreas(c), side) <= worst(rowAreas(), side) {
			row = append(row, c)
			continue
		}
		flush()
		row = append(row, c)
	}
	flush()
	return out
}

// worst is the largest aspect ratio in a row laid along a side of length w.
func worst(areas []float64, w float64) float64 {
	if len(areas) == 0 || w <= 0 {
		return 0
	}
	sum, lo, hi := 0.0, areas[0], areas[0]
	for _, a := range areas {
		sum += a
		if a < lo {
			lo = a
		}
		if a > hi {
			hi = a
		}
	}
	s2, w2 := sum*sum, w*w
	r1 := w2 * hi / s2
	r2 := s2 / (w2 * lo)
	if r1 > r2 {
		return r1
	}
	return r2
}
