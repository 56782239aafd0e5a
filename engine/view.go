package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns dataset rows. It reads through this interface.
//
// Implementations:
//   SliceView   — wraps []Record (CSV / XLSX loader output)
//   SubView     — filtered subset (indices into parent, zero-copy)
//   ConcatView  — virtual concatenation of two views
//
// Missing values are reported, not defaulted: Dimension returns "" and
// Measure returns ok=false.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) (float64, bool)
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// ColumnOf pulls one dimension out of a view as a Column. Empty values
// become null cells.
func ColumnOf(view RecordView, key string) Column {
	if view == nil {
		return nil
	}
	col := make(Column, view.Len())
	for i := range col {
		if v := view.Dimension(i, key); v != "" {
			col[i] = Text(v)
		}
	}
	return col
}

// HasKey reports whether key is a dimension or measure of the view.
func HasKey(view RecordView, key string) bool {
	if view == nil {
		return false
	}
	for _, k := range view.DimensionKeys() {
		if k == key {
			return true
		}
	}
	for _, k := range view.MeasureKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

// NewSliceViewWithKeys is NewSliceView with a fixed key order, e.g. the
// header order of the source file.
func NewSliceViewWithKeys(records []Record, dimKeys, mesKeys []string) RecordView {
	return &SliceView{records: records, dimKeys: dimKeys, mesKeys: mesKeys}
}

func (v *SliceView) cacheKeys() {
	if len(v.records) == 0 {
		return
	}
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.records) {
		return 0, false
	}
	f, ok := v.records[i].Measures[key]
	return f, ok
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// CONCAT VIEW — virtual concatenation of two views
// ============================================================================

// ConcatView logically concatenates two RecordViews. Used to index the
// catalog and the translated table as one book list.
type ConcatView struct {
	a, b RecordView
}

// Concat returns a view reading a then b, without copying either.
func Concat(a, b RecordView) RecordView {
	return &ConcatView{a: a, b: b}
}

func (v *ConcatView) Len() int { return v.a.Len() + v.b.Len() }

func (v *ConcatView) Dimension(i int, key string) string {
	if i < v.a.Len() {
		return v.a.Dimension(i, key)
	}
	return v.b.Dimension(i-v.a.Len(), key)
}

func (v *ConcatView) Measure(i int, key string) (float64, bool) {
	if i < v.a.Len() {
		return v.a.Measure(i, key)
	}
	return v.b.Measure(i-v.a.Len(), key)
}

func (v *ConcatView) DimensionKeys() []string {
	return mergeKeys(v.a.DimensionKeys(), v.b.DimensionKeys())
}

func (v *ConcatView) MeasureKeys() []string {
	return mergeKeys(v.a.MeasureKeys(), v.b.MeasureKeys())
}

func mergeKeys(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, keys := range [][]string{a, b} {
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
