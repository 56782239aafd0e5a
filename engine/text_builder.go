package engine

// ============================================================================
// TEXT BUILDER — Produces TextData for single-figure widgets
// ============================================================================

// BuildText reduces the measure of view to one formatted figure. Rows
// without the measure are ignored; when none has it the figure is marked
// Empty.
func BuildText(q Query, view RecordView, measure string, f Formatter) *TextData {
	td := &TextData{Unit: q.Unit}

	var (
		value float64
		ok    bool
	)
	switch q.Aggregation {
	case "count":
		value, ok = float64(view.Len()), view.Len() > 0
		td.Count = view.Len()
	case "avg":
		value, ok = MeanMeasure(view, measure)
		_, td.Count = SumMeasure(view, measure)
	case "max":
		value, ok = MaxMeasure(view, measure)
		_, td.Count = SumMeasure(view, measure)
	case "min":
		value, ok = MinMeasure(view, measure)
		_, td.Count = SumMeasure(view, measure)
	default:
		value, td.Count = SumMeasure(view, measure)
		ok = td.Count > 0
	}

	if !ok {
		td.Empty = true
		td.Value = "-"
		return td
	}

	td.RawValue = value
	if q.Aggregation == "count" {
		td.Value = f.Int(int(value)) + q.Unit
	} else {
		td.Value = f.Number(value, 2) + q.Unit
	}
	return td
}
