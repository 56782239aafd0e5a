package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Missing values are skipped everywhere: they never count as zero and never
// enter a denominator.
// ============================================================================

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
// Rows whose group key is missing are left out.
func GroupAndAggregate(
	view RecordView,
	groupBy string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if groupBy == "" {
		groups = []Group{{
			Key:   "all",
			Label: "전체",
			View:  view,
		}}
	} else {
		groups = groupBySingle(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	if group.View.Len() == 0 {
		return
	}

	switch aggregation {
	case "count":
		group.Value = float64(group.View.Len())
		group.Count = group.View.Len()
	case "avg":
		group.Value, _ = MeanMeasure(group.View, measure)
		_, group.Count = SumMeasure(group.View, measure)
	case "max":
		group.Value, _ = MaxMeasure(group.View, measure)
		_, group.Count = SumMeasure(group.View, measure)
	case "min":
		group.Value, _ = MinMeasure(group.View, measure)
		_, group.Count = SumMeasure(group.View, measure)
	default: // "sum", "list"
		group.Value, group.Count = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view and reports how many rows
// carried it.
func SumMeasure(view RecordView, measure string) (float64, int) {
	var total float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			total += v
			n++
		}
	}
	return total, n
}

// MeanMeasure averages a measure over the rows that have it. ok is false
// when no row has it.
func MeanMeasure(view RecordView, measure string) (float64, bool) {
	if view == nil {
		return 0, false
	}
	total, n := SumMeasure(view, measure)
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) (float64, bool) {
	m := math.Inf(-1)
	found := false
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok && v > m {
			m = v
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return m, true
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) (float64, bool) {
	m := math.Inf(1)
	found := false
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok && v < m {
			m = v
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return m, true
}

// ============================================================================
// GROUP SUM / TOP N
// ============================================================================

// GroupSum sums valueKey per groupKey, in first-seen group order. A row
// missing either key is excluded from the sum and from the group's Count.
func GroupSum(view RecordView, groupKey, valueKey string) Sums {
	var s Sums
	if view == nil {
		return s
	}
	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, groupKey)
		if key == "" {
			continue
		}
		v, ok := view.Measure(i, valueKey)
		if !ok {
			continue
		}
		s.add(key, v, 1)
	}
	return s
}

// TopN returns the n keys with the largest sums, descending. Ties keep the
// original key order. n <= 0 or n beyond the number of keys returns all keys.
func TopN(s Sums, n int) []string {
	ranked := s.Entries()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = ranked[i].Key
	}
	return keys
}

// TopRows returns a view of up to n rows ordered by measure. Rows missing
// the measure go last; ties keep row order.
func TopRows(view RecordView, measure string, n int, ascending bool) RecordView {
	type row struct {
		index int
		value float64
		ok    bool
	}
	rows := make([]row, view.Len())
	for i := range rows {
		v, ok := view.Measure(i, measure)
		rows[i] = row{index: i, value: v, ok: ok}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ok != b.ok {
			return a.ok
		}
		if ascending {
			return a.value < b.value
		}
		return a.value > b.value
	})
	if n > 0 && n < len(rows) {
		rows = rows[:n]
	}
	indices := make([]int, len(rows))
	for i, r := range rows {
		indices[i] = r.index
	}
	return newSubView(view, indices)
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode. Equal keys
// keep grouping order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "label_asc", "alpha_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) > strings.ToLower(groups[j].Key) })
	case "numeric_asc", "date_asc":
		sort.SliceStable(groups, func(i, j int) bool { return numericKey(groups[i].Key) < numericKey(groups[j].Key) })
	default:
		// preserve grouping order
	}
}

// numericKey orders "2019" and "2019.0" alike; non-numeric keys sort last.
func numericKey(key string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil {
		return math.Inf(1)
	}
	return f
}

// UniqueValues returns distinct values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
