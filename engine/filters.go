package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Dimension / measure filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// ApplyFilters returns a view of records matching all filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// A record with a missing measure never matches a measure filter.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	// Pre-build lowercase lookup sets for each dimension filter
	include := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			include[dim] = toLowerSet(allowed)
		}
	}
	exclude := make(map[string]map[string]bool)
	for dim, denied := range filters.Exclude {
		if len(denied) > 0 {
			exclude[dim] = toLowerSet(denied)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matches(view, i, include, exclude, filters.Measures) {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func matches(view RecordView, i int, include, exclude map[string]map[string]bool, measures map[string]float64) bool {
	for dim, set := range include {
		if !set[strings.ToLower(view.Dimension(i, dim))] {
			return false
		}
	}
	for dim, set := range exclude {
		if set[strings.ToLower(view.Dimension(i, dim))] {
			return false
		}
	}
	for key, want := range measures {
		got, ok := view.Measure(i, key)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// ExcludeValues returns the records whose dimension value is not among
// values. Records missing the dimension are kept.
func ExcludeValues(view RecordView, dimension string, values []string) RecordView {
	return ApplyFilters(view, Filters{Exclude: map[string][]string{dimension: values}})
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
