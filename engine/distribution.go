package engine

import "sort"

// ============================================================================
// DISTRIBUTION — label → occurrence count, in first-seen order
// ============================================================================

// Bucket is one label of a distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution maps unique labels to counts and remembers the order in which
// labels were first seen. The zero value is an empty distribution.
type Distribution struct {
	buckets []Bucket
	index   map[string]int
}

// CountValues counts the valid cells of col. Null cells are dropped.
func CountValues(col Column) Distribution {
	var d Distribution
	for _, cell := range col {
		if cell.Valid {
			d.add(cell.Value, 1)
		}
	}
	return d
}

// NewDistribution builds a distribution from buckets, merging repeated labels
// and dropping non-positive counts.
func NewDistribution(buckets ...Bucket) Distribution {
	var d Distribution
	for _, b := range buckets {
		if b.Count > 0 {
			d.add(b.Label, b.Count)
		}
	}
	return d
}

func (d *Distribution) add(label string, n int) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[label]; ok {
		d.buckets[i].Count += n
		return
	}
	d.index[label] = len(d.buckets)
	d.buckets = append(d.buckets, Bucket{Label: label, Count: n})
}

// Len is the number of distinct labels.
func (d Distribution) Len() int { return len(d.buckets) }

// IsEmpty reports whether nothing was counted.
func (d Distribution) IsEmpty() bool { return len(d.buckets) == 0 }

// Total is the number of observations, i.e. the sum of all counts.
func (d Distribution) Total() int {
	total := 0
	for _, b := range d.buckets {
		total += b.Count
	}
	return total
}

// Count returns the count for label, 0 when absent.
func (d Distribution) Count(label string) int {
	if i, ok := d.index[label]; ok {
		return d.buckets[i].Count
	}
	return 0
}

// Labels returns labels in first-seen order.
func (d Distribution) Labels() []string {
	labels := make([]string, len(d.buckets))
	for i, b := range d.buckets {
		labels[i] = b.Label
	}
	return labels
}

// Buckets returns a copy of the buckets in first-seen order.
func (d Distribution) Buckets() []Bucket {
	return append([]Bucket(nil), d.buckets...)
}

// Ranked returns a copy sorted by count descending; equal counts keep
// first-seen order.
func (d Distribution) Ranked() []Bucket {
	ranked := d.Buckets()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	return ranked
}

// ============================================================================
// SUMS — ordered group → sum with observation counts
// ============================================================================

// Sum is the aggregate of one group.
type Sum struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"` // rows that contributed to Value
}

// Sums is an ordered mapping of group key to Sum.
type Sums struct {
	entries []Sum
	index   map[string]int
}

// NewSums builds Sums from entries in the given order. Repeated keys are
// merged.
func NewSums(entries ...Sum) Sums {
	var s Sums
	for _, e := range entries {
		s.add(e.Key, e.Value, e.Count)
	}
	return s
}

func (s *Sums) add(key string, value float64, n int) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[key]; ok {
		s.entries[i].Value += value
		s.entries[i].Count += n
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Sum{Key: key, Value: value, Count: n})
}

// Len is the number of groups.
func (s Sums) Len() int { return len(s.entries) }

// Get returns the sum for key.
func (s Sums) Get(key string) (float64, bool) {
	if i, ok := s.index[key]; ok {
		return s.entries[i].Value, true
	}
	return 0, false
}

// Mean divides the sum of key by the rows that contributed to it.
func (s Sums) Mean(key string) (float64, bool) {
	i, ok := s.index[key]
	if !ok || s.entries[i].Count == 0 {
		return 0, false
	}
	return s.entries[i].Value / float64(s.entries[i].Count), true
}

// Keys returns group keys in first-seen order.
func (s Sums) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the groups in first-seen order.
func (s Sums) Entries() []Sum {
	return append([]Sum(nil), s.entries...)
}

// AsMap returns the plain key → sum mapping.
func (s Sums) AsMap() map[string]float64 {
	m := make(map[string]float64, len(s.entries))
	for _, e := range s.entries {
		m[e.Key] = e.Value
	}
	return m
}
