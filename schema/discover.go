package schema

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/HyungjinO/k-novel-dashboard/category"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic column classification
// ============================================================================
// Inspects raw rows and generates a schema.Config.
//
// Classification pipeline per column:
//   1. Canonicalize the header (known book fields keep their role)
//   2. Sample values → detect type (numeric, date, bool, string)
//   3. Type + cardinality → classify role (dimension, measure, skip)
//   4. primary_* columns are tagged with their analytical dimension
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize     int      // Max rows to inspect (0 = all). Default: 1000
	RecoverColumns []string // Force-include columns that were auto-skipped
	Name           string   // Dataset name override (otherwise inferred)
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// DiscoverFromCSV generates a schema.Config by inspecting CSV data.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	limit := opt.SampleSize
	if limit <= 0 {
		limit = 100000 // safety cap
	}

	var rows [][]string
	for i := 0; i < limit; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}

	config, err := DiscoverFromRows(headers, rows, opt)
	if err != nil {
		return nil, err
	}
	config.DiscoveredFrom = "CSV"
	return config, nil
}

// DiscoverFromRows classifies already-split rows. The first element of every
// row lines up with headers[0].
func DiscoverFromRows(headers []string, rows [][]string, opt DiscoverOptions) (*Config, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	recoverSet := make(map[string]bool)
	for _, col := range opt.RecoverColumns {
		recoverSet[strings.ToLower(col)] = true
	}

	config := &Config{
		Name:         opt.Name,
		Version:      "1.0",
		Rows:         len(rows),
		DiscoveredAt: time.Now().Format(time.RFC3339),
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	for i, header := range headers {
		col := analyzeColumn(header, i, rows)
		recovered := recoverSet[strings.ToLower(col.header)] || recoverSet[col.key]

		switch col.role {
		case roleDimension:
			config.Dimensions = append(config.Dimensions, col.toDimension())
		case roleMeasure:
			config.Measures = append(config.Measures, col.toMeasure())
		case roleSkipped:
			if recovered {
				config.Dimensions = append(config.Dimensions, col.toDimension())
				continue
			}
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column:      col.header,
				Reason:      col.skipReason,
				Recoverable: col.recoverable,
			})
		}
	}

	return config, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnRole int

const (
	roleDimension columnRole = iota
	roleMeasure
	roleSkipped
)

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeDate
	typeBool
)

type columnAnalysis struct {
	header      string
	key         string
	colType     columnType
	role        columnRole
	skipReason  string
	recoverable bool
	known       *Field
	category    string

	uniqueCount     int
	totalCount      int
	nullCount       int
	sampleVals      []string
	hasDecimals     bool
	cardinalityHint string
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(header string, index int, rows [][]string) columnAnalysis {
	col := columnAnalysis{
		header:     header,
		key:        Canonical(header),
		totalCount: len(rows),
	}
	if f, ok := FieldOf(col.key); ok {
		col.known = &f
	}
	if d, err := category.ParseDimension(col.key); err == nil && d.Column() == col.key {
		col.category = d.Key()
	}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) {
			col.nullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if isNull(val) {
			col.nullCount++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}
	col.uniqueCount = len(uniqueSet)

	switch {
	case col.uniqueCount <= 10:
		col.cardinalityHint = "low"
	case col.uniqueCount <= 100:
		col.cardinalityHint = "medium"
	default:
		col.cardinalityHint = "high"
	}

	if len(values) == 0 && col.known == nil && col.category == "" {
		col.role = roleSkipped
		col.skipReason = "All values are empty/null"
		return col
	}

	col.sampleVals = collectSamples(uniqueSet, 10)
	col.colType = detectType(values)
	if col.colType == typeNumeric {
		for _, v := range values {
			if strings.Contains(v, ".") {
				col.hasDecimals = true
				break
			}
		}
	}

	col.classifyRole()
	return col
}

func isNull(val string) bool {
	switch val {
	case "", "null", "NULL", "N/A", "n/a", "NaN", "nan":
		return true
	}
	return false
}

// classifyRole determines dimension vs measure vs skip.
func (col *columnAnalysis) classifyRole() {
	if col.category != "" {
		col.role = roleDimension
		return
	}
	if col.known != nil {
		if col.known.Numeric {
			col.role = roleMeasure
		} else {
			col.role = roleDimension
		}
		return
	}

	totalRows := col.totalCount
	switch col.colType {
	case typeNumeric:
		if col.uniqueCount == totalRows && totalRows > 10 && !col.hasDecimals {
			col.role = roleSkipped
			col.skipReason = "Unique per row — likely an ID column"
			return
		}
		if col.hasDecimals {
			col.role = roleMeasure
			return
		}
		// Few unique values at a low ratio → coded dimension (e.g. 0/1 flags)
		uniqueRatio := float64(col.uniqueCount) / float64(totalRows)
		if col.uniqueCount < 20 && uniqueRatio < 0.3 {
			col.role = roleDimension
			return
		}
		col.role = roleMeasure

	case typeDate, typeBool:
		col.role = roleDimension

	case typeString:
		if col.uniqueCount == totalRows && totalRows > 10 {
			col.role = roleSkipped
			col.skipReason = "Unique per row — likely an identifier"
			col.recoverable = true
			return
		}
		if col.uniqueCount > totalRows/2 && col.uniqueCount > 50 {
			col.role = roleSkipped
			col.skipReason = fmt.Sprintf("High cardinality (%d unique values) — not useful for grouping", col.uniqueCount)
			col.recoverable = true
			return
		}
		col.role = roleDimension
	}
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// detectType inspects values to determine column type.
// Requires 80%+ of non-null values to match for numeric/date/bool.
func detectType(values []string) columnType {
	if len(values) == 0 {
		return typeString
	}

	numCount, dateCount, boolCount := 0, 0, 0
	for _, v := range values {
		if IsNumeric(v) {
			numCount++
		}
		if isDate(v) {
			dateCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	switch {
	case boolCount >= threshold && boolCount > 0:
		return typeBool
	case numCount >= threshold && numCount > 0:
		return typeNumeric
	case dateCount >= threshold && dateCount > 0:
		return typeDate
	}
	return typeString
}

// ParseNumber parses "1,234.5" style numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether s parses as a number.
func IsNumeric(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006.01.02",
	"01/02/2006",
	"Jan 2, 2006",
}

func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "false" || s == "yes" || s == "no"
}

// ============================================================================
// CONVERSION HELPERS
// ============================================================================

func (col *columnAnalysis) toDimension() DimensionMeta {
	d := DimensionMeta{
		Key:             col.key,
		Header:          col.header,
		DisplayName:     toDisplayName(col.header),
		SampleValues:    col.sampleVals,
		NullCount:       col.nullCount,
		CardinalityHint: col.cardinalityHint,
		Category:        col.category,
	}
	if col.known != nil {
		d.Known = true
		d.DisplayName = col.known.DisplayName
	}
	if col.category != "" {
		if dim, err := category.ParseDimension(col.category); err == nil {
			d.DisplayName = dim.Name()
		}
	}
	return d
}

func (col *columnAnalysis) toMeasure() MeasureMeta {
	m := MeasureMeta{
		Key:                col.key,
		Header:             col.header,
		DisplayName:        toDisplayName(col.header),
		NullCount:          col.nullCount,
		DefaultAggregation: "sum",
	}
	if col.known != nil {
		m.Known = true
		m.DisplayName = col.known.DisplayName
		m.Unit = col.known.Unit
		if col.known.Key == KeyBSR {
			m.DefaultAggregation = "avg"
		}
	}
	return m
}

// collectSamples picks up to maxSamples values in sorted order.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
