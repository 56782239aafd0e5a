package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	"github.com/HyungjinO/k-novel-dashboard/schema"
)

// ============================================================================
// PARSERS — CSV / XLSX bytes into []engine.Record
// ============================================================================
// Headers go through schema.Canonical, so 제목 and Title both land on
// "title". Every non-empty cell is kept as a dimension; cells that parse as
// numbers are also exposed as measures. Empty and null-ish cells are absent,
// never zero.
// ============================================================================

// Parsed is the raw result of reading one file.
type Parsed struct {
	Headers []string // source headers, in file order
	Keys    []string // canonical keys, in file order, deduplicated
	Records []engine.Record
	Numeric []string // keys with at least one numeric cell
}

// View wraps the parsed records with their key order.
func (p *Parsed) View() engine.RecordView {
	return engine.NewSliceViewWithKeys(p.Records, p.Keys, p.Numeric)
}

// ParseCSV reads CSV data. A UTF-8 BOM on the first header is ignored and
// malformed rows are skipped.
func ParseCSV(data []byte) (*Parsed, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}
	return FromRows(headers, rows), nil
}

// ParseXLSX reads the first sheet of a workbook; its first row is the header.
func ParseXLSX(r io.Reader) (*Parsed, error) {
	headers, rows, err := ReadXLSXRows(r)
	if err != nil {
		return nil, err
	}
	return FromRows(headers, rows), nil
}

// ReadXLSXRows returns the raw cells of the first sheet of a workbook, split
// into the header row and the data rows.
func ReadXLSXRows(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return rows[0], rows[1:], nil
}

// FromRows builds records from a header row and data rows. Short rows are
// padded with absent cells; extra cells are ignored.
func FromRows(headers []string, rows [][]string) *Parsed {
	p := &Parsed{Headers: headers}

	keys := make([]string, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		keys[i] = schema.Canonical(h)
		if keys[i] == "" || seen[keys[i]] {
			continue
		}
		seen[keys[i]] = true
		p.Keys = append(p.Keys, keys[i])
	}

	numeric := make(map[string]bool)
	p.Records = make([]engine.Record, 0, len(rows))
	for _, row := range rows {
		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}
		for i, val := range row {
			if i >= len(keys) {
				break
			}
			key := keys[i]
			val = normalizeCell(val)
			if key == "" || val == "" {
				continue
			}
			if _, dup := rec.Dimensions[key]; dup {
				continue // first aliased column wins
			}
			rec.Dimensions[key] = val
			if f, ok := schema.ParseNumber(val); ok {
				rec.Measures[key] = f
				numeric[key] = true
			}
		}
		p.Records = append(p.Records, rec)
	}

	for _, k := range p.Keys {
		if numeric[k] {
			p.Numeric = append(p.Numeric, k)
		}
	}
	return p
}

// normalizeCell trims a cell, drops null markers and turns integral floats
// written by spreadsheet exports ("2014.0") back into integers so years and
// ISBNs compare as text.
func normalizeCell(val string) string {
	val = strings.TrimSpace(strings.TrimPrefix(val, "\ufeff"))
	switch val {
	case "null", "NULL", "N/A", "n/a", "NaN", "nan", "None":
		return ""
	}
	if i := strings.IndexByte(val, '.'); i > 0 && isDigits(val[:i]) && strings.Trim(val[i+1:], "0") == "" {
		return val[:i]
	}
	return val
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
