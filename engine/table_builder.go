package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces paginated TableData from Query + Groups
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// ============================================================================

// BuildTable produces a TableData. "list" aggregations page through the rows
// of view; everything else tabulates the groups.
func BuildTable(q Query, groups []Group, view RecordView, columns []TableColumn, page, pageSize int, f Formatter) *TableData {
	if q.Aggregation == "list" {
		return BuildList(q.Title, view, columns, page, pageSize, f)
	}
	return buildAggregatedTable(q, groups, f)
}

// ============================================================================
// LIST TABLE — Row per record
// ============================================================================

// BuildList renders page (1-based) of view with the given columns. When
// columns is empty every dimension key becomes a text column. page is clamped
// into range.
func BuildList(title string, view RecordView, columns []TableColumn, page, pageSize int, f Formatter) *TableData {
	if len(columns) == 0 {
		for _, key := range view.DimensionKeys() {
			columns = append(columns, TableColumn{Key: key, Label: LabelForKey(key), Type: "text", Align: "left"})
		}
	}

	total := view.Len()
	if pageSize <= 0 {
		pageSize = total
	}
	pages := 1
	if pageSize > 0 && total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	table := &TableData{
		Title:     title,
		Columns:   columns,
		Rows:      [][]string{},
		Page:      page,
		Pages:     pages,
		TotalRows: total,
	}
	if total == 0 {
		return table
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	for i := start; i < end; i++ {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, cellText(view, i, c, f))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func cellText(view RecordView, i int, c TableColumn, f Formatter) string {
	if c.Type == "number" {
		if v, ok := view.Measure(i, c.Key); ok {
			return f.Number(v, 0)
		}
		return ""
	}
	return view.Dimension(i, c.Key)
}

// ============================================================================
// AGGREGATED TABLE — Summary rows
// ============================================================================

func buildAggregatedTable(q Query, groups []Group, f Formatter) *TableData {
	if len(groups) == 0 {
		return &TableData{
			Title:   q.Title,
			Columns: []TableColumn{},
			Rows:    [][]string{},
			Page:    1,
			Pages:   1,
		}
	}

	groupLabel := "그룹"
	if q.GroupBy != "" {
		groupLabel = LabelForKey(q.GroupBy)
	}

	columns := []TableColumn{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: LabelForAggregation(q.Aggregation), Type: "number", Align: "right"},
		{Key: "count", Label: "건수", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(groups))
	var totalValue float64
	var totalCount int

	for _, g := range groups {
		rows = append(rows, []string{
			g.Label,
			f.Number(g.Value, 2),
			fmt.Sprintf("%d", g.Count),
		})
		totalValue += g.Value
		totalCount += g.Count
	}

	return &TableData{
		Title:     q.Title,
		Columns:   columns,
		Rows:      rows,
		Page:      1,
		Pages:     1,
		TotalRows: len(rows),
		Summary: &Summary{
			Label: "합계",
			Values: map[string]string{
				"value": f.Number(totalValue, 2),
				"count": f.Int(totalCount),
			},
		},
	}
}
