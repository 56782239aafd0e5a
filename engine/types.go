package engine

// ============================================================================
// ENGINE TYPES — Book-table analytics
// ============================================================================
// Record holds one row of a flat dataset. A key that is absent from both maps
// is a missing (null) value; the engine never invents zeroes for it.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Every non-empty cell is a dimension; cells that parse as numbers are also
// measures under the same key.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// CELL / COLUMN — Optional values pulled out of a view
// ============================================================================

// Cell is one optional string value.
type Cell struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// Null is the missing cell.
var Null = Cell{}

// Text returns a present cell holding v.
func Text(v string) Cell {
	return Cell{Value: v, Valid: true}
}

// Column is an ordered sequence of optional values.
type Column []Cell

// NonNull counts the valid cells.
func (c Column) NonNull() int {
	n := 0
	for _, cell := range c {
		if cell.Valid {
			n++
		}
	}
	return n
}

// ============================================================================
// QUERY — What a widget asks the engine to compute
// ============================================================================

// Query defines what the engine should compute.
type Query struct {
	Intent      string  `json:"intent"`      // "text", "table", "chart"
	Filters     Filters `json:"filters"`     // Which records to include
	Aggregation string  `json:"aggregation"` // "sum", "count", "avg", "max", "min", "list"
	Measure     string  `json:"measure"`     // Which measure to aggregate (empty → default)
	GroupBy     string  `json:"groupBy"`     // Dimension key
	SortBy      string  `json:"sortBy"`      // "value_desc", "value_asc", "label_asc", "label_desc", "numeric_asc"
	Limit       int     `json:"limit"`       // 0 = all
	Visualize   string  `json:"visualize"`   // "bar", "table", "text"
	Title       string  `json:"title"`
	XAxis       string  `json:"xAxis,omitempty"`
	YAxis       string  `json:"yAxis,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

// Filters define which records to include.
// Dimensions: OR within a key, AND across keys. Measures: exact match.
// Exclude removes records whose dimension value is listed. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions,omitempty"`
	Measures   map[string]float64  `json:"measures,omitempty"`
	Exclude    map[string][]string `json:"exclude,omitempty"`
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	vals, ok := f.Dimensions[dimension]
	return ok && len(vals) > 0
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	for _, vals := range f.Exclude {
		if len(vals) > 0 {
			return false
		}
	}
	return len(f.Measures) == 0
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output.
type Result struct {
	Type  string `json:"type"` // "chart", "table", "text"
	Title string `json:"title"`

	// Exactly one of these is populated based on Type:
	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`
	TextData    *TextData    `json:"textData,omitempty"`

	// Records counted after filtering.
	Matched int `json:"matched"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartConfig, TableData, or TextData.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"` // observations that contributed to Value
	View  RecordView `json:"-"`     // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig describes a single-series chart independent of the renderer.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table, one page at a time.
type TableData struct {
	Title     string        `json:"title"`
	Columns   []TableColumn `json:"columns"`
	Rows      [][]string    `json:"rows"`
	Summary   *Summary      `json:"summary,omitempty"`
	Page      int           `json:"page"`
	Pages     int           `json:"pages"`
	TotalRows int           `json:"totalRows"`
}

// TableColumn defines a table column.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "image"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a single formatted figure, used by metric cards.
type TextData struct {
	Value    string  `json:"value"`
	RawValue float64 `json:"rawValue"`
	Unit     string  `json:"unit"`
	Count    int     `json:"count"`
	// Empty is set when no observation contributed to the figure.
	Empty bool `json:"empty"`
}
