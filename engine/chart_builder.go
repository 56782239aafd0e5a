package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Query + Groups
// ============================================================================

// Palette shared by every dashboard chart.
var defaultColors = []string{
	"#A3C9A8", "#84B1BE", "#F2D388", "#C98474", "#8E7DBE",
	"#F5B7B1", "#AED6F1", "#F9E79F", "#D7BDE2", "#A2D9CE",
	"#FADBD8", "#F5CBA7", "#D2B4DE", "#A9CCE3", "#A3E4D7",
}

// Palette returns a copy of the dashboard palette.
func Palette() []string {
	return append([]string(nil), defaultColors...)
}

// BuildChart produces a ChartConfig from a Query and aggregated groups.
// Returns nil when there is nothing to draw.
func BuildChart(q Query, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	chartType := q.Visualize
	if chartType == "" || chartType == "chart" {
		chartType = "bar"
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      q.Title,
		XAxis:      q.XAxis,
		YAxis:      q.YAxis,
		ShowLegend: false,
		ShowGrid:   true,
	}
	if config.XAxis == "" && q.GroupBy != "" {
		config.XAxis = LabelForKey(q.GroupBy)
	}
	if config.YAxis == "" {
		config.YAxis = LabelForAggregation(q.Aggregation)
	}

	config.Series = buildSingleSeries(groups, q.Title)
	config.Colors = assignColors(len(groups))
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "값"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name:  seriesName,
		Data:  points,
		Color: defaultColors[0],
	}}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
