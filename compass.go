// Package compass is the K-Novel Compass dashboard: where Korean fiction
// stands at home and how it travels abroad in translation.
//
// The packages layer bottom-up:
//
//	category   analytical dimensions and their Korean label vocabulary
//	schema     canonical column keys and column discovery
//	dataset    CSV/XLSX tables read into engine records
//	engine     filtering, grouping, aggregation and label distributions
//	render     donut, treemap, bubble and bar charts as SVG
//	content    page copy and metric definitions (YAML)
//	search     full-text book search
//	dashboard  page composition from the above
//
// cmd/compass serves the pages over HTTP and renders charts, metric cards
// and column discovery from the command line.
package compass
