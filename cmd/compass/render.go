package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HyungjinO/k-novel-dashboard/category"
	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
)

// Bar charts that are not category distributions.
const (
	chartAuthors = "authors"
	chartYears   = "years"
)

type renderFlags struct {
	category string
	chart    string
	format   string
	out      string
}

func (a *app) renderCmd() *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one dashboard chart",
		Long: `Render one chart of the dashboard.

Charts:
  donut, treemap, bubble   distribution of --category over translated books
  authors                  total sales point of the top authors
  years                    overseas hits per publication year

Formats:
  svg       The chart image (default)
  json      Displayed items as JSON
  pretty    Pretty-printed JSON
  csv       Displayed items as CSV (ready for Sheets/Excel)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd.Context(), rf)
		},
	}

	f := cmd.Flags()
	f.StringVar(&rf.category, "category", category.Genre.Name(), "Category key or name, e.g. plot or 전개")
	f.StringVar(&rf.chart, "chart", render.Donut.Key(), "Chart: donut, treemap, bubble, authors, years")
	f.StringVar(&rf.format, "format", "svg", "Output format: svg, json, pretty, csv")
	f.StringVarP(&rf.out, "out", "o", "", "Write output to file instead of stdout")
	return cmd
}

func (a *app) render(ctx context.Context, rf renderFlags) error {
	switch rf.format {
	case "svg", "json", "pretty", "csv":
	default:
		return domainerrors.Validation("unknown format " + rf.format)
	}

	c, release, err := a.composer()
	if err != nil {
		return err
	}
	defer release()

	cfg, art, err := chartFor(ctx, c, rf)
	if err != nil {
		return err
	}

	w, closeOut, err := a.output(rf.out)
	if err != nil {
		return err
	}

	switch rf.format {
	case "svg":
		_, err = w.Write(art.SVG)
	case "csv":
		if cfg != nil {
			err = writeChartCSV(w, cfg)
		} else {
			err = writeItemsCSV(w, art)
		}
	default:
		var v interface{} = art
		if cfg != nil {
			v = cfg
		}
		err = writeJSON(w, v, rf.format)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

// chartFor renders the requested chart. Bar charts also return the chart
// data they were drawn from.
func chartFor(ctx context.Context, c *dashboard.Composer, rf renderFlags) (*engine.ChartConfig, *render.Artifact, error) {
	switch strings.ToLower(strings.TrimSpace(rf.chart)) {
	case chartAuthors:
		return c.AuthorsChart(ctx)
	case chartYears:
		return c.TrendChart(ctx)
	}

	kind, err := render.ParseKind(rf.chart)
	if err != nil {
		return nil, nil, err
	}
	d, err := category.ParseDimension(rf.category)
	if err != nil {
		return nil, nil, err
	}
	art, err := c.Chart(d, kind)
	return nil, art, err
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

func writeItemsCSV(w io.Writer, art *render.Artifact) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{art.Title, "권수", "비율(%)"})
	for _, it := range art.Items {
		_ = cw.Write([]string{it.Label, fmt.Sprint(it.Value), fmtNum(it.Percent)})
	}
	cw.Flush()
	return cw.Error()
}

func writeChartCSV(w io.Writer, cfg *engine.ChartConfig) error {
	cw := csv.NewWriter(w)

	xLabel, yLabel := cfg.XAxis, cfg.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	// Single series → two columns
	if len(cfg.Series) <= 1 {
		_ = cw.Write([]string{xLabel, yLabel})
		if len(cfg.Series) == 1 {
			for _, d := range cfg.Series[0].Data {
				_ = cw.Write([]string{d.Label, fmtNum(d.Value)})
			}
		}
		cw.Flush()
		return cw.Error()
	}

	// Multi-series → label + one column per series
	headers := []string{xLabel}
	for _, s := range cfg.Series {
		headers = append(headers, s.Name)
	}
	_ = cw.Write(headers)
	for i, d := range cfg.Series[0].Data {
		row := []string{d.Label}
		for _, s := range cfg.Series {
			if i < len(s.Data) {
				row = append(row, fmtNum(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		_ = cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}
