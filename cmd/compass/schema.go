package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HyungjinO/k-novel-dashboard/dataset"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/schema"
)

func (a *app) schemaCmd() *cobra.Command {
	var file, format, out string
	var sample int
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Discover the columns of a CSV or XLSX file",
		Long: `Inspect a data file and print the dimensions and measures found in it.

Known columns (제목, 저자, salespoint, primary_plot, ...) are mapped to the
keys the dashboard reads; unknown ones are classified from their values.

Examples:
  compass schema --file data/trans_final_with_url.csv
  compass schema --file books.xlsx --format text`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if file == "" {
				return domainerrors.Validation("--file is required")
			}
			return a.schema(file, format, out, sample)
		},
	}

	f := cmd.Flags()
	f.StringVar(&file, "file", "", "Path to a CSV or XLSX file (required)")
	f.StringVar(&format, "format", "pretty", "Output format: json, pretty, text")
	f.StringVarP(&out, "out", "o", "", "Write output to file instead of stdout")
	f.IntVar(&sample, "sample", schema.DefaultDiscoverOptions().SampleSize, "Rows to inspect, 0 for all")
	return cmd
}

func (a *app) schema(file, format, out string, sample int) error {
	switch format {
	case "json", "pretty", "text":
	default:
		return domainerrors.Validation("unknown format " + format)
	}

	sch, err := discover(file, schema.DiscoverOptions{SampleSize: sample})
	if err != nil {
		return err
	}
	sch.DiscoveredFrom = filepath.Base(file)

	w, closeOut, err := a.output(out)
	if err != nil {
		return err
	}
	if format == "text" {
		err = writeSchemaText(w, sch)
	} else {
		err = writeJSON(w, sch, format)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func discover(path string, opt schema.DiscoverOptions) (*schema.Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		headers, rows, err := dataset.ReadXLSXRows(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if opt.SampleSize > 0 && len(rows) > opt.SampleSize {
			rows = rows[:opt.SampleSize]
		}
		return schema.DiscoverFromRows(headers, rows, opt)
	}
	return schema.DiscoverFromCSV(data, opt)
}

func writeSchemaText(w io.Writer, sch *schema.Config) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d rows)\n", sch.Name, sch.Rows)

	fmt.Fprintf(&b, "\nDimensions (%d)\n", len(sch.Dimensions))
	for _, d := range sch.Dimensions {
		line := fmt.Sprintf("  %-20s %s", d.Key, d.Header)
		if d.Category != "" {
			line += " [" + d.Category + "]"
		}
		if len(d.SampleValues) > 0 {
			line += ": " + strings.Join(d.SampleValues, ", ")
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\nMeasures (%d)\n", len(sch.Measures))
	for _, m := range sch.Measures {
		fmt.Fprintf(&b, "  %-20s %s\n", m.Key, m.Header)
	}

	if len(sch.SkippedColumns) > 0 {
		fmt.Fprintf(&b, "\nSkipped (%d)\n", len(sch.SkippedColumns))
		for _, s := range sch.SkippedColumns {
			fmt.Fprintf(&b, "  %-20s %s\n", s.Column, s.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
