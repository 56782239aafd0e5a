package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

type summaryOutput struct {
	Metrics []dashboard.MetricCard `json:"metrics"`
	Notices []dashboard.Notice     `json:"notices,omitempty"`
}

func (a *app) summaryCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the headline metric cards",
		Long: `Print the metric cards shown at the top of the domestic dashboard.

Formats:
  text      Human-readable summary (default)
  json      Full JSON output
  pretty    Pretty-printed JSON
  csv       Label and value per card`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.summary(cmd.Context(), format, out)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, pretty, csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to file instead of stdout")
	return cmd
}

func (a *app) summary(ctx context.Context, format, out string) error {
	switch format {
	case "text", "json", "pretty", "csv":
	default:
		return domainerrors.Validation("unknown format " + format)
	}

	c, release, err := a.composer()
	if err != nil {
		return err
	}
	defer release()

	cards, notices := c.Metrics(ctx)

	w, closeOut, err := a.output(out)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		err = writeSummaryText(w, cards, notices)
	case "csv":
		err = writeSummaryCSV(w, cards)
	default:
		err = writeJSON(w, summaryOutput{Metrics: cards, Notices: notices}, format)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func writeSummaryText(w io.Writer, cards []dashboard.MetricCard, notices []dashboard.Notice) error {
	for _, card := range cards {
		if _, err := fmt.Fprintf(w, "%s: %s\n", card.Label, card.Value); err != nil {
			return err
		}
	}
	for _, n := range notices {
		if _, err := fmt.Fprintf(w, "! [%s] %s (%s)\n", n.Section, n.Message, n.Detail); err != nil {
			return err
		}
	}
	return nil
}

func writeSummaryCSV(w io.Writer, cards []dashboard.MetricCard) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Key", "Label", "Value"})
	for _, card := range cards {
		_ = cw.Write([]string{card.Key, card.Label, card.Value})
	}
	cw.Flush()
	return cw.Error()
}
