package engine

import (
	"io"
	"log/slog"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	DefaultMeasure string // measure key if Query.Measure is empty
	Logger         *slog.Logger
	Formatter      Formatter
	Columns        []TableColumn // list table columns
	Page           int
	PageSize       int
}

// WithDefaultMeasure sets the measure to aggregate when Query.Measure is empty.
func WithDefaultMeasure(measure string) Option {
	return func(c *config) {
		c.DefaultMeasure = measure
	}
}

// WithLogger routes engine logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithFormatter overrides the number formatter.
func WithFormatter(f Formatter) Option {
	return func(c *config) {
		c.Formatter = f
	}
}

// WithColumns selects the columns of list tables.
func WithColumns(cols ...TableColumn) Option {
	return func(c *config) {
		c.Columns = cols
	}
}

// WithPage selects a 1-based page of list tables.
func WithPage(page, size int) Option {
	return func(c *config) {
		c.Page = page
		c.PageSize = size
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		DefaultMeasure: "salespoint",
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Formatter:      Korean(),
		Page:           1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
