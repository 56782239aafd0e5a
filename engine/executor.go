package engine

import (
	"context"
	"log/slog"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// ============================================================================
// EXECUTOR — Query dispatcher
// ============================================================================
// Entry point: Execute(ctx, query, view, opts...)
//
// Pipeline:
//   1. Apply filters from Query → SubView
//   2. Group and aggregate
//   3. Dispatch to builder (chart / table / text)
//   4. Return Result
//
// All computation is local; the engine never owns the rows it reads.
// ============================================================================

// Execute runs a Query against a RecordView and returns a render-ready Result.
// An unknown intent is a VALIDATION error. A query that matches nothing is not
// an error: the Result has Matched == 0 and empty payloads.
func Execute(ctx context.Context, q Query, view RecordView, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	switch q.Intent {
	case "chart", "table", "text":
	default:
		return nil, domainerrors.Validation("unknown query intent " + q.Intent)
	}

	// Resolve which measure to aggregate
	measure := q.Measure
	if measure == "" {
		measure = cfg.DefaultMeasure
	}

	if view == nil {
		view = NewSliceView(nil)
	}

	// 1. Apply filters → SubView (zero-copy)
	filtered := ApplyFilters(view, q.Filters)

	cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "query executed",
		slog.String("intent", q.Intent),
		slog.String("aggregation", q.Aggregation),
		slog.String("measure", measure),
		slog.String("group_by", q.GroupBy),
		slog.Int("records", view.Len()),
		slog.Int("matched", filtered.Len()),
	)

	// 2. Group and aggregate
	groups := GroupAndAggregate(filtered, q.GroupBy, measure, q.Aggregation, q.SortBy, q.Limit)

	// 3. Dispatch to builder
	result := &Result{Type: q.Intent, Title: q.Title, Matched: filtered.Len()}

	switch q.Intent {
	case "chart":
		result.ChartConfig = BuildChart(q, groups)
		if result.ChartConfig == nil {
			result.Type = "text"
			result.TextData = &TextData{Value: "-", Empty: true}
		}
	case "table":
		result.TableData = BuildTable(q, groups, filtered, cfg.Columns, cfg.Page, cfg.PageSize, cfg.Formatter)
	case "text":
		result.TextData = BuildText(q, filtered, measure, cfg.Formatter)
	}

	return result, nil
}
