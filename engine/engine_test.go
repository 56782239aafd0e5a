package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

func rec(dims map[string]string, meas map[string]float64) Record {
	if dims == nil {
		dims = map[string]string{}
	}
	if meas == nil {
		meas = map[string]float64{}
	}
	return Record{Dimensions: dims, Measures: meas}
}

func booksView() RecordView {
	return NewSliceView([]Record{
		rec(map[string]string{"isbn": "1", "author": "한강", "title": "소년이 온다", "published_year": "2014", "success": "1"},
			map[string]float64{"salespoint": 120000, "success": 1, "published_year": 2014}),
		rec(map[string]string{"isbn": "2", "author": "한강", "title": "채식주의자", "published_year": "2007", "success": "1"},
			map[string]float64{"salespoint": 98000, "success": 1, "published_year": 2007}),
		rec(map[string]string{"isbn": "3", "author": "정유정", "title": "종의 기원", "published_year": "2016", "success": "0"},
			map[string]float64{"salespoint": 40000, "success": 0, "published_year": 2016}),
		rec(map[string]string{"isbn": "4", "author": "김영하", "title": "살인자의 기억법", "published_year": "2013"},
			map[string]float64{"published_year": 2013}),
		rec(map[string]string{"isbn": "5", "title": "작자 미상"},
			map[string]float64{"salespoint": 500}),
	})
}

// ============================================================================
// DISTRIBUTION
// ============================================================================

func TestCountValues_DropsNulls(t *testing.T) {
	col := Column{Text("b"), Null, Text("a"), Text("b"), Null}
	d := CountValues(col)

	assert.Equal(t, 3, d.Total())
	assert.Equal(t, col.NonNull(), d.Total())
	assert.Equal(t, []string{"b", "a"}, d.Labels(), "first-seen order")
	assert.Equal(t, 2, d.Count("b"))
	assert.Equal(t, 0, d.Count("z"))
}

func TestCountValues_Empty(t *testing.T) {
	for name, col := range map[string]Column{
		"nil":       nil,
		"empty":     {},
		"all nulls": {Null, Null},
	} {
		t.Run(name, func(t *testing.T) {
			d := CountValues(col)
			assert.True(t, d.IsEmpty())
			assert.Equal(t, 0, d.Total())
			assert.Empty(t, d.Labels())
		})
	}
}

func TestDistribution_RankedKeepsFirstSeenOnTies(t *testing.T) {
	d := CountValues(Column{Text("x"), Text("y"), Text("z"), Text("z"), Text("y")})

	ranked := d.Ranked()
	assert.Equal(t, []Bucket{{"y", 2}, {"z", 2}, {"x", 1}}, ranked)

	ranked[0].Count = 99
	assert.Equal(t, 2, d.Count("y"), "Ranked returns a copy")
}

func TestNewDistribution_MergesAndDropsEmpty(t *testing.T) {
	d := NewDistribution(Bucket{"a", 2}, Bucket{"b", 0}, Bucket{"a", 1})
	assert.Equal(t, []Bucket{{"a", 3}}, d.Buckets())
}

// ============================================================================
// GROUP SUM / TOP N
// ============================================================================

func TestGroupSum_Scenario(t *testing.T) {
	view := NewSliceView([]Record{
		rec(map[string]string{"author": "A"}, map[string]float64{"sales": 10}),
		rec(map[string]string{"author": "A"}, map[string]float64{"sales": 5}),
		rec(map[string]string{"author": "B"}, map[string]float64{"sales": 7}),
	})

	sums := GroupSum(view, "author", "sales")
	assert.Equal(t, map[string]float64{"A": 15, "B": 7}, sums.AsMap())
	assert.Equal(t, []string{"A"}, TopN(sums, 1))
}

func TestGroupSum_MissingValuesLeaveDenominator(t *testing.T) {
	sums := GroupSum(booksView(), "author", "salespoint")

	assert.Equal(t, []string{"한강", "정유정"}, sums.Keys(), "김영하 has no salespoint, row 5 has no author")
	mean, ok := sums.Mean("한강")
	require.True(t, ok)
	assert.InDelta(t, 109000, mean, 1e-9)

	_, ok = sums.Mean("김영하")
	assert.False(t, ok)
}

func TestTopN(t *testing.T) {
	sums := NewSums(Sum{Key: "a", Value: 1}, Sum{Key: "b", Value: 3}, Sum{Key: "c", Value: 3}, Sum{Key: "d", Value: 2})

	assert.Equal(t, []string{"b", "c"}, TopN(sums, 2), "ties keep key order")
	assert.Equal(t, []string{"b", "c", "d", "a"}, TopN(sums, 0))
	assert.Equal(t, []string{"b", "c", "d", "a"}, TopN(sums, 10))
	assert.Empty(t, TopN(Sums{}, 3))
}

func TestMeanMeasure(t *testing.T) {
	mean, ok := MeanMeasure(booksView(), "salespoint")
	require.True(t, ok)
	assert.InDelta(t, (120000.0+98000+40000+500)/4, mean, 1e-9)

	_, ok = MeanMeasure(NewSliceView(nil), "salespoint")
	assert.False(t, ok)
	_, ok = MeanMeasure(nil, "salespoint")
	assert.False(t, ok)
}

func TestTopRows(t *testing.T) {
	top := TopRows(booksView(), "salespoint", 2, false)
	require.Equal(t, 2, top.Len())
	assert.Equal(t, "1", top.Dimension(0, "isbn"))
	assert.Equal(t, "2", top.Dimension(1, "isbn"))

	asc := TopRows(booksView(), "salespoint", 0, true)
	require.Equal(t, 5, asc.Len())
	assert.Equal(t, "5", asc.Dimension(0, "isbn"))
	assert.Equal(t, "4", asc.Dimension(4, "isbn"), "missing measure goes last")
}

// ============================================================================
// FILTERS
// ============================================================================

func TestApplyFilters(t *testing.T) {
	view := booksView()

	byAuthor := ApplyFilters(view, Filters{Dimensions: map[string][]string{"author": {"한강"}}})
	assert.Equal(t, 2, byAuthor.Len())

	successes := ApplyFilters(view, Filters{Measures: map[string]float64{"success": 1}})
	assert.Equal(t, 2, successes.Len())

	assert.Same(t, view, ApplyFilters(view, Filters{}))
}

func TestExcludeValues(t *testing.T) {
	rest := ExcludeValues(booksView(), "isbn", []string{"1", "3"})
	require.Equal(t, 3, rest.Len())
	assert.Equal(t, []string{"2", "4", "5"}, UniqueValues(rest, "isbn"))
}

func TestColumnOf(t *testing.T) {
	col := ColumnOf(booksView(), "author")
	assert.Len(t, col, 5)
	assert.Equal(t, 4, col.NonNull())
	assert.False(t, col[4].Valid)
	assert.Nil(t, ColumnOf(nil, "author"))
}

func TestConcat(t *testing.T) {
	a := NewSliceView([]Record{rec(map[string]string{"title": "A"}, nil)})
	b := NewSliceView([]Record{rec(map[string]string{"title": "B", "publisher": "P"}, nil)})

	v := Concat(a, b)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "B", v.Dimension(1, "title"))
	assert.ElementsMatch(t, []string{"title", "publisher"}, v.DimensionKeys())
	assert.True(t, HasKey(v, "publisher"))
}

// ============================================================================
// EXECUTOR
// ============================================================================

func TestExecute_YearTrendChart(t *testing.T) {
	q := Query{
		Intent:      "chart",
		Filters:     Filters{Measures: map[string]float64{"success": 1}},
		Aggregation: "count",
		GroupBy:     "published_year",
		SortBy:      "numeric_asc",
		Title:       "출판연도별 해외 흥행 추이",
		XAxis:       "출판 연도",
		YAxis:       "흥행한 도서의 총합",
	}

	res, err := Execute(context.Background(), q, booksView())
	require.NoError(t, err)
	require.NotNil(t, res.ChartConfig)
	assert.Equal(t, "bar", res.ChartConfig.ChartType)
	assert.Equal(t, 2, res.Matched)

	points := res.ChartConfig.Series[0].Data
	assert.Equal(t, []ChartPoint{{"2007", 1}, {"2014", 1}}, points)
	assert.Equal(t, "출판 연도", res.ChartConfig.XAxis)
}

func TestExecute_NoMatchesIsNotAnError(t *testing.T) {
	q := Query{Intent: "chart", Aggregation: "count", GroupBy: "published_year",
		Filters: Filters{Dimensions: map[string][]string{"author": {"nobody"}}}}

	res, err := Execute(context.Background(), q, booksView())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Matched)
	assert.Nil(t, res.ChartConfig)
	require.NotNil(t, res.TextData)
	assert.True(t, res.TextData.Empty)
}

func TestExecute_TextAverage(t *testing.T) {
	q := Query{Intent: "text", Aggregation: "avg", Measure: "salespoint", Unit: "pts"}

	res, err := Execute(context.Background(), q, booksView())
	require.NoError(t, err)
	assert.Equal(t, "64,625.00pts", res.TextData.Value)
	assert.Equal(t, 4, res.TextData.Count)
}

func TestExecute_ListTablePaginates(t *testing.T) {
	q := Query{Intent: "table", Aggregation: "list", Title: "도서"}
	cols := []TableColumn{
		{Key: "title", Label: "제목", Type: "text"},
		{Key: "salespoint", Label: "판매지수", Type: "number"},
	}

	res, err := Execute(context.Background(), q, booksView(), WithColumns(cols...), WithPage(3, 2))
	require.NoError(t, err)
	table := res.TableData
	assert.Equal(t, 3, table.Page)
	assert.Equal(t, 3, table.Pages)
	assert.Equal(t, 5, table.TotalRows)
	assert.Equal(t, [][]string{{"작자 미상", "500"}}, table.Rows)

	res, err = Execute(context.Background(), q, booksView(), WithColumns(cols...), WithPage(99, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, res.TableData.Page, "page is clamped")
}

func TestExecute_AggregatedTable(t *testing.T) {
	q := Query{Intent: "table", Aggregation: "sum", Measure: "salespoint", GroupBy: "author", SortBy: "value_desc"}

	res, err := Execute(context.Background(), q, booksView())
	require.NoError(t, err)
	require.Len(t, res.TableData.Rows, 3)
	assert.Equal(t, []string{"한강", "218,000.00", "2"}, res.TableData.Rows[0])
	assert.Equal(t, []string{"김영하", "0.00", "0"}, res.TableData.Rows[2], "no salespoint observations")
}

func TestExecute_UnknownIntent(t *testing.T) {
	_, err := Execute(context.Background(), Query{Intent: "pie"}, booksView())
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

// ============================================================================
// FORMATTING
// ============================================================================

func TestFormatter(t *testing.T) {
	f := Korean()
	assert.Equal(t, "1,234,568", f.Number(1234567.8, 0))
	assert.Equal(t, "20.92", f.Number(20.92391304348, 2))
	assert.Equal(t, "12,000", f.Int(12000))
	assert.Equal(t, "Published Year", LabelForKey("published_year"))
	assert.Equal(t, "제목", LabelForKey("제목"))
}
