package dashboard

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HyungjinO/k-novel-dashboard/category"
	"github.com/HyungjinO/k-novel-dashboard/content"
	"github.com/HyungjinO/k-novel-dashboard/dataset"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
)

const catalogCSV = "\ufeffISBN,제목,저자,출판사,salespoint\n" +
	"1,소년이 온다,한강,창비,120000\n" +
	"2,채식주의자,한강,창비,98000\n" +
	"3,종의 기원,정유정,은행나무,40000\n" +
	"4,아몬드,손원평,창비,80000\n" +
	"5,불편한 편의점,김호연,나무옆의자,60000\n" +
	"6,달러구트 꿈 백화점,이미예,팩토리나인,50000\n" +
	"7,82년생 김지영,조남주,민음사,30000\n"

const translatedCSV = "isbn,title,author,publisher,salespoint,avg_bsr,published_year,success,primary_genre,primary_plot\n" +
	"1,Human Acts,Han Kang,Portobello,120000,1500.0,2014.0,1,Historical Fiction,survival\n" +
	"2,The Vegetarian,Han Kang,Portobello,98000,800,2007,1,Literary Fiction,transformation\n" +
	"3,The Good Son,You-jeong Jeong,Penguin,40000,25000,2016,0,Thriller,identity_crisis\n" +
	"8,Please Look After Mom,Kyung-sook Shin,Knopf,20000,3000,2009,1,Literary Fiction,\n"

const rankedCSV = "ISBN,rank\n1,1\n3,2\n"

func table(t *testing.T, name, csv string) *dataset.Table {
	t.Helper()
	p, err := dataset.ParseCSV([]byte(csv))
	require.NoError(t, err)
	return dataset.NewTable(name, p)
}

func fullBundle(t *testing.T) *dataset.Bundle {
	return &dataset.Bundle{
		Ranked:     table(t, dataset.Ranked, rankedCSV),
		Translated: table(t, dataset.Translated, translatedCSV),
		Catalog:    table(t, dataset.Catalog, catalogCSV),
		NYT:        dataset.MissingTable(dataset.NYT, domainerrors.MissingData("nyt")),
		IMDB:       dataset.MissingTable(dataset.IMDB, domainerrors.MissingData("imdb")),
	}
}

func emptyBundle() *dataset.Bundle {
	missing := func(name string) *dataset.Table {
		return dataset.MissingTable(name, domainerrors.MissingData(name))
	}
	return &dataset.Bundle{
		Ranked:     missing(dataset.Ranked),
		Translated: missing(dataset.Translated),
		Catalog:    missing(dataset.Catalog),
		NYT:        missing(dataset.NYT),
		IMDB:       missing(dataset.IMDB),
	}
}

func newComposer(t *testing.T, b *dataset.Bundle) *Composer {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	return New(b, c, nil, DefaultOptions())
}

func cardValues(cards []MetricCard) map[string]string {
	out := map[string]string{}
	for _, c := range cards {
		out[c.Key] = c.Value
	}
	return out
}

// ============================================================================
// SESSION
// ============================================================================

func TestParseSession(t *testing.T) {
	s, err := ParseSession(DefaultSession(), url.Values{
		"category": {"전개"},
		"chart":    {"treemap"},
		"page":     {"2"},
		"isbn":     {" 42 "},
	})
	require.NoError(t, err)
	assert.Equal(t, category.Plot, s.Category)
	assert.Equal(t, render.Treemap, s.Chart)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, "42", s.ISBN)

	_, err = ParseSession(DefaultSession(), url.Values{"category": {"mood"}})
	assert.ErrorIs(t, err, domainerrors.ErrUnknownDimension)

	_, err = ParseSession(DefaultSession(), url.Values{"chart": {"bar"}})
	assert.ErrorIs(t, err, domainerrors.ErrUnknownChart)

	_, err = ParseSession(DefaultSession(), url.Values{"page": {"0"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSession_WithResetsPageOnCategoryChange(t *testing.T) {
	s := DefaultSession()
	s.Page = 3

	q, err := url.ParseQuery(s.With(ParamCategory, "tone"))
	require.NoError(t, err)
	assert.Equal(t, "tone", q.Get(ParamCategory))
	assert.Empty(t, q.Get(ParamPage))

	q, err = url.ParseQuery(s.With(ParamChart, "bubble"))
	require.NoError(t, err)
	assert.Equal(t, "3", q.Get(ParamPage))
}

// ============================================================================
// DOMESTIC PAGE
// ============================================================================

func TestDomestic_Metrics(t *testing.T) {
	cards, notices := newComposer(t, fullBundle(t)).Metrics(context.Background())
	assert.Empty(t, notices)

	values := cardValues(cards)
	assert.Equal(t, "20.92%", values[MetricSuccessRate])
	assert.Equal(t, "68,285.71pts", values[MetricCatalogSalesPoint])
	assert.Equal(t, "69,500.00pts", values[MetricTranslatedSalesPoint])
	assert.Equal(t, "63,600.00pts", values[MetricNonHitSalesPoint], "books 1 and 3 are predicted hits")
	assert.Equal(t, "0.64 / 1", values[MetricSimilarity])

	for _, c := range cards {
		assert.NotEmpty(t, c.Explanation, c.Key)
	}
}

func TestDomestic_Lists(t *testing.T) {
	c := newComposer(t, fullBundle(t))
	s := DefaultSession()
	s.ISBN = "2"

	page, err := c.Domestic(context.Background(), s)
	require.NoError(t, err)

	r := page.Ranking
	assert.Equal(t, "한국도서 인기순위", r.Title)
	assert.Equal(t, 7, r.Total)
	assert.Equal(t, 2, r.Pages)
	require.Len(t, r.Books, 6)
	assert.Equal(t, "소년이 온다", r.Books[0].Title)
	assert.Equal(t, "120,000", r.Books[0].Score)
	assert.Equal(t, "판매지수", r.Books[0].ScoreLabel)
	assert.True(t, r.Books[1].Selected)

	o := page.Overseas
	require.Len(t, o.Books, 4)
	assert.Equal(t, []string{"The Vegetarian", "Human Acts", "Please Look After Mom", "The Good Son"},
		[]string{o.Books[0].Title, o.Books[1].Title, o.Books[2].Title, o.Books[3].Title})
	assert.Equal(t, "1,500", o.Books[1].Score)

	require.NotNil(t, page.Selected)
	assert.Equal(t, "채식주의자", page.Selected.Title)
	assert.Equal(t, dataset.Catalog, page.Selected.Source)
}

func TestDomestic_SecondPage(t *testing.T) {
	s := DefaultSession()
	s.Page = 2

	page, err := newComposer(t, fullBundle(t)).Domestic(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Ranking.Page)
	require.Len(t, page.Ranking.Books, 1)
	assert.Equal(t, "82년생 김지영", page.Ranking.Books[0].Title)
}

func TestDomestic_Charts(t *testing.T) {
	page, err := newComposer(t, fullBundle(t)).Domestic(context.Background(), DefaultSession())
	require.NoError(t, err)

	require.False(t, page.Authors.Empty())
	points := page.Authors.Config.Series[0].Data
	assert.Equal(t, "한강", points[0].Label)
	assert.InDelta(t, 218000, points[0].Value, 1e-9)
	assert.Len(t, points, 6)

	require.False(t, page.Trend.Empty())
	trend := page.Trend.Config.Series[0]
	assert.Equal(t, TrendColor, trend.Color)
	labels := []string{}
	for _, p := range trend.Data {
		labels = append(labels, p.Label)
		assert.InDelta(t, 1, p.Value, 1e-9)
	}
	assert.Equal(t, []string{"2007", "2009", "2014"}, labels)
	assert.Equal(t, "흥행한 도서의 총합", page.Trend.Config.YAxis)
}

func TestDomestic_Analysis(t *testing.T) {
	s := DefaultSession()
	s.Chart = render.Bubble

	page, err := newComposer(t, fullBundle(t)).Domestic(context.Background(), s)
	require.NoError(t, err)

	a := page.Analysis
	assert.Equal(t, "분석 카테고리 선택", a.Prompt)
	assert.Equal(t, 4, a.Total)
	assert.Equal(t, "📖 문학소설", a.Buckets[0].Label)
	assert.Equal(t, 2, a.Buckets[0].Count)
	assert.Len(t, a.Charts, len(render.Kinds()))
	require.NotNil(t, a.ActiveChart())
	assert.Equal(t, render.Bubble, a.ActiveChart().Kind)

	active := 0
	for _, k := range a.Kinds {
		if k.Active {
			active++
			assert.Equal(t, render.Bubble, k.Kind)
		}
	}
	assert.Equal(t, 1, active)
	assert.Len(t, a.Categories, 6)
}

func TestDomestic_SingleGenre(t *testing.T) {
	const thrillers = "isbn,title,author,publisher,salespoint,avg_bsr,published_year,success,primary_genre,primary_plot\n" +
		"1,Human Acts,Han Kang,Portobello,120000,1500,2014,1,Thriller,survival\n" +
		"3,The Good Son,You-jeong Jeong,Penguin,40000,25000,2016,0,Thriller,survival\n"
	b := fullBundle(t)
	b.Translated = table(t, dataset.Translated, thrillers)

	for _, k := range render.Kinds() {
		t.Run(k.Key(), func(t *testing.T) {
			s := DefaultSession()
			s.Chart = k

			page, err := newComposer(t, b).Domestic(context.Background(), s)
			require.NoError(t, err)

			a := page.Analysis
			assert.Equal(t, 2, a.Total)
			require.Len(t, a.Buckets, 1)
			assert.Len(t, a.Charts, len(render.Kinds()))
			require.NotNil(t, a.ActiveChart())
			assert.Equal(t, k, a.ActiveChart().Kind)
			assert.Empty(t, a.Message)
		})
	}
}

func TestDomestic_EmptyCategoryIsANotice(t *testing.T) {
	s := DefaultSession()
	s.Category = category.Tone

	page, err := newComposer(t, fullBundle(t)).Domestic(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, page.Analysis.Empty())

	require.NotEmpty(t, page.Notices)
	n := page.Notices[len(page.Notices)-1]
	assert.Equal(t, SectionAnalysis, n.Section)
	assert.Equal(t, domainerrors.CodeMissingData, n.Code, "primary_tone is not in the file")
}

func TestDomestic_MissingFilesBecomeNotices(t *testing.T) {
	page, err := newComposer(t, emptyBundle()).Domestic(context.Background(), DefaultSession())
	require.NoError(t, err)

	assert.Empty(t, page.Ranking.Books)
	assert.True(t, page.Authors.Empty())
	assert.True(t, page.Trend.Empty())
	assert.Equal(t, MissingTranslatedMessage, page.Analysis.Message)

	values := cardValues(page.Metrics)
	assert.Equal(t, "-", values[MetricCatalogSalesPoint])
	assert.Equal(t, "20.92%", values[MetricSuccessRate], "static metrics need no data")

	sections := map[string]bool{}
	for _, n := range page.Notices {
		assert.Contains(t, []domainerrors.Code{domainerrors.CodeMissingData, domainerrors.CodeEmptyDistribution}, n.Code)
		sections[n.Section] = true
	}
	for _, s := range []string{SectionMetrics, SectionRanking, SectionAuthors, SectionOverseas, SectionTrend, SectionAnalysis} {
		assert.True(t, sections[s], s)
	}
}

func TestDomestic_UnknownDimensionFails(t *testing.T) {
	s := DefaultSession()
	s.Category = category.Dimension(42)

	_, err := newComposer(t, fullBundle(t)).Domestic(context.Background(), s)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownDimension)
}

func TestDomestic_UnknownISBN(t *testing.T) {
	s := DefaultSession()
	s.ISBN = "999"

	page, err := newComposer(t, fullBundle(t)).Domestic(context.Background(), s)
	require.NoError(t, err)
	assert.Nil(t, page.Selected)
	require.NotEmpty(t, page.Notices)
	assert.Equal(t, domainerrors.CodeNotFound, page.Notices[len(page.Notices)-1].Code)
}

// ============================================================================
// DISTRIBUTION / CHART
// ============================================================================

func TestDistribution_Plot(t *testing.T) {
	d, err := newComposer(t, fullBundle(t)).Distribution(category.Plot)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Total(), "blank plot cell is dropped")
	assert.Equal(t, 1, d.Count("🏕️ 생존"))
}

func TestChart_RendersRequestedKind(t *testing.T) {
	c := newComposer(t, fullBundle(t))

	a, err := c.Chart(category.Genre, render.Treemap)
	require.NoError(t, err)
	assert.Equal(t, render.Treemap, a.Kind)
	assert.NotEmpty(t, a.SVG)

	_, err = c.Chart(category.Genre, render.Bar)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownChart)
}

func TestBook_TranslatedTraits(t *testing.T) {
	b, err := newComposer(t, fullBundle(t)).Book("8")
	require.NoError(t, err)
	assert.Equal(t, dataset.Translated, b.Source)
	assert.Equal(t, "평균 BSR", b.ScoreLabel)
	assert.Equal(t, "3,000", b.Score)
	assert.Equal(t, []Trait{{Dimension: "장르", Label: "📖 문학소설"}}, b.Traits)

	_, err = newComposer(t, fullBundle(t)).Book("nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

// ============================================================================
// HOME
// ============================================================================

func TestHome(t *testing.T) {
	c := newComposer(t, fullBundle(t))

	page := c.Home(DefaultSession())
	assert.Nil(t, page.Selected)
	assert.Len(t, page.Shelf, 3)
	assert.NotEmpty(t, page.Hint)

	s := DefaultSession()
	s.Shelf = "green"
	page = c.Home(s)
	require.NotNil(t, page.Selected)
	assert.Equal(t, "초록 책 대시보드 정보", page.Heading)
	assert.True(t, page.Shelf[2].Selected)

	s.Shelf = "purple"
	assert.Nil(t, c.Home(s).Selected)
}
