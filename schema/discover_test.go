package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

var catalogCSV = []byte("\ufeffISBN,제목,저자,출판사,salespoint,Published Year,success,primary_genre,primary_plot,image_url\n" +
	"9788936434120,소년이 온다,한강,창비,120000,2014,1,literary,survival,https://img/1.jpg\n" +
	"9788936433598,채식주의자,한강,창비,98000,2007,1,literary,curse,https://img/2.jpg\n" +
	"9788954651134,종의 기원,정유정,은행나무,40000,2016,0,thriller,survival,https://img/3.jpg\n" +
	"9788954651135,살인자의 기억법,김영하,문학동네,,2013,,thriller,,\n")

var translatedCSV = []byte(`Title,Author,Publisher,avg_bsr,book_image,primary_theme
The White Book,Han Kang,Hogarth,1520.5,https://img/a.jpg,grief
Human Acts,Han Kang,Hogarth,2200.25,https://img/b.jpg,trauma
`)

func findDim(c *Config, key string) (DimensionMeta, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionMeta{}, false
}

func findMeasure(c *Config, key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

func TestDiscoverFromCSV_Catalog(t *testing.T) {
	config, err := DiscoverFromCSV(catalogCSV, DiscoverOptions{Name: "book_korean"})
	require.NoError(t, err)

	assert.Equal(t, "book_korean", config.Name)
	assert.Equal(t, "CSV", config.DiscoveredFrom)
	assert.Equal(t, 4, config.Rows)

	assert.Subset(t, config.DimensionKeys(), []string{"isbn", "title", "author", "publisher", "primary_genre", "primary_plot", "image"})
	assert.ElementsMatch(t, []string{"salespoint", "published_year", "success"}, config.MeasureKeys())
	assert.Empty(t, config.SkippedColumns)

	plot, ok := findDim(config, "primary_plot")
	require.True(t, ok)
	assert.Equal(t, "plot", plot.Category)
	assert.Equal(t, "전개", plot.DisplayName)
	assert.Equal(t, 1, plot.NullCount)

	title, _ := findDim(config, "title")
	assert.True(t, title.Known)
	assert.Equal(t, "제목", title.DisplayName)
	assert.Equal(t, "제목", title.Header)

	sales, ok := findMeasure(config, "salespoint")
	require.True(t, ok)
	assert.Equal(t, "points", sales.Unit)
	assert.Equal(t, 1, sales.NullCount)
}

func TestDiscoverFromCSV_TranslatedAliases(t *testing.T) {
	config, err := DiscoverFromCSV(translatedCSV)
	require.NoError(t, err)

	assert.Subset(t, config.DimensionKeys(), []string{"title", "author", "publisher", "image", "primary_theme"})
	bsr, ok := findMeasure(config, "avg_bsr")
	require.True(t, ok)
	assert.Equal(t, "avg", bsr.DefaultAggregation)
	assert.Equal(t, "평균 BSR", bsr.DisplayName)
}

func TestDiscoverFromRows_SkipsIdentifiersUnlessRecovered(t *testing.T) {
	headers := []string{"code", "bucket"}
	var rows [][]string
	for i := 0; i < 12; i++ {
		rows = append(rows, []string{"row-" + string(rune('a'+i)), "x"})
	}

	config, err := DiscoverFromRows(headers, rows, DefaultDiscoverOptions())
	require.NoError(t, err)
	require.Len(t, config.SkippedColumns, 1)
	assert.Equal(t, "code", config.SkippedColumns[0].Column)
	assert.True(t, config.SkippedColumns[0].Recoverable)

	config, err = DiscoverFromRows(headers, rows, DiscoverOptions{RecoverColumns: []string{"code"}})
	require.NoError(t, err)
	assert.Contains(t, config.DimensionKeys(), "code")
	assert.Empty(t, config.SkippedColumns)
}

func TestDiscoverFromRows_Errors(t *testing.T) {
	_, err := DiscoverFromRows(nil, [][]string{{"a"}}, DefaultDiscoverOptions())
	assert.Error(t, err)
	_, err = DiscoverFromRows([]string{"a"}, nil, DefaultDiscoverOptions())
	assert.Error(t, err)
	_, err = DiscoverFromCSV(nil)
	assert.Error(t, err)
}

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"제목":             KeyTitle,
		"Title":          KeyTitle,
		" Author ":       KeyAuthor,
		"\ufeffISBN":     KeyISBN,
		"Published Year": KeyPublishedYear,
		"image_url":      KeyImage,
		"book_image":     KeyImage,
		"primary_tone":   "primary_tone",
		"Story Points":   "story_points",
		"avgRating":      "avg_rating",
	}
	for in, want := range cases {
		assert.Equal(t, want, Canonical(in), in)
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require("ranked", []string{"isbn", "salespoint"}, "isbn"))

	err := Require("ranked", []string{"isbn"}, "success", "published_year", "isbn")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrMissingData)

	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	details, ok := de.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"published_year", "success"}, details["columns"])
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber("1,234.5")
	assert.True(t, ok)
	assert.InDelta(t, 1234.5, v, 1e-9)

	_, ok = ParseNumber("")
	assert.False(t, ok)
	_, ok = ParseNumber("n/a")
	assert.False(t, ok)
}
