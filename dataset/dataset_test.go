package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

var catalogCSV = "\ufeffISBN,제목,저자,출판사,salespoint,image_url\n" +
	"9788936434120,소년이 온다,한강,창비,120000,https://img/1.jpg\n" +
	"9788936433598.0,채식주의자,한강,창비,\"98,000\",\n" +
	"9788954651134,종의 기원,정유정,은행나무,N/A,https://img/3.jpg\n"

var translatedCSV = `Title,Author,Publisher,avg_bsr,book_image,Published Year,success,primary_plot,salespoint
The White Book,Han Kang,Hogarth,1520.5,https://img/a.jpg,2017.0,1,survival,5000
Human Acts,Han Kang,Hogarth,2200,https://img/b.jpg,2016,0,,
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestParseCSV_CanonicalKeysAndAbsentCells(t *testing.T) {
	p, err := ParseCSV([]byte(catalogCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"isbn", "title", "author", "publisher", "salespoint", "image"}, p.Keys)
	assert.Equal(t, []string{"isbn", "salespoint"}, p.Numeric)
	require.Len(t, p.Records, 3)

	view := p.View()
	assert.Equal(t, "9788936433598", view.Dimension(1, "isbn"), "integral float written back as integer")

	v, ok := view.Measure(1, "salespoint")
	require.True(t, ok)
	assert.InDelta(t, 98000, v, 1e-9)

	_, ok = view.Measure(2, "salespoint")
	assert.False(t, ok, "N/A is absent, not zero")
	assert.Equal(t, "", view.Dimension(1, "image"))
}

func TestParseCSV_Aliases(t *testing.T) {
	p, err := ParseCSV([]byte(translatedCSV))
	require.NoError(t, err)

	view := p.View()
	assert.Equal(t, "The White Book", view.Dimension(0, "title"))
	assert.Equal(t, "https://img/a.jpg", view.Dimension(0, "image"))
	assert.Equal(t, "2017", view.Dimension(0, "published_year"))
	assert.Equal(t, "survival", view.Dimension(0, "primary_plot"))
	assert.Equal(t, "", view.Dimension(1, "primary_plot"))
}

func TestFromRows_ShortRowsAndDuplicateAliases(t *testing.T) {
	p := FromRows([]string{"Title", "제목", "salespoint"}, [][]string{
		{"A", "가", "10"},
		{"B"},
	})
	assert.Equal(t, []string{"title", "salespoint"}, p.Keys)
	assert.Equal(t, "A", p.Records[0].Dimensions["title"], "first aliased column wins")
	_, ok := p.Records[1].Measures["salespoint"]
	assert.False(t, ok)
}

func TestParseCSV_NoHeader(t *testing.T) {
	_, err := ParseCSV(nil)
	assert.Error(t, err)
}

func TestParseXLSX_FirstSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"제목", "저자", "salespoint"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"소년이 온다", "한강", 120000}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	p, err := ParseXLSX(buf)
	require.NoError(t, err)
	require.Len(t, p.Records, 1)
	assert.Equal(t, "한강", p.Records[0].Dimensions["author"])
	assert.InDelta(t, 120000, p.Records[0].Measures["salespoint"], 1e-9)
}

func TestLoad_MissingFilesAreFlagged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileCatalog, catalogCSV)
	writeFile(t, dir, FileTranslated, translatedCSV)

	b, err := Load(context.Background(), dir, nil)
	require.NoError(t, err)

	assert.False(t, b.Catalog.Missing)
	assert.Equal(t, 3, b.Catalog.Len())
	assert.Equal(t, 2, b.Translated.Len())

	assert.True(t, b.Ranked.Missing)
	assert.Equal(t, 0, b.Ranked.Len())
	assert.ErrorIs(t, b.Ranked.Err, domainerrors.ErrMissingData)
	assert.ErrorIs(t, b.Ranked.Require("isbn"), domainerrors.ErrMissingData)

	assert.NoError(t, b.Catalog.Require("isbn", "salespoint"))
	assert.ErrorIs(t, b.Catalog.Require("avg_bsr"), domainerrors.ErrMissingData)

	tbl, ok := b.Table(Translated)
	require.True(t, ok)
	assert.Same(t, b.Translated, tbl)
	assert.Len(t, b.Tables(), 5)
}

func TestLoad_XLSXSibling(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"ISBN", "rank"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"9788936434120", 1}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "흥행예측도서_ranked.xlsx")))
	require.NoError(t, f.Close())

	b, err := Load(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.False(t, b.Ranked.Missing)
	assert.Equal(t, []string{"9788936434120"}, engine.UniqueValues(b.Ranked.View, "isbn"))
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, t.TempDir(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
