// Package dataset loads the dashboard's flat files from the data directory.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/HyungjinO/k-novel-dashboard/engine"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/schema"
)

// Source file names inside the data directory.
const (
	FileRanked     = "흥행예측도서_ranked.csv"
	FileTranslated = "trans_final_with_url.csv"
	FileCatalog    = "book_korean.csv"
	FileNYT        = "nyt_bestseller_with_keyword.csv"
	FileIMDB       = "imdb_llm_filtered_final.csv"
)

// Table names.
const (
	Ranked     = "ranked"
	Translated = "translated"
	Catalog    = "catalog"
	NYT        = "nyt"
	IMDB       = "imdb"
)

var sources = []struct{ name, file string }{
	{Ranked, FileRanked},
	{Translated, FileTranslated},
	{Catalog, FileCatalog},
	{NYT, FileNYT},
	{IMDB, FileIMDB},
}

// Table is one loaded file. A missing or unreadable file yields an empty
// table with Missing set.
type Table struct {
	Name    string
	Path    string
	View    engine.RecordView
	Columns []string
	Missing bool
	Err     error
}

// Len is the number of rows.
func (t *Table) Len() int {
	if t == nil || t.View == nil {
		return 0
	}
	return t.View.Len()
}

// Has reports whether the table carries a column.
func (t *Table) Has(key string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == key {
			return true
		}
	}
	return false
}

// Require returns MISSING_DATA when the table is missing or lacks a column.
func (t *Table) Require(keys ...string) error {
	if t == nil || t.Missing {
		name := "dataset"
		if t != nil {
			name = filepath.Base(t.Path)
		}
		return domainerrors.MissingDataf("%s not available", name)
	}
	return schema.Require(filepath.Base(t.Path), t.Columns, keys...)
}

// Bundle holds every table the dashboard reads.
type Bundle struct {
	Ranked     *Table
	Translated *Table
	Catalog    *Table
	NYT        *Table
	IMDB       *Table
}

// Tables returns the tables in load order.
func (b *Bundle) Tables() []*Table {
	return []*Table{b.Ranked, b.Translated, b.Catalog, b.NYT, b.IMDB}
}

// Table returns a table by name.
func (b *Bundle) Table(name string) (*Table, bool) {
	for _, t := range b.Tables() {
		if t != nil && t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Load reads every source file from dir. Missing files are logged and
// returned as empty tables; only context cancellation fails the load.
func Load(ctx context.Context, dir string, log *slog.Logger) (*Bundle, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	b := &Bundle{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := LoadFile(filepath.Join(dir, src.file))
		t.Name = src.name

		if t.Missing {
			log.Warn("dataset unavailable", "table", t.Name, "path", t.Path, "error", t.Err)
		} else {
			log.Info("dataset loaded", "table", t.Name, "path", t.Path, "rows", t.Len(), "columns", len(t.Columns))
		}

		switch src.name {
		case Ranked:
			b.Ranked = t
		case Translated:
			b.Translated = t
		case Catalog:
			b.Catalog = t
		case NYT:
			b.NYT = t
		case IMDB:
			b.IMDB = t
		}
	}
	return b, nil
}

// NewTable wraps parsed rows as a table named name.
func NewTable(name string, p *Parsed) *Table {
	return &Table{Name: name, Path: name, View: p.View(), Columns: p.Keys}
}

// MissingTable is an empty table standing in for an unreadable source.
func MissingTable(name string, err error) *Table {
	return &Table{Name: name, Path: name, View: engine.NewSliceView(nil), Missing: true, Err: err}
}

// LoadFile reads one CSV file, falling back to an .xlsx sibling with the
// same stem.
func LoadFile(path string) *Table {
	t := &Table{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), Path: path}

	p, err := readFile(path)
	if err != nil {
		m := MissingTable(t.Name, err)
		m.Path = path
		return m
	}
	t.View = p.View()
	t.Columns = p.Keys
	return t
}

func readFile(path string) (*Parsed, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return ParseXLSX(bytes.NewReader(data))
		}
		return ParseCSV(data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	xlsx := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	f, xerr := os.Open(xlsx)
	if xerr != nil {
		return nil, domainerrors.MissingDataf("%s not found", filepath.Base(path)).WithCause(err)
	}
	defer f.Close()
	return ParseXLSX(f)
}
