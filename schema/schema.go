package schema

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// ============================================================================
// SCHEMA — Column catalog for the book datasets
// ============================================================================
// The datasets name the same field differently (제목 in the catalog, Title in
// the translated table). Loaders canonicalize every header through Canonical
// so the rest of the code reads one set of keys.
// ============================================================================

// Canonical keys of the known book fields.
const (
	KeyISBN          = "isbn"
	KeyTitle         = "title"
	KeyAuthor        = "author"
	KeyPublisher     = "publisher"
	KeySalesPoint    = "salespoint"
	KeyBSR           = "avg_bsr"
	KeyPublishedYear = "published_year"
	KeySuccess       = "success"
	KeyImage         = "image"
	KeyDescription   = "description"
)

// Field describes one known column.
type Field struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases"`
	Numeric     bool     `json:"numeric"`
	Unit        string   `json:"unit,omitempty"`
}

var fields = []Field{
	{Key: KeyISBN, DisplayName: "ISBN", Aliases: []string{"ISBN", "isbn13"}},
	{Key: KeyTitle, DisplayName: "제목", Aliases: []string{"제목", "Title"}},
	{Key: KeyAuthor, DisplayName: "저자", Aliases: []string{"저자", "Author"}},
	{Key: KeyPublisher, DisplayName: "출판사", Aliases: []string{"출판사", "Publisher"}},
	{Key: KeySalesPoint, DisplayName: "판매지수", Aliases: []string{"salespoint", "판매지수"}, Numeric: true, Unit: "points"},
	{Key: KeyBSR, DisplayName: "평균 BSR", Aliases: []string{"avg_bsr"}, Numeric: true, Unit: "rank"},
	{Key: KeyPublishedYear, DisplayName: "출판 연도", Aliases: []string{"Published Year", "published_year", "출판연도"}, Numeric: true},
	{Key: KeySuccess, DisplayName: "해외 흥행", Aliases: []string{"success"}, Numeric: true},
	{Key: KeyImage, DisplayName: "표지", Aliases: []string{"image_url", "book_image", "cover"}},
	{Key: KeyDescription, DisplayName: "소개", Aliases: []string{"description", "책소개", "Description"}},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for _, f := range fields {
		idx[strings.ToLower(f.Key)] = f.Key
		for _, a := range f.Aliases {
			idx[strings.ToLower(a)] = f.Key
		}
	}
	return idx
}

// Fields returns the known book fields.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

// FieldOf returns the known field for a canonical key.
func FieldOf(key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Canonical maps a raw header to its canonical key. Known aliases map to the
// field key; any other header is snake_cased.
func Canonical(header string) string {
	h := strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	if key, ok := aliasIndex[strings.ToLower(h)]; ok {
		return key
	}
	return ToSnakeCase(h)
}

// Require checks that every key is among present. The error is MISSING_DATA
// and lists the absent keys in its details.
func Require(dataset string, present []string, keys ...string) error {
	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[p] = true
	}
	var missing []string
	for _, k := range keys {
		if !have[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return domainerrors.MissingDataf("%s: column %s not available", dataset, strings.Join(missing, ", ")).
		WithDetails(map[string]any{"dataset": dataset, "columns": missing})
}

// ============================================================================
// CONFIG — Discovered shape of a dataset
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`
	Rows           int    `json:"rows"`

	// Columns skipped during auto-discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key             string   `json:"key"`
	Header          string   `json:"header"`
	DisplayName     string   `json:"displayName"`
	SampleValues    []string `json:"sampleValues"`
	NullCount       int      `json:"nullCount"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
	Known           bool     `json:"known,omitempty"`
	Category        string   `json:"category,omitempty"` // analytical dimension key for primary_* columns
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string `json:"key"`
	Header             string `json:"header"`
	DisplayName        string `json:"displayName"`
	Unit               string `json:"unit,omitempty"`
	NullCount          int    `json:"nullCount"`
	DefaultAggregation string `json:"defaultAggregation,omitempty"`
	Known              bool   `json:"known,omitempty"`
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column      string `json:"column"`
	Reason      string `json:"reason"`
	Recoverable bool   `json:"recoverable"` // Can be restored if consumer overrides
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// ToSnakeCase converts "Column Name" or "columnName" → "column_name".
func ToSnakeCase(s string) string {
	var result strings.Builder
	prev := rune(-1)
	for _, r := range s {
		if unicode.IsUpper(r) && prev != -1 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
		prev = r
	}

	s = strings.ToLower(result.String())
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// toDisplayName cleans a header for human display.
// "story_points" → "Story Points", "저자" → "저자"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
