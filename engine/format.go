package engine

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// FORMATTING UTILITIES — Korean locale number formatting
// ============================================================================

// Formatter renders figures with locale-aware digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a formatter for tag.
func NewFormatter(tag language.Tag) Formatter {
	return Formatter{p: message.NewPrinter(tag)}
}

var korean = NewFormatter(language.Korean)

// Korean returns the default formatter used by the dashboard.
func Korean() Formatter { return korean }

// Number formats v with the given number of decimals, e.g. 12345.678 → "12,345.68".
func (f Formatter) Number(v float64, decimals int) string {
	if f.p == nil {
		f = korean
	}
	if decimals <= 0 {
		return f.p.Sprintf("%d", int64(math.Round(v)))
	}
	return f.p.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}

// Int formats an integer with digit grouping.
func (f Formatter) Int(n int) string {
	if f.p == nil {
		f = korean
	}
	return f.p.Sprintf("%d", n)
}

// Sprintf formats through the locale printer.
func (f Formatter) Sprintf(format string, args ...any) string {
	if f.p == nil {
		f = korean
	}
	return f.p.Sprintf(format, args...)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LabelForAggregation returns a Korean label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case "sum":
		return "합계"
	case "count":
		return "건수"
	case "avg":
		return "평균"
	case "max":
		return "최댓값"
	case "min":
		return "최솟값"
	default:
		return "값"
	}
}

// LabelForKey turns a column key into a display label: "published_year" →
// "Published Year".
func LabelForKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
