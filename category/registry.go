package category

import (
	"sort"
	"strings"
)

// Entry is the display form of one raw code.
type Entry struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Display renders the entry as "{icon} {label}".
func (e Entry) Display() string {
	return e.Icon + " " + e.Label
}

type vocabulary map[string]Entry

// One vocabulary per dimension, indexed by Dimension.
var registry = [...]vocabulary{
	Genre:     genreVocabulary,
	Plot:      plotVocabulary,
	Character: characterVocabulary,
	Theme:     themeVocabulary,
	Setting:   settingVocabulary,
	Tone:      toneVocabulary,
}

// Lookup returns the entry for code in dimension d.
func Lookup(d Dimension, code string) (Entry, bool) {
	if !d.Valid() {
		return Entry{}, false
	}
	e, ok := registry[d][code]
	return e, ok
}

// LabelOf returns the Korean label for code, or code itself when the
// vocabulary does not know it.
func LabelOf(d Dimension, code string) string {
	if e, ok := Lookup(d, code); ok {
		return e.Label
	}
	return code
}

// IconOf returns the icon for code, or "" when the vocabulary does not know it.
func IconOf(d Dimension, code string) string {
	if e, ok := Lookup(d, code); ok {
		return e.Icon
	}
	return ""
}

// Codes lists the vocabulary of d in sorted order.
func Codes(d Dimension) []string {
	if !d.Valid() {
		return nil
	}
	codes := make([]string, 0, len(registry[d]))
	for code := range registry[d] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Size returns the number of codes known for d.
func Size(d Dimension) int {
	if !d.Valid() {
		return 0
	}
	return len(registry[d])
}

// CodeOf reverses a decorated label back to its raw code. Unknown labels come
// back unchanged with ok=false.
func CodeOf(d Dimension, display string) (string, bool) {
	if !d.Valid() {
		return display, false
	}
	for code, e := range registry[d] {
		if display == e.Display() || display == e.Label {
			return code, true
		}
	}
	return strings.TrimSpace(display), false
}
