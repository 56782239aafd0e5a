// Package category holds the fixed vocabularies of the six analytical
// dimensions (genre, plot, character, theme, setting, tone) and turns raw
// category codes into display labels.
package category

import (
	"fmt"
	"strings"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// Dimension is one of the six analytical axes a translated book is tagged on.
// The zero value is Genre.
type Dimension int

const (
	Genre Dimension = iota
	Plot
	Character
	Theme
	Setting
	Tone
)

type dimensionInfo struct {
	name   string // selector label
	key    string
	column string
}

// Indexed by Dimension, in selector order.
var dimensions = [...]dimensionInfo{
	Genre:     {name: "장르", key: "genre", column: "primary_genre"},
	Plot:      {name: "전개", key: "plot", column: "primary_plot"},
	Character: {name: "등장인물", key: "character", column: "primary_character"},
	Theme:     {name: "주제", key: "theme", column: "primary_theme"},
	Setting:   {name: "배경", key: "setting", column: "primary_setting"},
	Tone:      {name: "분위기", key: "tone", column: "primary_tone"},
}

// All returns the six dimensions in selector order.
func All() []Dimension {
	return []Dimension{Genre, Plot, Character, Theme, Setting, Tone}
}

// Valid reports whether d is one of the six known dimensions.
func (d Dimension) Valid() bool {
	return d >= Genre && int(d) < len(dimensions)
}

// Name returns the Korean selector name, e.g. "전개".
func (d Dimension) Name() string {
	if !d.Valid() {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return dimensions[d].name
}

// Key returns the English key used in URLs and the JSON API, e.g. "plot".
func (d Dimension) Key() string {
	if !d.Valid() {
		return ""
	}
	return dimensions[d].key
}

// Column returns the data column holding raw codes, e.g. "primary_plot".
func (d Dimension) Column() string {
	if !d.Valid() {
		return ""
	}
	return dimensions[d].column
}

func (d Dimension) String() string { return d.Name() }

// MarshalText encodes the dimension as its key.
func (d Dimension) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, domainerrors.UnknownDimension(d.Name())
	}
	return []byte(d.Key()), nil
}

// UnmarshalText accepts anything ParseDimension accepts.
func (d *Dimension) UnmarshalText(text []byte) error {
	parsed, err := ParseDimension(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDimension resolves a Korean selector name, an English key or a column
// name. Anything else is an UNKNOWN_DIMENSION error.
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, d := range All() {
		info := dimensions[d]
		if s == info.name || lower == info.key || lower == info.column {
			return d, nil
		}
	}
	return 0, domainerrors.UnknownDimension(s)
}
