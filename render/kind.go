package render

import (
	"strconv"
	"strings"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// Kind is a chart type offered for a distribution.
type Kind int

const (
	Donut Kind = iota
	Treemap
	Bubble
	// Bar is used by the ranking widgets and is not selectable for
	// distributions.
	Bar
)

var kinds = [...]struct{ key, tab string }{
	Donut:   {"donut", "도넛 차트"},
	Treemap: {"treemap", "트리맵"},
	Bubble:  {"bubble", "버블 차트"},
	Bar:     {"bar", "막대 차트"},
}

// Kinds returns the distribution chart kinds in tab order.
func Kinds() []Kind { return []Kind{Donut, Treemap, Bubble} }

// Key is the URL-safe name: "donut", "treemap", "bubble".
func (k Kind) Key() string {
	if k < 0 || int(k) >= len(kinds) {
		return ""
	}
	return kinds[k].key
}

// Tab is the Korean tab label.
func (k Kind) Tab() string {
	if k < 0 || int(k) >= len(kinds) {
		return ""
	}
	return kinds[k].tab
}

func (k Kind) String() string { return k.Key() }

// MarshalText encodes the kind by key.
func (k Kind) MarshalText() ([]byte, error) {
	if k.Key() == "" {
		return nil, domainerrors.UnknownChart(strconv.Itoa(int(k)))
	}
	return []byte(k.Key()), nil
}

// UnmarshalText accepts anything ParseKind accepts.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves "donut", "treemap", "bubble" or a Korean tab label.
// Bar is not a distribution chart and is rejected.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.Key()) || s == k.Tab() {
			return k, nil
		}
	}
	return Donut, domainerrors.UnknownChart(s)
}
