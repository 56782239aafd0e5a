package dashboard

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/HyungjinO/k-novel-dashboard/category"
	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
	"github.com/HyungjinO/k-novel-dashboard/render"
)

// Session is the viewer's current selection. The composer never stores it;
// the caller passes it in on every request.
type Session struct {
	Category category.Dimension `json:"category"`
	Chart    render.Kind        `json:"chart"`
	Shelf    string             `json:"shelf,omitempty"`
	ISBN     string             `json:"isbn,omitempty"`
	Page     int                `json:"page"`
}

// DefaultSession selects 장르, the donut tab, no shelf book and page 1.
func DefaultSession() Session {
	return Session{Category: category.Genre, Chart: render.Donut, Page: 1}
}

// Query parameter names.
const (
	ParamCategory = "category"
	ParamChart    = "chart"
	ParamShelf    = "shelf"
	ParamISBN     = "isbn"
	ParamPage     = "page"
)

// ParseSession overlays query values on base. Absent parameters keep the
// base value. An unknown category or chart is an error.
func ParseSession(base Session, values url.Values) (Session, error) {
	s := base
	if v := strings.TrimSpace(values.Get(ParamCategory)); v != "" {
		d, err := category.ParseDimension(v)
		if err != nil {
			return base, err
		}
		s.Category = d
	}
	if v := strings.TrimSpace(values.Get(ParamChart)); v != "" {
		k, err := render.ParseKind(v)
		if err != nil {
			return base, err
		}
		s.Chart = k
	}
	if values.Has(ParamShelf) {
		s.Shelf = strings.TrimSpace(values.Get(ParamShelf))
	}
	if values.Has(ParamISBN) {
		s.ISBN = strings.TrimSpace(values.Get(ParamISBN))
	}
	if v := strings.TrimSpace(values.Get(ParamPage)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return base, domainerrors.Validation("page must be a positive integer")
		}
		s.Page = n
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s, nil
}

// Values encodes the session as query parameters.
func (s Session) Values() url.Values {
	v := url.Values{}
	v.Set(ParamCategory, s.Category.Key())
	v.Set(ParamChart, s.Chart.Key())
	if s.Shelf != "" {
		v.Set(ParamShelf, s.Shelf)
	}
	if s.ISBN != "" {
		v.Set(ParamISBN, s.ISBN)
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// With returns a copy of s with one parameter replaced, encoded as a query
// string. Templates use it to build links.
func (s Session) With(param, value string) string {
	v := s.Values()
	if value == "" {
		v.Del(param)
	} else {
		v.Set(param, value)
	}
	if param == ParamCategory {
		v.Del(ParamPage)
	}
	return v.Encode()
}
