package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HyungjinO/k-novel-dashboard/category"
	"github.com/HyungjinO/k-novel-dashboard/content"
	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/render"
	"github.com/HyungjinO/k-novel-dashboard/search"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"chartURL": func(d category.Dimension, k render.Kind) string {
		return "/charts/" + d.Key() + "/" + k.Key() + ".svg"
	},
	"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
	"css":     func(s string) template.CSS { return template.CSS(s) },
	"add":     func(a, b int) int { return a + b },
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("pages").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

type homeView struct {
	*dashboard.HomePage
}

type domesticView struct {
	*dashboard.DomesticPage
	Nav         []content.Link
	Query       string
	Results     *search.Result
	SearchError string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "template failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess, err := dashboard.ParseSession(s.cookies.read(r), r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cookies.write(w, sess)
	s.render(w, r, "home", homeView{s.composer.Home(sess)})
}

func (s *Server) handleDomestic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := dashboard.ParseSession(s.cookies.read(r), r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cookies.write(w, sess)

	page, err := s.composer.Domestic(ctx, sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view := domesticView{DomesticPage: page, Nav: s.composer.Content().App.Nav}
	if q := r.URL.Query().Get("q"); q != "" && s.index != nil {
		view.Query = q
		res, err := s.index.Search(ctx, search.Params{Query: q, Limit: 10})
		if err != nil {
			view.SearchError = err.Error()
		} else {
			view.Results = res
		}
	}
	s.render(w, r, "domestic", view)
}

// ============================================================================
// CHARTS
// ============================================================================

func (s *Server) handleDistributionChart(w http.ResponseWriter, r *http.Request) {
	dim, err := category.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kind, err := render.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	art, err := s.composer.Chart(dim, kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSVG(w, art)
}

func (s *Server) handleAuthorsChart(w http.ResponseWriter, r *http.Request) {
	_, art, err := s.composer.AuthorsChart(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSVG(w, art)
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	_, art, err := s.composer.TrendChart(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSVG(w, art)
}

func writeSVG(w http.ResponseWriter, a *render.Artifact) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(a.SVG)
}

// ============================================================================
// HEALTH
// ============================================================================

type tableHealth struct {
	Rows    int  `json:"rows"`
	Missing bool `json:"missing"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	tables := map[string]tableHealth{}
	for _, t := range s.composer.Data().Tables() {
		if t != nil {
			tables[t.Name] = tableHealth{Rows: t.Len(), Missing: t.Missing}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "tables": tables})
}
