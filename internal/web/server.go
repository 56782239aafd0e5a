// Package web serves the dashboard pages, chart images and the JSON API.
package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/search"
)

// Options configures a Server.
type Options struct {
	Composer *dashboard.Composer
	// Index backs the search box and /api/v1/search. Nil disables search.
	Index  *search.Index
	Logger *slog.Logger
	// RateLimit caps chart renders per second; 0 disables the limit.
	RateLimit float64
	// SessionKey signs the selection cookie. Empty generates one.
	SessionKey []byte
	// Secure marks the cookie Secure.
	Secure bool
	// CORSOrigins may call the API cross-origin. Empty disables CORS.
	CORSOrigins []string
	Version     string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	composer *dashboard.Composer
	index    *search.Index
	router   *chi.Mux
	api      huma.API
	pages    *template.Template
	limiter  *rate.Limiter
	cookies  *sessionCodec
	logger   *slog.Logger
}

// NewServer creates a server with all routes configured.
func NewServer(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	cookies, err := newSessionCodec(opts.SessionKey, opts.Secure)
	if err != nil {
		return nil, err
	}

	s := &Server{
		composer: opts.Composer,
		index:    opts.Index,
		router:   chi.NewRouter(),
		pages:    pages,
		cookies:  cookies,
		logger:   opts.Logger.With("component", "web"),
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst*2)
	}

	s.setupMiddleware(opts.CORSOrigins)

	cfg := huma.DefaultConfig("K-Novel Compass API", opts.Version)
	s.api = humachi.New(s.router, cfg)
	RegisterErrorHandler()

	s.setupRoutes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API { return s.api }

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if len(origins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Get("/", s.handleHome)
	s.router.Get("/domestic", s.handleDomestic)

	s.router.Route("/charts", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Get("/authors.svg", s.handleAuthorsChart)
		r.Get("/years.svg", s.handleTrendChart)
		r.Get("/{dimension}/{kind}.svg", s.handleDistributionChart)
	})

	s.registerAPIRoutes()
}
