package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/internal/config"
	"github.com/HyungjinO/k-novel-dashboard/internal/logger"
	"github.com/HyungjinO/k-novel-dashboard/internal/web"
)

const shutdownTimeout = 10 * time.Second

// Version is reported in the OpenAPI document.
var Version = "dev"

// ProvideWebServer provides the HTTP handler.
func ProvideWebServer(i do.Injector) (*web.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	composer := do.MustInvoke[*dashboard.Composer](i)
	index := do.MustInvoke[*SearchIndexHandle](i)

	return web.NewServer(web.Options{
		Composer:    composer,
		Index:       index.Index,
		Logger:      log.Logger,
		RateLimit:   cfg.Server.RateLimit,
		SessionKey:  []byte(cfg.Server.SessionKey),
		Secure:      cfg.App.Environment == "production",
		CORSOrigins: cfg.Server.CORSOrigins,
		Version:     Version,
	})
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server. The caller starts it.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*web.Server](i)

	return &HTTPServerHandle{Server: &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}}, nil
}
