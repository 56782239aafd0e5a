package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/HyungjinO/k-novel-dashboard/internal/di/providers"
	"github.com/HyungjinO/k-novel-dashboard/internal/logger"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve the dashboard pages, chart images and the JSON API.

Every flag falls back to its environment variable (SERVER_PORT,
RATE_LIMIT_RPS, PAGE_SIZE, ...) and then to the built-in default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.overrides.Port, "port", "", "HTTP port (default 8501)")
	f.StringVar(&a.overrides.ReadTimeout, "read-timeout", "", "Read timeout, e.g. 15s")
	f.StringVar(&a.overrides.WriteTimeout, "write-timeout", "", "Write timeout, e.g. 30s")
	f.StringVar(&a.overrides.IdleTimeout, "idle-timeout", "", "Idle timeout, e.g. 60s")
	f.StringVar(&a.overrides.RateLimit, "rate-limit", "", "Chart renders per second, 0 disables (default 20)")
	f.StringVar(&a.overrides.PageSize, "page-size", "", "Books per ranking page (default 6)")
	f.StringVar(&a.overrides.TopAuthors, "top-authors", "", "Authors in the sales chart (default 15)")
	f.StringVar(&a.overrides.CORSOrigins, "cors-origins", "", "Comma-separated origins allowed to call the API")
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	injector, err := a.container(false)
	if err != nil {
		return err
	}

	log := do.MustInvoke[*logger.Logger](injector)
	srv, err := do.Invoke[*providers.HTTPServerHandle](injector)
	if err != nil {
		_ = injector.Shutdown()
		return fmt.Errorf("build server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down server gracefully...")
	case serveErr = <-errCh:
		log.Error("HTTP server failed", "error", serveErr)
	}

	// The container shuts services down in reverse order, the HTTP server
	// and the search index included.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	log.Info("Server stopped")
	return serveErr
}
