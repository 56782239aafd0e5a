// Package di wires the dashboard's components with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/internal/config"
	"github.com/HyungjinO/k-novel-dashboard/internal/di/providers"
	"github.com/HyungjinO/k-novel-dashboard/internal/logger"
)

// Option adjusts the container before any service is built.
type Option func(*options)

type options struct {
	logger *logger.Logger
}

// WithLogger replaces the configured logger, e.g. to keep command output on
// stdout free of log lines.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.logger = log }
}

// NewContainer creates a container around an already loaded configuration.
func NewContainer(cfg *config.Config, opts ...Option) *do.RootScope {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	if o.logger != nil {
		do.ProvideValue(injector, o.logger)
	} else {
		do.Provide(injector, providers.ProvideLogger)
	}

	// Data
	do.Provide(injector, providers.ProvideContent)
	do.Provide(injector, providers.ProvideBundle)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Dashboard
	do.Provide(injector, providers.ProvideComposer)

	// Server
	do.Provide(injector, providers.ProvideWebServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap loads the data and builds the composer, so a broken data
// directory or content file fails at startup.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*dashboard.Composer](injector); err != nil {
		return err
	}
	return nil
}
