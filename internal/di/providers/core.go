// Package providers contains the dependency injection providers.
package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/HyungjinO/k-novel-dashboard/content"
	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/dataset"
	"github.com/HyungjinO/k-novel-dashboard/internal/config"
	"github.com/HyungjinO/k-novel-dashboard/internal/logger"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting K-Novel Compass",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.Data.Dir,
	)
	return log, nil
}

// ProvideContent provides the page content, embedded or from CONTENT_FILE.
func ProvideContent(i do.Injector) (*content.Content, error) {
	cfg := do.MustInvoke[*config.Config](i)
	c, err := content.Load(cfg.Data.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return c, nil
}

// ProvideBundle loads every table from the data directory.
func ProvideBundle(i do.Injector) (*dataset.Bundle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	b, err := dataset.Load(context.Background(), cfg.Data.Dir, log.WithComponent("dataset").Logger)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	missing := 0
	for _, t := range b.Tables() {
		if t.Missing {
			missing++
		}
	}
	log.Info("Data loaded", "tables", len(b.Tables()), "missing", missing)
	return b, nil
}

// ProvideComposer provides the page composer.
func ProvideComposer(i do.Injector) (*dashboard.Composer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	b := do.MustInvoke[*dataset.Bundle](i)
	c := do.MustInvoke[*content.Content](i)

	return dashboard.New(b, c, log.Logger, dashboard.Options{
		PageSize:   cfg.Dashboard.PageSize,
		TopAuthors: cfg.Dashboard.TopAuthors,
	}), nil
}
