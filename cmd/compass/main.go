// Command compass serves the K-Novel Compass dashboard and exposes its
// charts, metric cards and column discovery on the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/HyungjinO/k-novel-dashboard/dashboard"
	"github.com/HyungjinO/k-novel-dashboard/internal/config"
	"github.com/HyungjinO/k-novel-dashboard/internal/di"
	"github.com/HyungjinO/k-novel-dashboard/internal/di/providers"
	"github.com/HyungjinO/k-novel-dashboard/internal/logger"
)

// ============================================================================
// COMPASS CLI
// ============================================================================

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fatalf("%v", err)
	}
}

// app carries the flags shared by every command.
type app struct {
	overrides config.Overrides
	stdout    io.Writer
	stderr    io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "compass",
		Short: "K-Novel Compass: Korean fiction in translation, at a glance",
		Long: `K-Novel Compass reads the book tables in the data directory and serves
the dashboard, or renders its pieces from the command line.

Examples:
  compass serve --port 8501
  compass render --category 전개 --chart donut --out plot.svg
  compass render --chart authors --format csv
  compass summary --format pretty
  compass schema --file data/trans_final_with_url.csv`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	// ── Shared flags ──────────────────────────────────────────────────────
	f := root.PersistentFlags()
	f.StringVar(&a.overrides.EnvFile, "env-file", "", "Path to a .env file (default .env)")
	f.StringVar(&a.overrides.Environment, "env", "", "Environment: development, staging, production")
	f.StringVar(&a.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&a.overrides.DataDir, "data-dir", "", "Directory holding the book tables")
	f.StringVar(&a.overrides.ContentFile, "content-file", "", "YAML file overriding the page content")

	root.AddCommand(
		a.serveCmd(),
		a.renderCmd(),
		a.summaryCmd(),
		a.schemaCmd(),
	)
	return root
}

// container loads the configuration and bootstraps the services. Commands
// other than serve log to stderr so stdout carries only their output.
func (a *app) container(toStderr bool) (*do.RootScope, error) {
	cfg, err := config.Load(a.overrides)
	if err != nil {
		return nil, err
	}

	var opts []di.Option
	if toStderr {
		opts = append(opts, di.WithLogger(logger.New(logger.Config{
			Writer:      a.stderr,
			Level:       logger.ParseLevel(cfg.Logger.Level),
			Environment: cfg.App.Environment,
		})))
	}
	providers.Version = version

	injector := di.NewContainer(cfg, opts...)
	if err := di.Bootstrap(injector); err != nil {
		_ = injector.Shutdown()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return injector, nil
}

// composer bootstraps a container for a one-shot command. The returned
// function releases it.
func (a *app) composer() (*dashboard.Composer, func(), error) {
	injector, err := a.container(true)
	if err != nil {
		return nil, nil, err
	}
	c, err := do.Invoke[*dashboard.Composer](injector)
	if err != nil {
		_ = injector.Shutdown()
		return nil, nil, err
	}
	return c, func() { _ = injector.Shutdown() }, nil
}

// ============================================================================
// HELPERS
// ============================================================================

// output opens path for writing, or returns stdout when path is empty.
func (a *app) output(path string) (io.Writer, func() error, error) {
	if path == "" {
		return a.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
