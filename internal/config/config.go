// Package config loads dashboard configuration from command-line flags,
// environment variables, a .env file and defaults, in that order of precedence.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Dashboard DashboardConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"required,oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"required,oneof=debug info warn error"`
}

// DataConfig points at the flat files the dashboard reads.
type DataConfig struct {
	Dir string `validate:"required"`
	// ContentFile optionally overrides the embedded page content (YAML).
	ContentFile string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `validate:"required,numeric"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	IdleTimeout  time.Duration `validate:"gt=0"`
	// RateLimit caps chart renders per second across all clients; 0 disables it.
	RateLimit float64 `validate:"gte=0"`
	// SessionKey signs the selection cookie. Empty generates a key per process.
	SessionKey string
	// CORSOrigins may call the JSON API from a browser; empty disables CORS.
	CORSOrigins []string
}

// DashboardConfig tunes widget sizes.
type DashboardConfig struct {
	PageSize   int `validate:"gte=1,lte=60"`
	TopAuthors int `validate:"gte=1,lte=100"`
}

// Overrides carries values parsed from command-line flags. Empty fields fall
// through to the environment.
type Overrides struct {
	Environment  string
	LogLevel     string
	DataDir      string
	ContentFile  string
	Port         string
	ReadTimeout  string
	WriteTimeout string
	IdleTimeout  string
	RateLimit    string
	PageSize     string
	TopAuthors   string
	CORSOrigins  string
	EnvFile      string
}

// Load builds the configuration with precedence:
// 1. Overrides (command-line flags).
// 2. Environment variables.
// 3. .env file.
// 4. Defaults.
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env files are fine.
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: pick(o.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: strings.ToLower(pick(o.LogLevel, "LOG_LEVEL", "info")),
		},
		Data: DataConfig{
			Dir:         pick(o.DataDir, "DATA_DIR", "data"),
			ContentFile: pick(o.ContentFile, "CONTENT_FILE", ""),
		},
		Server: ServerConfig{
			Port:        pick(o.Port, "SERVER_PORT", "8501"),
			SessionKey:  pick("", "SESSION_KEY", ""),
			CORSOrigins: splitList(pick(o.CORSOrigins, "CORS_ORIGINS", "")),
		},
		Dashboard: DashboardConfig{
			PageSize:   pickInt(o.PageSize, "PAGE_SIZE", 6),
			TopAuthors: pickInt(o.TopAuthors, "TOP_AUTHORS", 15),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = pickDuration(o.ReadTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = pickDuration(o.WriteTimeout, "SERVER_WRITE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = pickDuration(o.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	rate := pick(o.RateLimit, "RATE_LIMIT_RPS", "20")
	if cfg.Server.RateLimit, err = strconv.ParseFloat(rate, 64); err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	if cfg.Data.Dir, err = expandPath(cfg.Data.Dir); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}
	if cfg.Data.ContentFile != "" {
		if cfg.Data.ContentFile, err = expandPath(cfg.Data.ContentFile); err != nil {
			return nil, fmt.Errorf("invalid content file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Name
	})
	return v
}

// Validate checks field constraints and returns a VALIDATION domain error
// whose details map field names to messages.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Namespace()] = describe(fe)
	}
	return domainerrors.ValidationWithDetails("invalid configuration", details)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "numeric":
		return "must be numeric"
	case "gt", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return filepath.Clean(abs), nil
}

// pick returns the first non-empty value from flag, env var, or default.
func pick(flagValue, envKey, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pickInt(flagValue, envKey string, def int) int {
	s := pick(flagValue, envKey, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pickDuration(flagValue, envKey, def string) (time.Duration, error) {
	s := pick(flagValue, envKey, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %s=%q: %w", envKey, s, err)
	}
	return d, nil
}

// loadEnvFile loads KEY=value lines into the environment without overriding
// variables that are already set.
func loadEnvFile(path string) error {
	f, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
	return sc.Err()
}
