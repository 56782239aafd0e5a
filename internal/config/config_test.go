package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{Dir: "/data"},
		Server: ServerConfig{
			Port:         "8501",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Dashboard: DashboardConfig{PageSize: 6, TopAuthors: 15},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Environments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestValidate_DetailsNameTheField(t *testing.T) {
	cfg := validConfig()
	cfg.Dashboard.PageSize = 0
	cfg.Server.Port = "http"

	err := cfg.Validate()
	require.Error(t, err)

	var de *domainerrors.Error
	require.ErrorAs(t, err, &de)
	details, ok := de.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 1", details["Config.Dashboard.PageSize"])
	assert.Equal(t, "must be numeric", details["Config.Server.Port"])
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("DATA_DIR", "/from-env")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("PAGE_SIZE", "12")

	cfg, err := Load(Overrides{Port: "9100", EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "/from-env", cfg.Data.Dir)
	assert.Equal(t, "9100", cfg.Server.Port, "flag beats env")
	assert.Equal(t, 12, cfg.Dashboard.PageSize)
	assert.Equal(t, 15, cfg.Dashboard.TopAuthors)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, ":9100", cfg.Addr())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# dashboard\nLOG_LEVEL=debug\nRATE_LIMIT_RPS=\"2.5\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Setenv("RATE_LIMIT_RPS", "")
	require.NoError(t, os.Unsetenv("RATE_LIMIT_RPS"))

	cfg, err := Load(Overrides{EnvFile: envPath, DataDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.InDelta(t, 2.5, cfg.Server.RateLimit, 1e-9)
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(Overrides{ReadTimeout: "soon", EnvFile: filepath.Join(t.TempDir(), "x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_READ_TIMEOUT")
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	cfg, err := Load(Overrides{EnvFile: filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)

	cfg, err = Load(Overrides{EnvFile: filepath.Join(t.TempDir(), "none.env"), CORSOrigins: "https://c.example"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://c.example"}, cfg.Server.CORSOrigins)
}
