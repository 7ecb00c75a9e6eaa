package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SQLGATE_API_BASE", "https://api.example.com/client/v4")

		cfg, err := LoadFromEnv()

		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/client/v4", cfg.APIBaseURL)
		assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
		assert.Equal(t, DefaultMetaDBPath, cfg.MetaDBPath)
		assert.Equal(t, DefaultRemoteTimeout, cfg.RemoteTimeout)
		assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
		assert.Equal(t, DefaultSweepSchedule, cfg.SweepSchedule)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		assert.Empty(t, cfg.UserErrorSignatures)
		assert.Empty(t, cfg.Warnings)
	})

	t.Run("missing_api_base_fails", func(t *testing.T) {
		t.Setenv("SQLGATE_API_BASE", "")

		_, err := LoadFromEnv()
		require.Error(t, err)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SQLGATE_API_BASE", "https://api.example.com")
		t.Setenv("LISTEN_ADDR", ":9999")
		t.Setenv("CACHE_TTL", "90s")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("USER_ERROR_SIGNATURES", "syntax error,no such table")

		cfg, err := LoadFromEnv()

		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.ListenAddr)
		assert.Equal(t, 90*time.Second, cfg.CacheTTL)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, []string{"syntax error", "no such table"}, cfg.UserErrorSignatures)
	})

	t.Run("invalid_values_warn_and_fall_back", func(t *testing.T) {
		t.Setenv("SQLGATE_API_BASE", "https://api.example.com")
		t.Setenv("CACHE_TTL", "not-a-duration")
		t.Setenv("RATE_LIMIT_RPS", "-5")

		cfg, err := LoadFromEnv()

		require.NoError(t, err)
		assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
		assert.Equal(t, float64(DefaultRateLimitRPS), cfg.RateLimitRPS)
		assert.Len(t, cfg.Warnings, 2)
	})
}

func TestConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing_file_is_not_an_error", func(t *testing.T) {
		require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("sets_unset_variables_only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "# comment\n\nDOTENV_TEST_A=hello\nDOTENV_TEST_B=\"quoted\"\nDOTENV_TEST_C=overridden\nnot a pair\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		t.Setenv("DOTENV_TEST_A", "")
		t.Setenv("DOTENV_TEST_B", "")
		t.Setenv("DOTENV_TEST_C", "from-env")

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "hello", os.Getenv("DOTENV_TEST_A"))
		assert.Equal(t, "quoted", os.Getenv("DOTENV_TEST_B"))
		assert.Equal(t, "from-env", os.Getenv("DOTENV_TEST_C"), "existing env wins over .env")
	})
}
