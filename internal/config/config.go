// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultListenAddr     = ":8080"
	DefaultMetaDBPath     = "sqlgate_meta.sqlite"
	DefaultRemoteTimeout  = 30 * time.Second
	DefaultCacheTTL       = 5 * time.Minute
	DefaultSweepSchedule  = "@every 5m"
	DefaultRateLimitRPS   = 100
	DefaultRateLimitBurst = 200
)

// Config holds the configuration for the gateway server.
type Config struct {
	APIBaseURL string // remote SQL service base URL (required)
	ListenAddr string // HTTP listen address
	MetaDBPath string // path to the SQLite metadata file
	LogLevel   string // debug, info, warn, error
	Env        string // "development" (default) or "production"

	RemoteTimeout time.Duration // per-call bound on remote requests
	CacheTTL      time.Duration // result cache freshness window
	SweepSchedule string        // cron spec for the background cache sweep

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string

	// UserErrorSignatures overrides the classifier's signature list.
	// Empty means the built-in defaults.
	UserErrorSignatures []string

	// Warnings collects non-fatal warnings generated during loading.
	// The caller logs them once the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    os.Getenv("SQLGATE_API_BASE"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		MetaDBPath:    os.Getenv("META_DB_PATH"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Env:           os.Getenv("SQLGATE_ENV"),
		SweepSchedule: os.Getenv("CACHE_SWEEP_SCHEDULE"),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("SQLGATE_API_BASE is required")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.MetaDBPath == "" {
		cfg.MetaDBPath = DefaultMetaDBPath
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = DefaultSweepSchedule
	}

	cfg.RemoteTimeout = durationOr(cfg, "REMOTE_TIMEOUT", DefaultRemoteTimeout)
	cfg.CacheTTL = durationOr(cfg, "CACHE_TTL", DefaultCacheTTL)
	cfg.RateLimitRPS = floatOr(cfg, "RATE_LIMIT_RPS", DefaultRateLimitRPS)
	cfg.RateLimitBurst = intOr(cfg, "RATE_LIMIT_BURST", DefaultRateLimitBurst)

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	cfg.UserErrorSignatures = splitList(os.Getenv("USER_ERROR_SIGNATURES"))

	return cfg, nil
}

func durationOr(cfg *Config, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid %s %q, using %s", key, v, fallback))
		return fallback
	}
	return d
}

func floatOr(cfg *Config, key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid %s %q, using %g", key, v, fallback))
		return fallback
	}
	return f
}

func intOr(cfg *Config, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid %s %q, using %d", key, v, fallback))
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be KEY=VALUE; comments (#) and blanks are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
