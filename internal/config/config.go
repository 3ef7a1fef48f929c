// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; the store handle stays unavailable while empty.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// OwnerUserID is the single user id auto-promoted to admin on upsert.
	OwnerUserID string `mapstructure:"OWNER_USER_ID"`
	// SessionSecret is the HMAC secret shared with the identity provider that signs session tokens.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	// SessionCookieName is the cookie carrying the session token (default "session").
	SessionCookieName string `mapstructure:"SESSION_COOKIE_NAME"`
	// LLMBaseURL is the base URL of the OpenAI-compatible text-generation API; empty disables headline optimization.
	LLMBaseURL string `mapstructure:"LLM_BASE_URL"`
	// LLMAPIKey is the bearer token for the text-generation API.
	LLMAPIKey string `mapstructure:"LLM_API_KEY"`
	// LLMModel is the model name sent on chat completion requests.
	LLMModel string `mapstructure:"LLM_MODEL"`
	// LLMTimeout is the per-request timeout for the text-generation API (e.g. "30s").
	LLMTimeout string `mapstructure:"LLM_TIMEOUT"`
	// LogLevel is the slog level ("debug", "info", "warn", "error"); default info.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("OWNER_USER_ID", "")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_COOKIE_NAME", "session")
	v.SetDefault("LLM_BASE_URL", "")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.SessionCookieName == "" {
		return nil, errors.New("config: SESSION_COOKIE_NAME must be set")
	}
	if cfg.Env == "production" && cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET must be set when APP_ENV=production")
	}

	return &cfg, nil
}

// LLMRequestTimeout parses LLMTimeout as a time.Duration. Returns 30s if unset or invalid.
func (c *Config) LLMRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLMTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
