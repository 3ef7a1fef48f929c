package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.SessionCookieName != "session" {
		t.Errorf("SessionCookieName = %q, want %q", cfg.SessionCookieName, "session")
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Errorf("LLMModel = %q, want %q", cfg.LLMModel, "gpt-4o-mini")
	}
	if cfg.LLMTimeout != "30s" {
		t.Errorf("LLMTimeout = %q, want %q", cfg.LLMTimeout, "30s")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("OWNER_USER_ID", "owner-123")
	os.Setenv("LLM_TIMEOUT", "10s")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.OwnerUserID != "owner-123" {
		t.Errorf("OwnerUserID = %q, want %q", cfg.OwnerUserID, "owner-123")
	}
	if got := cfg.LLMRequestTimeout(); got != 10*time.Second {
		t.Errorf("LLMRequestTimeout = %v, want 10s", got)
	}
	if got := cfg.SlogLevel(); got != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", got)
	}
}

func TestLoad_ProductionRequiresSessionSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail when APP_ENV=production and SESSION_SECRET is empty")
	}

	os.Setenv("SESSION_SECRET", "super-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret: %v", err)
	}
	if cfg.SessionSecret != "super-secret" {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, "super-secret")
	}
}

func TestLLMRequestTimeout_Fallback(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty", "", 30 * time.Second},
		{"invalid", "soon", 30 * time.Second},
		{"negative", "-5s", 30 * time.Second},
		{"valid", "2m", 2 * time.Minute},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{LLMTimeout: tc.value}
			if got := cfg.LLMRequestTimeout(); got != tc.want {
				t.Errorf("LLMRequestTimeout = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	testCases := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range testCases {
		cfg := &Config{LogLevel: tc.value}
		if got := cfg.SlogLevel(); got != tc.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
