package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error = %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("Chdir(%q) error = %v", prev, err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "data", "chat_history.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want %q", cfg.APIPort, "9000")
	}
	if cfg.DefaultProvider != "groq" {
		t.Errorf("DefaultProvider = %q, want %q", cfg.DefaultProvider, "groq")
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, time.Hour)
	}
	if cfg.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", cfg.MaxTokens)
	}
	if cfg.SummaryMaxTokens != 500 {
		t.Errorf("SummaryMaxTokens = %d, want 500", cfg.SummaryMaxTokens)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
}

func TestLoadProviderKeys(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "data", "chat_history.db"))
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CO_API_KEY", "cohere-fallback")
	t.Setenv("XAIKEY", "xai-fallback")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ProviderKeys["openai"] != "sk-test" {
		t.Errorf("openai key = %q, want %q", cfg.ProviderKeys["openai"], "sk-test")
	}
	if cfg.ProviderKeys["cohere"] != "cohere-fallback" {
		t.Errorf("cohere key = %q, want %q", cfg.ProviderKeys["cohere"], "cohere-fallback")
	}
	if cfg.ProviderKeys["xai"] != "xai-fallback" {
		t.Errorf("xai key = %q, want %q", cfg.ProviderKeys["xai"], "xai-fallback")
	}
	if _, ok := cfg.ProviderKeys["anthropic"]; ok {
		t.Error("anthropic key should be absent when unset")
	}
}

func TestLoadPrimaryKeyWinsOverFallback(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "data", "chat_history.db"))
	t.Setenv("COHERE_API_KEY", "primary")
	t.Setenv("CO_API_KEY", "fallback")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProviderKeys["cohere"] != "primary" {
		t.Errorf("cohere key = %q, want %q", cfg.ProviderKeys["cohere"], "primary")
	}
}

func TestLoadInvalidInt(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("MAX_TOKENS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid MAX_TOKENS")
	}

	t.Setenv("MAX_TOKENS", "-5")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for negative MAX_TOKENS")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
