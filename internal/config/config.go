package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath           string
	ExportsPath      string
	ContentDir       string
	APIPort          string
	LogLevel         slog.Level
	LogFormat        string
	DefaultProvider  string
	ProviderKeys     map[string]string
	ProviderBaseURLs map[string]string
	CacheTTL         time.Duration
	MaxTokens        int
	SummaryMaxTokens int
	Workers          int
}

// supportedProviders mirrors the dispatch facade's supported set; config
// only decides which of them get credentials from the environment.
var supportedProviders = []string{"openai", "anthropic", "cohere", "groq", "xai", "deepseek"}

// Load reads configuration from environment variables and returns a Config.
// If a .env file exists in the current directory or a parent, it is loaded
// first; variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:          getEnv("DB_PATH", "./data/chat_history.db"),
		ExportsPath:     getEnv("EXPORTS_PATH", "./exports"),
		ContentDir:      getEnv("CONTENT_DIR", "./cache"),
		APIPort:         getEnv("API_PORT", "9000"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "groq"),
	}

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	ttlSeconds, err := getEnvInt("CACHE_TTL", 3600)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	if cfg.MaxTokens, err = getEnvInt("MAX_TOKENS", 2000); err != nil {
		return nil, err
	}
	if cfg.SummaryMaxTokens, err = getEnvInt("SUMMARY_MAX_TOKENS", 500); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("WORKERS", 3); err != nil {
		return nil, err
	}

	cfg.ProviderKeys = loadProviderKeys()
	cfg.ProviderBaseURLs = loadProviderBaseURLs()

	// Create the data directory for the DB file.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadProviderKeys reads one API key per provider from <PROVIDER>_API_KEY.
// Cohere and xAI tooling commonly sets CO_API_KEY and XAIKEY instead, so
// those are accepted as fallbacks. Providers without a key are omitted.
func loadProviderKeys() map[string]string {
	keys := make(map[string]string)
	for _, p := range supportedProviders {
		key := os.Getenv(strings.ToUpper(p) + "_API_KEY")
		if key == "" && p == "cohere" {
			key = os.Getenv("CO_API_KEY")
		}
		if key == "" && p == "xai" {
			key = os.Getenv("XAIKEY")
		}
		if key != "" {
			keys[p] = key
		}
	}
	return keys
}

// loadProviderBaseURLs reads optional <PROVIDER>_BASE_URL endpoint overrides.
func loadProviderBaseURLs() map[string]string {
	urls := make(map[string]string)
	for _, p := range supportedProviders {
		if url := os.Getenv(strings.ToUpper(p) + "_BASE_URL"); url != "" {
			urls[p] = url
		}
	}
	return urls
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}
