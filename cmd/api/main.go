package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"path/filepath"

	"genai-assistant/internal/config"
	"genai-assistant/internal/content"
	"genai-assistant/internal/export"
	"genai-assistant/internal/http"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/service"
	"genai-assistant/internal/storage"
	"genai-assistant/internal/worker"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	chatRepo := storage.NewChatRepo(db)

	// Keep a live markdown copy of every chat next to the exports
	chatStore, err := export.NewMirroredStore(chatRepo, filepath.Join(cfg.ExportsPath, "current"))
	if err != nil {
		log.Fatalf("Failed to create markdown mirror: %v", err)
	}

	// Build the LLM dispatch client from configured provider credentials
	providerConfigs := make(map[string]llm.ProviderConfig, len(cfg.ProviderKeys))
	for provider, key := range cfg.ProviderKeys {
		providerConfigs[provider] = llm.ProviderConfig{
			APIKey:  key,
			BaseURL: cfg.ProviderBaseURLs[provider],
		}
	}
	llmClient, err := llm.NewClient(providerConfigs)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	if len(llmClient.Providers()) == 0 {
		slog.Warn("No provider API keys configured, chat requests will fail")
	} else {
		slog.Info("LLM client initialized", "providers", llmClient.Providers())
	}

	// Markdown export directory
	exporter, err := export.NewExporter(cfg.ExportsPath)
	if err != nil {
		log.Fatalf("Failed to create exporter: %v", err)
	}

	// Uploaded document store
	contentStore, err := content.NewStore(cfg.ContentDir)
	if err != nil {
		log.Fatalf("Failed to create content store: %v", err)
	}

	cache := llm.NewResponseCache(cfg.CacheTTL)
	pool := worker.NewPool(cfg.Workers)

	chatService := service.NewChatService(llmClient, chatStore, contentStore, cache, pool, cfg.MaxTokens, cfg.SummaryMaxTokens)
	historyService := service.NewHistoryService(chatStore, exporter)
	summarizeService := service.NewSummarizeService(llmClient, contentStore, pool, cfg.MaxTokens, cfg.SummaryMaxTokens)
	slog.Info("Services initialized", "workers", cfg.Workers, "cache_ttl", cfg.CacheTTL)

	deps := &http.Deps{
		DB:               db,
		LLMClient:        llmClient,
		ChatService:      chatService,
		HistoryService:   historyService,
		SummarizeService: summarizeService,
		ContentStore:     contentStore,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
