package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"genai-assistant/internal/content"
	"genai-assistant/internal/handlers"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB               *sql.DB
	LLMClient        *llm.Client
	ChatService      *service.ChatService
	HistoryService   *service.HistoryService
	SummarizeService *service.SummarizeService
	ContentStore     *content.Store
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	chatsHandler := handlers.NewChatsHandler(deps.HistoryService)
	exportHandler := handlers.NewExportHandler(deps.HistoryService)
	summarizeHandler := handlers.NewSummarizeHandler(deps.SummarizeService)
	contentHandler := handlers.NewContentHandler(deps.ContentStore)
	modelsHandler := handlers.NewModelsHandler(deps.LLMClient)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.LLMClient)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/summarize", summarizeHandler)
		r.Method(http.MethodGet, "/models", modelsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/chats", func(r chi.Router) {
			r.Get("/", chatsHandler.List)
			r.Get("/{name}", chatsHandler.Get)
			r.Put("/{name}", chatsHandler.Put)
			r.Delete("/{name}", chatsHandler.Delete)
			r.Post("/{name}/export", exportHandler.Export)
			r.Post("/{name}/import", exportHandler.Import)
		})

		r.Get("/exports", exportHandler.List)

		r.Route("/contents", func(r chi.Router) {
			r.Get("/", contentHandler.List)
			r.Get("/{id}", contentHandler.Get)
		})
	})

	return r
}
