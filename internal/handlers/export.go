package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/service"
	"genai-assistant/internal/storage"
)

// ExportHandler handles markdown export and import of conversations.
type ExportHandler struct {
	historyService *service.HistoryService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(historyService *service.HistoryService) *ExportHandler {
	return &ExportHandler{historyService: historyService}
}

// ExportResponse names the markdown file that was written.
type ExportResponse struct {
	File string `json:"file"`
}

// ExportListResponse lists the markdown files written so far.
type ExportListResponse struct {
	Files []string `json:"files"`
}

// ImportRequest names the export file to restore.
type ImportRequest struct {
	File string `json:"file"`
}

// Export handles POST /api/chats/{name}/export.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	file, err := h.historyService.Export(ctx, name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to export chat")
		return
	}
	writeJSON(w, http.StatusCreated, ExportResponse{File: file})
}

// List handles GET /api/exports.
func (h *ExportHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.historyService.ListExports(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list exports")
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, ExportListResponse{Files: files})
}

// Import handles POST /api/chats/{name}/import.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	name := chi.URLParam(r, "name")

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	history, err := h.historyService.Import(ctx, name, req.File)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to import chat")
		return
	}
	if history == nil {
		history = []storage.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, ChatHistoryResponse{Name: name, History: history})
}
