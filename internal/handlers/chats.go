package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/service"
	"genai-assistant/internal/storage"
)

// ChatsHandler handles HTTP requests for saved conversations.
type ChatsHandler struct {
	historyService *service.HistoryService
}

// NewChatsHandler creates a new ChatsHandler.
func NewChatsHandler(historyService *service.HistoryService) *ChatsHandler {
	return &ChatsHandler{historyService: historyService}
}

// ChatListResponse lists saved chat names.
type ChatListResponse struct {
	Chats []string `json:"chats"`
}

// ChatHistoryResponse carries a chat's stored messages.
type ChatHistoryResponse struct {
	Name    string                `json:"name"`
	History []storage.ChatMessage `json:"history"`
}

// SaveChatRequest is the payload for replacing a chat's history.
type SaveChatRequest struct {
	History []storage.ChatMessage `json:"history"`
}

// List handles GET /api/chats.
func (h *ChatsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := h.historyService.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list chats")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, ChatListResponse{Chats: names})
}

// Get handles GET /api/chats/{name}.
func (h *ChatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	history, err := h.historyService.Load(ctx, name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load chat")
		return
	}
	writeJSON(w, http.StatusOK, ChatHistoryResponse{Name: name, History: history})
}

// Put handles PUT /api/chats/{name}.
func (h *ChatsHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	name := chi.URLParam(r, "name")

	var req SaveChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.historyService.Save(ctx, name, req.History); err != nil {
		handleServiceError(w, ctx, err, "Failed to save chat")
		return
	}
	writeJSON(w, http.StatusOK, ChatHistoryResponse{Name: name, History: req.History})
}

// Delete handles DELETE /api/chats/{name}.
func (h *ChatsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	if err := h.historyService.Delete(ctx, name); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete chat")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
