package handlers

import (
	"encoding/json"
	"net/http"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/service"
	"genai-assistant/internal/storage"
)

// ChatHandler handles HTTP requests for chat completions.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	ChatName      string  `json:"chat_name,omitempty"`
	Prompt        string  `json:"prompt"`
	Model         string  `json:"model"`
	Persona       string  `json:"persona,omitempty"`
	CustomPersona string  `json:"custom_persona,omitempty"`
	ContentID     string  `json:"content_id,omitempty"`
	Temperature   float32 `json:"temperature,omitempty"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Reply   string                `json:"reply"`
	Model   string                `json:"model"`
	Usage   llm.Usage             `json:"usage"`
	History []storage.ChatMessage `json:"history,omitempty"`
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.chatService.ProcessChat(ctx, service.ChatRequest{
		ChatName:      req.ChatName,
		Prompt:        req.Prompt,
		Model:         req.Model,
		Persona:       req.Persona,
		CustomPersona: req.CustomPersona,
		ContentID:     req.ContentID,
		Temperature:   req.Temperature,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:   svcResp.Reply,
		Model:   svcResp.Model,
		Usage:   svcResp.Usage,
		History: svcResp.History,
	})
}
