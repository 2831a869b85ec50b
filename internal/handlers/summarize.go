package handlers

import (
	"encoding/json"
	"net/http"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/service"
)

// SummarizeHandler handles HTTP requests for file summarization.
type SummarizeHandler struct {
	summarizeService *service.SummarizeService
}

// NewSummarizeHandler creates a new SummarizeHandler.
func NewSummarizeHandler(summarizeService *service.SummarizeService) *SummarizeHandler {
	return &SummarizeHandler{summarizeService: summarizeService}
}

// SummarizeRequest represents the HTTP request payload for summarization.
type SummarizeRequest struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
	Model    string `json:"model"`
}

// SummarizeResponse represents the HTTP response payload for summarization.
type SummarizeResponse struct {
	Summary   string `json:"summary"`
	ContentID string `json:"content_id"`
}

// ServeHTTP handles POST /api/summarize.
func (h *SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.summarizeService.Summarize(ctx, service.SummarizeRequest{
		FileName: req.FileName,
		Content:  req.Content,
		Model:    req.Model,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to summarize file")
		return
	}

	writeJSON(w, http.StatusOK, SummarizeResponse{
		Summary:   svcResp.Summary,
		ContentID: svcResp.ContentID,
	})
}
