package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"genai-assistant/internal/content"
	"genai-assistant/internal/contextutil"
)

// ContentHandler exposes the stored document texts.
type ContentHandler struct {
	store *content.Store
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(store *content.Store) *ContentHandler {
	return &ContentHandler{store: store}
}

// ContentListResponse lists stored documents without their text.
type ContentListResponse struct {
	Items []content.Item `json:"items"`
}

// ContentResponse carries one stored document including its text.
type ContentResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Content   string `json:"content"`
}

// List handles GET /api/contents.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.store.List()
	if items == nil {
		items = []content.Item{}
	}
	writeJSON(w, http.StatusOK, ContentListResponse{Items: items})
}

// Get handles GET /api/contents/{id}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	item, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Content not found")
			return
		}
		logger.ErrorContext(ctx, "failed to read content", "content_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read content")
		return
	}

	writeJSON(w, http.StatusOK, ContentResponse{
		ID:        item.ID,
		FileName:  item.FileName,
		MediaType: item.MediaType,
		Content:   item.Content,
	})
}
