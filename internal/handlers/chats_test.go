package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"genai-assistant/internal/export"
	"genai-assistant/internal/service"
	"genai-assistant/internal/service/mocks"
	"genai-assistant/internal/storage"

	"go.uber.org/mock/gomock"
)

func newChatsRouter(t *testing.T, ctrl *gomock.Controller) (chi.Router, *mocks.MockChatStore) {
	t.Helper()
	store := mocks.NewMockChatStore(ctrl)
	exporter, err := export.NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}
	svc := service.NewHistoryService(store, exporter)

	handler := NewChatsHandler(svc)
	exportHandler := NewExportHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/chats", handler.List)
	r.Get("/api/chats/{name}", handler.Get)
	r.Put("/api/chats/{name}", handler.Put)
	r.Delete("/api/chats/{name}", handler.Delete)
	r.Post("/api/chats/{name}/export", exportHandler.Export)
	r.Post("/api/chats/{name}/import", exportHandler.Import)
	r.Get("/api/exports", exportHandler.List)
	return r, store
}

func TestChatsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, store := newChatsRouter(t, ctrl)
	store.EXPECT().List(gomock.Any()).Return([]string{"alpha", "beta"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp ChatListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Chats) != 2 || resp.Chats[0] != "alpha" {
		t.Errorf("Chats = %v, want [alpha beta]", resp.Chats)
	}
}

func TestChatsHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, store := newChatsRouter(t, ctrl)
	history := []storage.ChatMessage{{Role: "user", Content: "Hi"}}
	store.EXPECT().Load(gomock.Any(), "alpha").Return(history, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chats/alpha", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp ChatHistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "alpha" || len(resp.History) != 1 {
		t.Errorf("response = %+v, want chat alpha with one message", resp)
	}
}

func TestChatsHandler_GetMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, store := newChatsRouter(t, ctrl)
	store.EXPECT().Load(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/chats/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestChatsHandler_PutAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, store := newChatsRouter(t, ctrl)
	store.EXPECT().Save(gomock.Any(), "alpha", gomock.Len(1)).Return(nil)
	store.EXPECT().Delete(gomock.Any(), "alpha").Return(nil)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(SaveChatRequest{
		History: []storage.ChatMessage{{Role: "user", Content: "Hi"}},
	}); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	putReq := httptest.NewRequest(http.MethodPut, "/api/chats/alpha", &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, putReq)
	if w.Code != http.StatusOK {
		t.Errorf("PUT status = %d, want 200", w.Code)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/chats/alpha", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", w.Code)
	}
}

func TestExportHandler_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, store := newChatsRouter(t, ctrl)
	history := []storage.ChatMessage{
		{Role: "user", Content: "What is Go?"},
		{Role: "assistant", Content: "A programming language."},
	}
	store.EXPECT().Load(gomock.Any(), "alpha").Return(history, nil)

	w := postJSON(t, router, "/api/chats/alpha/export", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("export status = %d, want 201", w.Code)
	}
	var exported ExportResponse
	if err := json.NewDecoder(w.Body).Decode(&exported); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/exports", nil)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	var listed ExportListResponse
	if err := json.NewDecoder(lw.Body).Decode(&listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed.Files) != 1 || listed.Files[0] != exported.File {
		t.Errorf("Files = %v, want [%s]", listed.Files, exported.File)
	}

	store.EXPECT().Save(gomock.Any(), "restored", gomock.Len(2)).Return(nil)
	iw := postJSON(t, router, "/api/chats/restored/import", ImportRequest{File: exported.File})
	if iw.Code != http.StatusOK {
		t.Fatalf("import status = %d, want 200", iw.Code)
	}
	var restored ChatHistoryResponse
	if err := json.NewDecoder(iw.Body).Decode(&restored); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(restored.History) != 2 || restored.History[0].Content != "What is Go?" {
		t.Errorf("imported history = %+v, want original messages", restored.History)
	}
}
