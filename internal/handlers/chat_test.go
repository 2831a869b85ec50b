package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"genai-assistant/internal/llm"
	"genai-assistant/internal/service"
	"genai-assistant/internal/service/mocks"
	"genai-assistant/internal/worker"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestChatHandler(t *testing.T, ctrl *gomock.Controller) (*ChatHandler, *mocks.MockCompleter) {
	t.Helper()
	completer := mocks.NewMockCompleter(ctrl)
	store := mocks.NewMockChatStore(ctrl)
	contents := mocks.NewMockContentReader(ctrl)
	svc := service.NewChatService(completer, store, contents, llm.NewResponseCache(time.Hour), worker.NewPool(2), 2000, 500)
	return NewChatHandler(svc), completer
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestChatHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name          string
		body          any
		mockSetup     func(*mocks.MockCompleter)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful request",
			body: ChatRequest{Prompt: "Hello", Model: "groq:llama-3.1-8b-instant"},
			mockSetup: func(m *mocks.MockCompleter) {
				m.EXPECT().
					Complete(gomock.Any(), "groq:llama-3.1-8b-instant", gomock.Any(), gomock.Any()).
					Return(&llm.CompletionResult{
						Content: "Hi there!",
						Usage:   llm.Usage{TotalTokens: 12},
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ChatResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Reply != "Hi there!" {
					t.Errorf("Reply = %q, want %q", resp.Reply, "Hi there!")
				}
				if resp.Usage.TotalTokens != 12 {
					t.Errorf("TotalTokens = %d, want 12", resp.Usage.TotalTokens)
				}
			},
		},
		{
			name:       "invalid JSON body",
			body:       "not json",
			mockSetup:  func(m *mocks.MockCompleter) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty prompt rejected",
			body:       ChatRequest{Prompt: "", Model: "groq:llama-3.1-8b-instant"},
			mockSetup:  func(m *mocks.MockCompleter) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed model identifier rejected",
			body:       ChatRequest{Prompt: "Hello", Model: "groqllama"},
			mockSetup:  func(m *mocks.MockCompleter) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "provider failure maps to bad gateway",
			body: ChatRequest{Prompt: "Hello", Model: "groq:llama-3.1-8b-instant"},
			mockSetup: func(m *mocks.MockCompleter) {
				m.EXPECT().
					Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &llm.ProviderError{Provider: "groq", StatusCode: 500, Err: errors.New("boom")})
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "rate limit maps to 429",
			body: ChatRequest{Prompt: "Hello", Model: "groq:llama-3.1-8b-instant"},
			mockSetup: func(m *mocks.MockCompleter) {
				m.EXPECT().
					Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &llm.ProviderError{Provider: "groq", StatusCode: 429, Err: errors.New("slow down")}).
					Times(3)
			},
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantStatus == http.StatusTooManyRequests && testing.Short() {
				t.Skip("retry backoff sleeps for several seconds")
			}
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, completer := newTestChatHandler(t, ctrl)
			tt.mockSetup(completer)

			w := postJSON(t, handler, "/api/chat", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
