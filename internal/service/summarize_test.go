package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"genai-assistant/internal/content"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/service"
	"genai-assistant/internal/service/mocks"
	"genai-assistant/internal/worker"

	"go.uber.org/mock/gomock"
)

func newContentStore(t *testing.T) *content.Store {
	t.Helper()
	store, err := content.NewStore(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

func TestSummarizeService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	store := newContentStore(t)
	svc := service.NewSummarizeService(completer, store, worker.NewPool(2), testMaxTokens, 500)

	completer.EXPECT().
		Complete(gomock.Any(), "groq:llama-3.1-8b-instant", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages []llm.Message, opts llm.ChatOptions) (*llm.CompletionResult, error) {
			if messages[0].Role != llm.RoleSystem {
				t.Errorf("first message role = %q, want system", messages[0].Role)
			}
			if !strings.Contains(messages[0].Content, "Python") {
				t.Errorf("instruction for .py file = %q, want Python-specific prompt", messages[0].Content)
			}
			if opts.MaxTokens != 500 {
				t.Errorf("MaxTokens = %d, want 500", opts.MaxTokens)
			}
			return &llm.CompletionResult{Content: "A small script."}, nil
		})

	resp, err := svc.Summarize(context.Background(), service.SummarizeRequest{
		FileName: "script.py",
		Content:  "print('hello')",
		Model:    "groq:llama-3.1-8b-instant",
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if resp.Summary != "A small script." {
		t.Errorf("Summary = %q, want %q", resp.Summary, "A small script.")
	}
	if resp.ContentID == "" {
		t.Error("ContentID is empty, want stored content reference")
	}

	// The original text must be retrievable under the returned ID.
	item, err := store.Get(resp.ContentID)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", resp.ContentID, err)
	}
	if item.Content != "print('hello')" {
		t.Errorf("stored content = %q, want original text", item.Content)
	}
}

func TestSummarizeService_Summarize_MultipleChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	svc := service.NewSummarizeService(completer, newContentStore(t), worker.NewPool(2), testMaxTokens, 500)

	first := strings.Repeat("alpha ", testMaxTokens) + "end."
	second := strings.Repeat("bravo ", testMaxTokens) + "end."

	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages []llm.Message, _ llm.ChatOptions) (*llm.CompletionResult, error) {
			chunk := messages[len(messages)-1].Content
			if strings.HasPrefix(chunk, "alpha") {
				return &llm.CompletionResult{Content: "summary one"}, nil
			}
			return &llm.CompletionResult{Content: "summary two"}, nil
		}).
		Times(2)

	resp, err := svc.Summarize(context.Background(), service.SummarizeRequest{
		FileName: "big.txt",
		Content:  first + " " + second,
		Model:    "groq:llama-3.1-8b-instant",
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if resp.Summary != "summary one\n\nsummary two" {
		t.Errorf("Summary = %q, want chunk summaries joined in order", resp.Summary)
	}
}

func TestSummarizeService_Summarize_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewSummarizeService(mocks.NewMockCompleter(ctrl), newContentStore(t), worker.NewPool(1), testMaxTokens, 500)

	tests := []struct {
		name      string
		req       service.SummarizeRequest
		wantField string
	}{
		{"empty content", service.SummarizeRequest{FileName: "a.txt", Model: "groq:m"}, "content"},
		{"empty model", service.SummarizeRequest{FileName: "a.txt", Content: "text"}, "model"},
		{"bad model id", service.SummarizeRequest{FileName: "a.txt", Content: "text", Model: "nomodel"}, "model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Summarize(context.Background(), tt.req)
			var validationErr *service.ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != tt.wantField {
				t.Errorf("Summarize() error = %v, want validation error on %q", err, tt.wantField)
			}
		})
	}
}

func TestSummarizeService_Summarize_AllChunksFailing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	svc := service.NewSummarizeService(completer, newContentStore(t), worker.NewPool(2), testMaxTokens, 500)

	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("unreachable")).
		AnyTimes()

	_, err := svc.Summarize(context.Background(), service.SummarizeRequest{
		FileName: "a.txt",
		Content:  "Short text.",
		Model:    "groq:llama-3.1-8b-instant",
	})
	if !errors.Is(err, service.ErrExternalService) {
		t.Errorf("Summarize() error = %v, want ErrExternalService", err)
	}
}
