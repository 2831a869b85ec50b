package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completer.go -package=mocks genai-assistant/internal/service Completer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_content_reader.go -package=mocks genai-assistant/internal/service ContentReader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"genai-assistant/internal/content"
	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/persona"
	"genai-assistant/internal/storage"
	"genai-assistant/internal/textchunk"
	"genai-assistant/internal/worker"
)

// Completer dispatches a chat completion to an LLM provider.
// This interface is defined from the service layer's perspective (consumer-first).
type Completer interface {
	Complete(ctx context.Context, model string, messages []llm.Message, opts llm.ChatOptions) (*llm.CompletionResult, error)
}

// ContentReader looks up previously stored document text by ID.
type ContentReader interface {
	Get(id string) (*content.Item, error)
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	ChatName      string
	Prompt        string
	Model         string
	Persona       string
	CustomPersona string
	ContentID     string
	Temperature   float32
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Reply   string
	Model   string
	Usage   llm.Usage
	History []storage.ChatMessage
}

// ChatService orchestrates a conversation turn: it assembles the message
// list from persona, attached content, and stored history, dispatches the
// completion, and persists the updated history.
type ChatService struct {
	completer Completer
	store     storage.ChatStore
	contents  ContentReader
	cache     *llm.ResponseCache
	pool      *worker.Pool

	maxTokens        int
	summaryMaxTokens int
}

// NewChatService creates a new ChatService.
func NewChatService(completer Completer, store storage.ChatStore, contents ContentReader, cache *llm.ResponseCache, pool *worker.Pool, maxTokens, summaryMaxTokens int) *ChatService {
	return &ChatService{
		completer:        completer,
		store:            store,
		contents:         contents,
		cache:            cache,
		pool:             pool,
		maxTokens:        maxTokens,
		summaryMaxTokens: summaryMaxTokens,
	}
}

// ProcessChat processes a chat request and returns a response.
// A prompt larger than the token budget is split into sentence chunks that
// run concurrently; replies are joined in submission order.
func (s *ChatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Prompt) == "" {
		logger.WarnContext(ctx, "empty prompt in chat request")
		return ChatResponse{}, &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}
	if req.Model == "" {
		return ChatResponse{}, &ValidationError{Field: "model", Message: "cannot be empty"}
	}
	if _, _, err := llm.SplitModelID(req.Model); err != nil {
		return ChatResponse{}, &ValidationError{Field: "model", Message: err.Error()}
	}

	history, err := s.loadHistory(ctx, req.ChatName)
	if err != nil {
		return ChatResponse{}, err
	}

	leading := s.contextMessages(ctx, req)

	var reply string
	var usage llm.Usage
	if textchunk.EstimateTokens(req.Prompt) > s.maxTokens {
		logger.InfoContext(ctx, "prompt exceeds token budget, chunking",
			"estimated_tokens", textchunk.EstimateTokens(req.Prompt), "budget", s.maxTokens)
		reply, err = s.completeChunked(ctx, req, leading, history)
	} else {
		messages := append(append(leading, historyMessages(history)...), llm.Message{Role: llm.RoleUser, Content: req.Prompt})
		var result *llm.CompletionResult
		result, err = s.complete(ctx, req.Model, messages, req.Temperature)
		if result != nil {
			reply = result.Content
			usage = result.Usage
		}
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to get completion", "model", req.Model, "error", err)
		return ChatResponse{}, WrapError(err, "failed to get completion")
	}

	history = append(history,
		storage.ChatMessage{Role: llm.RoleUser, Content: req.Prompt},
		storage.ChatMessage{Role: llm.RoleAssistant, Content: reply},
	)
	if req.ChatName != "" {
		if err := s.store.Save(ctx, req.ChatName, history); err != nil {
			logger.ErrorContext(ctx, "failed to save chat history", "chat", req.ChatName, "error", err)
			return ChatResponse{}, WrapError(err, "failed to save chat history")
		}
	}

	logger.InfoContext(ctx, "chat request processed successfully",
		"model", req.Model, "prompt_length", len(req.Prompt), "reply_length", len(reply))
	return ChatResponse{Reply: reply, Model: req.Model, Usage: usage, History: history}, nil
}

// loadHistory returns the stored conversation for a named chat. An unnamed
// or not-yet-saved chat starts empty.
func (s *ChatService) loadHistory(ctx context.Context, name string) ([]storage.ChatMessage, error) {
	if name == "" {
		return nil, nil
	}
	history, err := s.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, WrapError(err, "failed to load chat history")
	}
	return history, nil
}

// contextMessages builds the leading system messages: the resolved persona
// prompt, then any attached document text trimmed to the summary budget.
func (s *ChatService) contextMessages(ctx context.Context, req ChatRequest) []llm.Message {
	logger := contextutil.LoggerFromContext(ctx)

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: persona.Resolve(req.Persona, req.CustomPersona)},
	}
	if req.ContentID == "" {
		return messages
	}

	item, err := s.contents.Get(req.ContentID)
	if err != nil {
		// Missing content degrades to a plain conversation rather than
		// failing the whole request.
		logger.WarnContext(ctx, "attached content unavailable", "content_id", req.ContentID, "error", err)
		return messages
	}
	excerpt := textchunk.EnsureTokenLimit(item.Content, s.summaryMaxTokens)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf("The user has attached a document named %q. Use it as context:\n\n%s", item.FileName, excerpt),
	})
	return messages
}

// complete dispatches one completion, consulting the response cache first
// and retrying rate-limited attempts.
func (s *ChatService) complete(ctx context.Context, model string, messages []llm.Message, temperature float32) (*llm.CompletionResult, error) {
	key := llm.CacheKey(model, temperature, messages)
	if cached, ok := s.cache.Get(key); ok {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "response cache hit", "model", model)
		return cached, nil
	}

	result, err := llm.WithRetry(ctx, func() (*llm.CompletionResult, error) {
		return s.completer.Complete(ctx, model, messages, llm.ChatOptions{Temperature: temperature})
	})
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, result)
	return result, nil
}

// completeChunked splits an oversized prompt into sentence chunks and runs
// one completion per chunk on the worker pool. Chunks that fail are dropped;
// the call errors only when every chunk fails.
func (s *ChatService) completeChunked(ctx context.Context, req ChatRequest, leading []llm.Message, history []storage.ChatMessage) (string, error) {
	chunks := textchunk.Chunk(req.Prompt, s.maxTokens)
	base := append(leading, historyMessages(history)...)

	tasks := make([]worker.Task, len(chunks))
	for i, chunk := range chunks {
		messages := make([]llm.Message, len(base), len(base)+1)
		copy(messages, base)
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: chunk})
		tasks[i] = func(ctx context.Context) (string, error) {
			result, err := s.complete(ctx, req.Model, messages, req.Temperature)
			if err != nil {
				return "", err
			}
			return result.Content, nil
		}
	}

	replies := s.pool.Map(ctx, tasks)
	if len(replies) == 0 {
		return "", fmt.Errorf("%w: all %d prompt chunks failed", ErrExternalService, len(chunks))
	}
	return strings.Join(replies, "\n\n"), nil
}

func historyMessages(history []storage.ChatMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}
