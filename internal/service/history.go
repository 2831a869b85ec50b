package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_store.go -package=mocks genai-assistant/internal/storage ChatStore

import (
	"context"
	"errors"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/export"
	"genai-assistant/internal/storage"
)

// HistoryService manages named conversations and their markdown exports.
type HistoryService struct {
	store    storage.ChatStore
	exporter *export.Exporter
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store storage.ChatStore, exporter *export.Exporter) *HistoryService {
	return &HistoryService{store: store, exporter: exporter}
}

// Save stores the full history under a chat name, replacing any previous
// version.
func (s *HistoryService) Save(ctx context.Context, name string, history []storage.ChatMessage) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if err := s.store.Save(ctx, name, history); err != nil {
		return WrapError(err, "failed to save chat")
	}
	return nil
}

// Load returns the stored history for a chat name.
func (s *HistoryService) Load(ctx context.Context, name string) ([]storage.ChatMessage, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	history, err := s.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to load chat")
	}
	return history, nil
}

// List returns all saved chat names in alphabetical order.
func (s *HistoryService) List(ctx context.Context) ([]string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list chats")
	}
	return names, nil
}

// Delete removes a chat. Deleting an unknown chat is not an error.
func (s *HistoryService) Delete(ctx context.Context, name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return WrapError(err, "failed to delete chat")
	}
	return nil
}

// Export writes a chat's history to a timestamped markdown file and returns
// the file name.
func (s *HistoryService) Export(ctx context.Context, name string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	history, err := s.Load(ctx, name)
	if err != nil {
		return "", err
	}
	filename, err := s.exporter.Export(name, history)
	if err != nil {
		return "", WrapError(err, "failed to export chat")
	}
	logger.InfoContext(ctx, "chat exported", "chat", name, "file", filename)
	return filename, nil
}

// ListExports returns the markdown files written so far.
func (s *HistoryService) ListExports(ctx context.Context) ([]string, error) {
	files, err := s.exporter.List()
	if err != nil {
		return nil, WrapError(err, "failed to list exports")
	}
	return files, nil
}

// Import reads an exported markdown file back into a named chat. The parsed
// history replaces whatever is stored under that name.
func (s *HistoryService) Import(ctx context.Context, name, filename string) ([]storage.ChatMessage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	history, err := s.exporter.Load(filename)
	if err != nil {
		return nil, WrapError(err, "failed to read export")
	}
	if err := s.store.Save(ctx, name, history); err != nil {
		return nil, WrapError(err, "failed to save imported chat")
	}
	logger.InfoContext(ctx, "chat imported", "chat", name, "file", filename, "messages", len(history))
	return history, nil
}
