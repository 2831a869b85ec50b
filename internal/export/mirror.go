package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/storage"
)

// MirroredStore wraps a ChatStore and keeps a current markdown copy of each
// chat on disk for human inspection. The database remains the source of
// truth; a failed mirror write is logged and does not fail the save.
type MirroredStore struct {
	store storage.ChatStore
	dir   string
}

// NewMirroredStore creates a mirroring wrapper writing markdown files to dir.
func NewMirroredStore(store storage.ChatStore, dir string) (*MirroredStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}
	return &MirroredStore{store: store, dir: dir}, nil
}

// Save stores the history and refreshes the chat's markdown mirror file.
func (m *MirroredStore) Save(ctx context.Context, name string, history []storage.ChatMessage) error {
	if err := m.store.Save(ctx, name, history); err != nil {
		return err
	}
	path := filepath.Join(m.dir, sanitizeName(name)+".md")
	if err := os.WriteFile(path, []byte(Format(history)), 0o644); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write markdown mirror",
			"chat", name, "path", path, "error", err)
	}
	return nil
}

// Load returns the stored history.
func (m *MirroredStore) Load(ctx context.Context, name string) ([]storage.ChatMessage, error) {
	return m.store.Load(ctx, name)
}

// List returns all saved chat names.
func (m *MirroredStore) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Delete removes the chat and its markdown mirror.
func (m *MirroredStore) Delete(ctx context.Context, name string) error {
	if err := m.store.Delete(ctx, name); err != nil {
		return err
	}
	path := filepath.Join(m.dir, sanitizeName(name)+".md")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to remove markdown mirror",
			"chat", name, "path", path, "error", err)
	}
	return nil
}
