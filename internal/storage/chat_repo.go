package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_store.go -package=mocks genai-assistant/internal/storage ChatStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ChatStore defines the interface for chat history persistence.
// Chat names are unique; saving an existing name overwrites. A Save must be
// visible to the next Load within the same process.
type ChatStore interface {
	// Save stores the full history under name, overwriting any previous value.
	Save(ctx context.Context, name string, history []ChatMessage) error
	// Load returns the history stored under name, or ErrNotFound.
	Load(ctx context.Context, name string) ([]ChatMessage, error)
	// List returns all stored chat names in lexical order.
	List(ctx context.Context) ([]string, error)
	// Delete removes a stored chat. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}

// ChatRepo provides chat history operations over SQLite.
// It implements the ChatStore interface.
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new ChatRepo.
func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Save stores the full history under name, overwriting any previous value.
func (r *ChatRepo) Save(ctx context.Context, name string, history []ChatMessage) error {
	if name == "" {
		return fmt.Errorf("chat name must not be empty")
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO chat_history (chat_name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (chat_name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save chat %q: %w", name, err)
	}

	return nil
}

// Load returns the history stored under name.
// Returns ErrNotFound if the chat does not exist.
func (r *ChatRepo) Load(ctx context.Context, name string) ([]ChatMessage, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		"SELECT data FROM chat_history WHERE chat_name = ?", name,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chat %q: %w", name, err)
	}

	var history []ChatMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, fmt.Errorf("failed to decode history for %q: %w", name, err)
	}

	return history, nil
}

// List returns all stored chat names in lexical order.
func (r *ChatRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT chat_name FROM chat_history ORDER BY chat_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan chat name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chats: %w", err)
	}

	return names, nil
}

// Delete removes a stored chat. Deleting a missing name is not an error.
func (r *ChatRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM chat_history WHERE chat_name = ?", name); err != nil {
		return fmt.Errorf("failed to delete chat %q: %w", name, err)
	}
	return nil
}
