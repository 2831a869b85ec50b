// Package content stores uploaded document text on disk so conversations
// can reference it later without resending the full file.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a content ID is unknown.
var ErrNotFound = errors.New("content not found")

const indexFile = "content_index.json"

// Item is one stored document with its text reloaded from disk.
type Item struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Content   string `json:"-"`
}

// indexEntry is what persists in the JSON index.
type indexEntry struct {
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Path      string `json:"path"`
}

// Store keeps uploaded text under a cache directory with a JSON index.
// One mutex guards the index; file contents live in per-item files.
type Store struct {
	mu    sync.Mutex
	dir   string
	index map[string]indexEntry
}

// NewStore opens (or creates) a content store rooted at dir and loads the
// existing index if present.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}

	s := &Store{
		dir:   dir,
		index: make(map[string]indexEntry),
	}

	data, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read content index: %w", err)
	}
	if err := json.Unmarshal(data, &s.index); err != nil {
		return nil, fmt.Errorf("failed to decode content index: %w", err)
	}

	return s, nil
}

// Put stores the text under a fresh ID and returns it.
func (s *Store) Put(fileName, mediaType, text string) (string, error) {
	id := uuid.New().String()
	path := filepath.Join(s.dir, id+".txt")

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index[id] = indexEntry{
		FileName:  fileName,
		MediaType: mediaType,
		Path:      path,
	}
	if err := s.saveIndexLocked(); err != nil {
		return "", err
	}

	return id, nil
}

// Get returns a stored item by ID, including its text.
func (s *Store) Get(id string) (*Item, error) {
	s.mu.Lock()
	entry, ok := s.index[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content %s: %w", id, err)
	}

	return &Item{
		ID:        id,
		FileName:  entry.FileName,
		MediaType: entry.MediaType,
		Content:   string(data),
	}, nil
}

// List returns metadata for all stored items (content not loaded).
func (s *Store) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.index))
	for id, entry := range s.index {
		items = append(items, Item{
			ID:        id,
			FileName:  entry.FileName,
			MediaType: entry.MediaType,
		})
	}
	return items
}

func (s *Store) saveIndexLocked() error {
	data, err := json.Marshal(s.index)
	if err != nil {
		return fmt.Errorf("failed to encode content index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, indexFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write content index: %w", err)
	}
	return nil
}
