package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"genai-assistant/internal/storage"
)

// Exporter writes markdown transcripts into a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter creates an exporter rooted at dir, creating it if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	return &Exporter{dir: dir, now: time.Now}, nil
}

// Export writes the history as a timestamped markdown file and returns the
// file name within the exports directory.
func (e *Exporter) Export(name string, history []storage.ChatMessage) (string, error) {
	filename := fmt.Sprintf("%s_%s.md", sanitizeName(name), timestamp(e.now()))
	path := filepath.Join(e.dir, filename)

	if err := os.WriteFile(path, []byte(Format(history)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return filename, nil
}

// Load reads a previously exported transcript back into a message list.
func (e *Exporter) Load(filename string) ([]storage.ChatMessage, error) {
	path := filepath.Join(e.dir, filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return Parse(string(data))
}

// List returns the filenames of all markdown exports, sorted.
func (e *Exporter) List() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read exports directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// sanitizeName strips path separators and whitespace from a chat name so it
// is safe to use as a filename component.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", "..", "-")
	name = replacer.Replace(name)
	if name == "" {
		name = "chat"
	}
	return name
}
