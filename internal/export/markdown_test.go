package export

import (
	"reflect"
	"strings"
	"testing"

	"genai-assistant/internal/storage"
)

func TestFormat(t *testing.T) {
	history := []storage.ChatMessage{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there!"},
	}

	md := Format(history)

	if !strings.Contains(md, "### User\n") {
		t.Errorf("Format() missing user heading:\n%s", md)
	}
	if !strings.Contains(md, "### Assistant\n") {
		t.Errorf("Format() missing assistant heading:\n%s", md)
	}
	if !strings.Contains(md, "Hi there!") {
		t.Errorf("Format() missing content:\n%s", md)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		history []storage.ChatMessage
	}{
		{
			name: "simple conversation",
			history: []storage.ChatMessage{
				{Role: "system", Content: "You are a helpful AI assistant."},
				{Role: "user", Content: "What is Go?"},
				{Role: "assistant", Content: "Go is a programming language."},
			},
		},
		{
			name: "multiline content",
			history: []storage.ChatMessage{
				{Role: "user", Content: "line one\nline two\n\nparagraph two"},
				{Role: "assistant", Content: "a list:\n- item one\n- item two"},
			},
		},
		{
			name: "content with code fence",
			history: []storage.ChatMessage{
				{Role: "user", Content: "explain this"},
				{Role: "assistant", Content: "```go\nfunc main() {}\n```"},
			},
		},
		{
			name:    "empty history",
			history: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(Format(tt.history))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(parsed) != len(tt.history) {
				t.Fatalf("Parse() returned %d messages, want %d", len(parsed), len(tt.history))
			}
			for i := range parsed {
				if parsed[i].Role != tt.history[i].Role {
					t.Errorf("message %d role = %q, want %q", i, parsed[i].Role, tt.history[i].Role)
				}
				if parsed[i].Content != tt.history[i].Content {
					t.Errorf("message %d content = %q, want %q", i, parsed[i].Content, tt.history[i].Content)
				}
			}
		})
	}
}

func TestParse_FeedbackNotRoundTripped(t *testing.T) {
	history := []storage.ChatMessage{
		{Role: "assistant", Content: "answer", Feedback: "up"},
	}

	parsed, err := Parse(Format(history))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("Parse() returned %d messages, want 1", len(parsed))
	}
	if parsed[0].Feedback != "" {
		t.Errorf("Parse() feedback = %q, want empty", parsed[0].Feedback)
	}
	if parsed[0].Content != "answer" {
		t.Errorf("Parse() content = %q, want answer", parsed[0].Content)
	}
}

func TestParse_IgnoresOtherHeadings(t *testing.T) {
	md := "# Chat Export\n\nsome preamble\n\n### User\n\nhello\n"

	parsed, err := Parse(md)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []storage.ChatMessage{{Role: "user", Content: "hello"}}
	if !reflect.DeepEqual(parsed, want) {
		t.Errorf("Parse() = %+v, want %+v", parsed, want)
	}
}
