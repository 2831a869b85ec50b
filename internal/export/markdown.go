// Package export writes chat transcripts as markdown files and parses them
// back into message lists. The format is one "### <Role>" heading per message
// followed by the raw content, so exports stay readable and round-trip.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"genai-assistant/internal/storage"
)

// roleHeadingLevel is the heading level used for per-message role markers.
const roleHeadingLevel = 3

// Format renders a chat history as a markdown transcript.
func Format(history []storage.ChatMessage) string {
	var b strings.Builder
	b.WriteString("# Chat Export\n\n")
	for _, msg := range history {
		b.WriteString("### ")
		b.WriteString(titleRole(msg.Role))
		b.WriteString("\n\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Parse reads a markdown transcript back into a message list. Only the role
// and content survive; feedback annotations are not part of the format.
func Parse(markdown string) ([]storage.ChatMessage, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	// Collect each role heading with the byte range of its heading text.
	type marker struct {
		role  string
		start int // byte offset of the heading text
		stop  int // byte offset just past the heading text
	}
	var markers []marker

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != roleHeadingLevel {
			return ast.WalkContinue, nil
		}
		lines := heading.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		segment := lines.At(0)
		role := strings.TrimSpace(string(segment.Value(source)))
		if role == "" {
			return ast.WalkContinue, nil
		}
		markers = append(markers, marker{role: role, start: segment.Start, stop: segment.Stop})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk transcript: %w", err)
	}

	var history []storage.ChatMessage
	for i, m := range markers {
		begin := nextLine(source, m.stop)
		end := len(source)
		if i+1 < len(markers) {
			// Content runs up to the start of the next heading's line.
			end = lineStart(source, markers[i+1].start)
		}
		if begin > end {
			begin = end
		}
		content := strings.TrimSpace(string(source[begin:end]))
		history = append(history, storage.ChatMessage{
			Role:    strings.ToLower(m.role),
			Content: content,
		})
	}

	return history, nil
}

// lineStart returns the offset of the start of the line containing pos.
func lineStart(source []byte, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	for pos > 0 && source[pos-1] != '\n' {
		pos--
	}
	return pos
}

// nextLine returns the offset just past the end of the line containing pos.
func nextLine(source []byte, pos int) int {
	for pos < len(source) && source[pos] != '\n' {
		pos++
	}
	if pos < len(source) {
		pos++
	}
	return pos
}

func titleRole(role string) string {
	if role == "" {
		return "Unknown"
	}
	return strings.ToUpper(role[:1]) + strings.ToLower(role[1:])
}

// timestamp formats the current time for export filenames.
func timestamp(now time.Time) string {
	return now.Format("20060102_150405")
}
