package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"genai-assistant/internal/contextutil"
	"genai-assistant/internal/llm"
	"genai-assistant/internal/textchunk"
	"genai-assistant/internal/worker"
)

// ContentWriter stores document text and returns an ID for later reference.
type ContentWriter interface {
	Put(fileName, mediaType, text string) (string, error)
}

// SummarizeRequest represents a file summarization request.
type SummarizeRequest struct {
	FileName string
	Content  string
	Model    string
}

// SummarizeResponse carries the generated summary and the ID under which
// the original text was stored.
type SummarizeResponse struct {
	Summary   string
	ContentID string
}

// summaryPrompts selects the instruction by file extension so code files
// get a structural summary and prose files get a topical one.
var summaryPrompts = map[string]string{
	".py":   "Summarize this Python source file. Describe its purpose, the main classes and functions, and any notable dependencies.",
	".go":   "Summarize this Go source file. Describe its purpose, the main types and functions, and any notable dependencies.",
	".js":   "Summarize this JavaScript source file. Describe its purpose, the main functions, and any notable dependencies.",
	".md":   "Summarize this Markdown document. Capture the main topics and key points section by section.",
	".json": "Summarize this JSON document. Describe its structure and what the data represents.",
	".csv":  "Summarize this CSV data. Describe the columns and the kind of records it contains.",
}

const defaultSummaryPrompt = "Summarize the following text. Capture the main topics and key points concisely."

// SummarizeService produces file summaries, chunking large inputs and
// summarizing the chunks concurrently.
type SummarizeService struct {
	completer Completer
	contents  ContentWriter
	pool      *worker.Pool

	maxTokens        int
	summaryMaxTokens int
}

// NewSummarizeService creates a new SummarizeService.
func NewSummarizeService(completer Completer, contents ContentWriter, pool *worker.Pool, maxTokens, summaryMaxTokens int) *SummarizeService {
	return &SummarizeService{
		completer:        completer,
		contents:         contents,
		pool:             pool,
		maxTokens:        maxTokens,
		summaryMaxTokens: summaryMaxTokens,
	}
}

// Summarize splits the file content into sentence chunks, summarizes each
// chunk on the worker pool, and joins the partial summaries. The original
// text is stored so later chat requests can attach it as context.
func (s *SummarizeService) Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Content) == "" {
		return SummarizeResponse{}, &ValidationError{Field: "content", Message: "cannot be empty"}
	}
	if req.Model == "" {
		return SummarizeResponse{}, &ValidationError{Field: "model", Message: "cannot be empty"}
	}
	if _, _, err := llm.SplitModelID(req.Model); err != nil {
		return SummarizeResponse{}, &ValidationError{Field: "model", Message: err.Error()}
	}

	instruction := promptFor(req.FileName)
	chunks := textchunk.Chunk(req.Content, s.maxTokens)
	logger.InfoContext(ctx, "summarizing file", "file", req.FileName, "chunks", len(chunks))

	tasks := make([]worker.Task, len(chunks))
	for i, chunk := range chunks {
		messages := []llm.Message{
			{Role: llm.RoleSystem, Content: instruction},
			{Role: llm.RoleUser, Content: chunk},
		}
		tasks[i] = func(ctx context.Context) (string, error) {
			result, err := llm.WithRetry(ctx, func() (*llm.CompletionResult, error) {
				return s.completer.Complete(ctx, req.Model, messages, llm.ChatOptions{MaxTokens: s.summaryMaxTokens})
			})
			if err != nil {
				return "", err
			}
			return result.Content, nil
		}
	}

	parts := s.pool.Map(ctx, tasks)
	if len(parts) == 0 {
		return SummarizeResponse{}, fmt.Errorf("%w: all %d chunks failed to summarize", ErrExternalService, len(chunks))
	}
	summary := strings.Join(parts, "\n\n")

	id, err := s.contents.Put(req.FileName, mediaTypeFor(req.FileName), req.Content)
	if err != nil {
		logger.ErrorContext(ctx, "failed to store file content", "file", req.FileName, "error", err)
		return SummarizeResponse{}, WrapError(err, "failed to store file content")
	}

	logger.InfoContext(ctx, "file summarized", "file", req.FileName, "content_id", id, "summary_length", len(summary))
	return SummarizeResponse{Summary: summary, ContentID: id}, nil
}

func promptFor(fileName string) string {
	if prompt, ok := summaryPrompts[strings.ToLower(filepath.Ext(fileName))]; ok {
		return prompt
	}
	return defaultSummaryPrompt
}

func mediaTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".md":
		return "text/markdown"
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	default:
		return "text/plain"
	}
}
