package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// openaiAdapter serves every OpenAI-compatible chat completions API.
// openai, groq, xai and deepseek all share this wire format.
type openaiAdapter struct {
	name    string
	apiKey  string
	chatURL string
	client  *http.Client
}

func newOpenAIAdapter(name, apiKey, baseURL string, client *http.Client) *openaiAdapter {
	return &openaiAdapter{
		name:    name,
		apiKey:  apiKey,
		chatURL: baseURL + "/chat/completions",
		client:  client,
	}
}

func (a *openaiAdapter) Name() string {
	return a.name
}

type openaiChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type openaiChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *Usage `json:"usage,omitempty"`
}

// Complete sends a chat completion request and normalizes the response.
func (a *openaiAdapter) Complete(ctx context.Context, model string, messages []Message, opts ChatOptions) (*CompletionResult, error) {
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	payload := openaiChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   opts.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.chatURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: a.name, StatusCode: resp.StatusCode, Err: readAPIError(resp.Body)}
	}

	var chatResp openaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(chatResp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("no choices returned")}
	}

	result := &CompletionResult{
		Content: chatResp.Choices[0].Message.Content,
		Model:   chatResp.Model,
	}
	if result.Model == "" {
		result.Model = model
	}
	if chatResp.Usage != nil {
		result.Usage = *chatResp.Usage
	}
	return result, nil
}

// readAPIError extracts a readable message from an error response body.
// Provider error envelopes differ; the common {"error":{"message":...}} shape
// is tried first, then the raw body is used.
func readAPIError(r io.Reader) error {
	raw, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return fmt.Errorf("read error body: %w", err)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return fmt.Errorf("%s", envelope.Error.Message)
		}
		if envelope.Message != "" {
			return fmt.Errorf("%s", envelope.Message)
		}
	}
	return fmt.Errorf("%s", strings.TrimSpace(string(raw)))
}
