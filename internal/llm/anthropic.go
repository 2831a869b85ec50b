package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const anthropicVersion = "2023-06-01"

// anthropicAdapter speaks the Anthropic messages API. System messages move
// to the top-level system field and max_tokens is mandatory.
type anthropicAdapter struct {
	name        string
	apiKey      string
	messagesURL string
	client      *http.Client
}

func newAnthropicAdapter(name, apiKey, baseURL string, client *http.Client) *anthropicAdapter {
	return &anthropicAdapter{
		name:        name,
		apiKey:      apiKey,
		messagesURL: baseURL + "/messages",
		client:      client,
	}
}

func (a *anthropicAdapter) Name() string {
	return a.name
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float32  `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (a *anthropicAdapter) Complete(ctx context.Context, model string, messages []Message, opts ChatOptions) (*CompletionResult, error) {
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	payload := anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}

	// System messages are hoisted out of the conversation.
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if payload.System != "" {
				payload.System += "\n\n"
			}
			payload.System += msg.Content
			continue
		}
		payload.Messages = append(payload.Messages, msg)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.messagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
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

	var msgResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("decode response: %w", err)}
	}

	var content string
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("no text content returned")}
	}

	resultModel := msgResp.Model
	if resultModel == "" {
		resultModel = model
	}

	return &CompletionResult{
		Content: content,
		Model:   resultModel,
		Usage: Usage{
			PromptTokens:     msgResp.Usage.InputTokens,
			CompletionTokens: msgResp.Usage.OutputTokens,
			TotalTokens:      msgResp.Usage.InputTokens + msgResp.Usage.OutputTokens,
		},
	}, nil
}
