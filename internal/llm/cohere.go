package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// cohereAdapter speaks the Cohere v2 chat API. The request shape matches the
// OpenAI style closely but the response nests content blocks under message.
type cohereAdapter struct {
	name    string
	apiKey  string
	chatURL string
	client  *http.Client
}

func newCohereAdapter(name, apiKey, baseURL string, client *http.Client) *cohereAdapter {
	return &cohereAdapter{
		name:    name,
		apiKey:  apiKey,
		chatURL: baseURL + "/chat",
		client:  client,
	}
}

func (a *cohereAdapter) Name() string {
	return a.name
}

type cohereRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type cohereResponse struct {
	ID      string `json:"id"`
	Message struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
	Usage struct {
		Tokens struct {
			InputTokens  float64 `json:"input_tokens"`
			OutputTokens float64 `json:"output_tokens"`
		} `json:"tokens"`
	} `json:"usage"`
}

func (a *cohereAdapter) Complete(ctx context.Context, model string, messages []Message, opts ChatOptions) (*CompletionResult, error) {
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	payload := cohereRequest{
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

	var chatResp cohereResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("decode response: %w", err)}
	}

	var content string
	for _, block := range chatResp.Message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, &ProviderError{Provider: a.name, Err: fmt.Errorf("no text content returned")}
	}

	input := int(chatResp.Usage.Tokens.InputTokens)
	output := int(chatResp.Usage.Tokens.OutputTokens)

	return &CompletionResult{
		Content: content,
		Model:   model,
		Usage: Usage{
			PromptTokens:     input,
			CompletionTokens: output,
			TotalTokens:      input + output,
		},
	}, nil
}
