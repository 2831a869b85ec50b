package llm

// Role values used in chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single role-tagged message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage holds token accounting reported by a provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is the normalized result of a chat completion,
// regardless of which provider produced it.
type CompletionResult struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// ChatOptions holds per-request tuning parameters.
type ChatOptions struct {
	// Temperature controls randomness of the output. Default is 0.7 if zero.
	Temperature float32

	// MaxTokens caps the generated output. If 0 the provider default
	// (or the configured application default) is used.
	MaxTokens int
}

// ProviderConfig holds the credential and endpoint for one provider.
type ProviderConfig struct {
	APIKey  string
	BaseURL string // optional override; adapters fall back to the public endpoint
}
