package llm

import "sort"

// ModelInfo describes one hosted model in the catalog.
type ModelInfo struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	ContextLength int    `json:"context_length"`
}

// apiStyle selects which adapter family serves a provider.
type apiStyle int

const (
	styleOpenAI apiStyle = iota
	styleAnthropic
	styleCohere
)

// providerInfo is the static description of a supported provider family.
type providerInfo struct {
	style   apiStyle
	baseURL string
}

// providers is the supported provider set. Credentials are supplied per
// deployment; this table only fixes the API style and default endpoint.
var providers = map[string]providerInfo{
	"openai":    {style: styleOpenAI, baseURL: "https://api.openai.com/v1"},
	"groq":      {style: styleOpenAI, baseURL: "https://api.groq.com/openai/v1"},
	"xai":       {style: styleOpenAI, baseURL: "https://api.x.ai/v1"},
	"deepseek":  {style: styleOpenAI, baseURL: "https://api.deepseek.com/v1"},
	"anthropic": {style: styleAnthropic, baseURL: "https://api.anthropic.com/v1"},
	"cohere":    {style: styleCohere, baseURL: "https://api.cohere.com/v2"},
}

// catalog lists known models per provider with their context windows.
// The catalog is advisory: dispatch validates the provider, not the model,
// so newly released models work without a code change.
var catalog = map[string][]ModelInfo{
	"groq": {
		{ID: "deepseek-r1-distill-llama-70b", Provider: "groq", ContextLength: 131072},
		{ID: "llama-3.3-70b-versatile", Provider: "groq", ContextLength: 131072},
		{ID: "llama-3.1-8b-instant", Provider: "groq", ContextLength: 131072},
	},
	"openai": {
		{ID: "gpt-4o", Provider: "openai", ContextLength: 128000},
		{ID: "gpt-4o-mini", Provider: "openai", ContextLength: 128000},
		{ID: "o1-mini-2024-09-12", Provider: "openai", ContextLength: 128000},
	},
	"anthropic": {
		{ID: "claude-3-5-sonnet-latest", Provider: "anthropic", ContextLength: 200000},
		{ID: "claude-3-5-haiku-latest", Provider: "anthropic", ContextLength: 200000},
	},
	"cohere": {
		{ID: "command-r7b-12-2024", Provider: "cohere", ContextLength: 128000},
	},
	"xai": {
		{ID: "grok-2-vision-1212", Provider: "xai", ContextLength: 32768},
	},
	"deepseek": {
		{ID: "deepseek-r1-dist-70b", Provider: "deepseek", ContextLength: 65536},
		{ID: "deepseek-chat-67b", Provider: "deepseek", ContextLength: 32768},
		{ID: "deepseek-coder-33b", Provider: "deepseek", ContextLength: 16384},
	},
}

// SupportedProviders returns the sorted names of all supported providers.
func SupportedProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether the provider name is in the supported set.
func IsSupported(provider string) bool {
	_, ok := providers[provider]
	return ok
}

// ListModels returns catalog entries for one provider, or nil if the
// provider is unknown.
func ListModels(provider string) []ModelInfo {
	models := catalog[provider]
	out := make([]ModelInfo, len(models))
	copy(out, models)
	return out
}

// Catalog returns all catalog entries grouped by provider name.
func Catalog() map[string][]ModelInfo {
	out := make(map[string][]ModelInfo, len(catalog))
	for provider := range catalog {
		out[provider] = ListModels(provider)
	}
	return out
}
