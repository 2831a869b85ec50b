package llm

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Provider is implemented by each backend adapter. An adapter sends one
// completion request to its provider and normalizes the response.
type Provider interface {
	// Name returns the provider name, e.g. "groq".
	Name() string
	// Complete sends role-tagged messages to the given model and returns
	// the normalized result.
	Complete(ctx context.Context, model string, messages []Message, opts ChatOptions) (*CompletionResult, error)
}

// Client is the dispatch facade. It resolves a compound "provider:model"
// identifier to a backend adapter and delegates the completion call.
//
// Adapters are constructed lazily on first use and cached for the lifetime
// of the client. The facade does not retry and does not cache responses;
// both are caller concerns (see WithRetry and ResponseCache).
type Client struct {
	mu         sync.Mutex
	configs    map[string]ProviderConfig
	adapters   map[string]Provider
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a dispatch facade from per-provider configuration.
// Configurations for unsupported provider names are rejected.
func NewClient(configs map[string]ProviderConfig) (*Client, error) {
	for name := range configs {
		if !IsSupported(name) {
			return nil, &ConfigurationError{Model: name, Reason: "unknown provider"}
		}
	}

	copied := make(map[string]ProviderConfig, len(configs))
	for name, cfg := range configs {
		copied[name] = cfg
	}

	return &Client{
		configs:    copied,
		adapters:   make(map[string]Provider),
		httpClient: newHTTPClient(),
		logger:     slog.Default(),
	}, nil
}

// Configure merges the given provider configurations into the client and
// invalidates all cached adapters so they are rebuilt on next use.
func (c *Client) Configure(configs map[string]ProviderConfig) error {
	for name := range configs {
		if !IsSupported(name) {
			return &ConfigurationError{Model: name, Reason: "unknown provider"}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for name, cfg := range configs {
		c.configs[name] = cfg
	}
	c.adapters = make(map[string]Provider)
	return nil
}

// Providers returns the names of all providers the client holds credentials for.
func (c *Client) Providers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.configs))
	for name := range c.configs {
		names = append(names, name)
	}
	return names
}

// SplitModelID splits a compound "provider:model" identifier.
func SplitModelID(model string) (provider, name string, err error) {
	if strings.Count(model, ":") != 1 {
		return "", "", &ConfigurationError{
			Model:  model,
			Reason: "identifier must be of the form provider:model",
		}
	}
	parts := strings.SplitN(model, ":", 2)
	if parts[0] == "" || parts[1] == "" {
		return "", "", &ConfigurationError{
			Model:  model,
			Reason: "identifier must be of the form provider:model",
		}
	}
	return parts[0], parts[1], nil
}

// Complete resolves the compound model identifier, dispatches the request to
// the matching adapter, and returns the normalized result. Identifier and
// provider validation happen before any network call.
func (c *Client) Complete(ctx context.Context, model string, messages []Message, opts ChatOptions) (*CompletionResult, error) {
	providerName, modelName, err := SplitModelID(model)
	if err != nil {
		return nil, err
	}

	adapter, err := c.adapterFor(providerName)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "dispatching completion", "provider", providerName, "model", modelName)
	return adapter.Complete(ctx, modelName, messages, opts)
}

// adapterFor returns the cached adapter for a provider, constructing it on
// first use from the stored configuration.
func (c *Client) adapterFor(name string) (Provider, error) {
	info, ok := providers[name]
	if !ok {
		return nil, &ConfigurationError{Model: name, Reason: "unknown provider"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if adapter, ok := c.adapters[name]; ok {
		return adapter, nil
	}

	cfg, ok := c.configs[name]
	if !ok || cfg.APIKey == "" {
		return nil, &ConfigurationError{Model: name, Reason: "no API key configured"}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = info.baseURL
	}

	var adapter Provider
	switch info.style {
	case styleAnthropic:
		adapter = newAnthropicAdapter(name, cfg.APIKey, baseURL, c.httpClient)
	case styleCohere:
		adapter = newCohereAdapter(name, cfg.APIKey, baseURL, c.httpClient)
	default:
		adapter = newOpenAIAdapter(name, cfg.APIKey, baseURL, c.httpClient)
	}

	c.adapters[name] = adapter
	return adapter, nil
}

// newHTTPClient builds the shared transport used by all adapters.
// There is no per-request application timeout; the transport bounds the call.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   120 * time.Second,
		Transport: transport,
	}
}
