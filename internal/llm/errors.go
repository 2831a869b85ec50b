package llm

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates a bad model identifier or an unknown or
// unconfigured provider. It is always returned before any network I/O.
type ConfigurationError struct {
	Model  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %q: %s (supported providers: %s)",
		e.Model, e.Reason, strings.Join(SupportedProviders(), ", "))
}

// ProviderError wraps a failure from a provider backend, carrying the
// provider name and the HTTP status when one was received.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the provider rejected the request with HTTP 429.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}
