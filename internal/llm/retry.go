package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const retryMaxAttempts = 3

// WithRetry runs fn up to three times, retrying only when a provider
// rejected the request with HTTP 429. The sleep before attempt n is 2^n
// seconds. Any other failure is returned immediately; retry policy lives
// with the caller, not inside the dispatch facade.
func WithRetry(ctx context.Context, fn func() (*CompletionResult, error)) (*CompletionResult, error) {
	var lastErr error
	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var provErr *ProviderError
		if !errors.As(err, &provErr) || !provErr.RateLimited() || attempt == retryMaxAttempts {
			return nil, err
		}

		delay := time.Duration(1<<uint(attempt)) * time.Second
		slog.WarnContext(ctx, "rate limited, backing off",
			"provider", provErr.Provider, "attempt", attempt, "delay", delay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}
