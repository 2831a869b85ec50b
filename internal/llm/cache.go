package llm

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// ResponseCache is an optional time-boxed cache for completion results,
// layered by callers on top of the dispatch facade. Entries are keyed on
// model identifier, temperature and the full prompt, and expire lazily on
// read. One mutex guards the map; there is no background sweeper.
type ResponseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	result    CompletionResult
	expiresAt time.Time
}

// NewResponseCache creates a cache whose entries live for ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// CacheKey derives the cache key for a completion request.
func CacheKey(model string, temperature float32, messages []Message) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%.4f", model, temperature)
	for _, msg := range messages {
		fmt.Fprintf(h, "|%s:%s", msg.Role, msg.Content)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the cached result for key if it exists and has not expired.
func (c *ResponseCache) Get(key string) (*CompletionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	result := entry.result
	return &result, true
}

// Set stores a result under key with the configured TTL.
func (c *ResponseCache) Set(key string, result *CompletionResult) {
	if result == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		result:    *result,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Clear drops all expired entries.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
