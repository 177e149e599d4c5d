// Package infra provides shared infrastructure components: a TTL cache
// for rendered output and a token-bucket rate limiter for the API.
package infra

import (
	"context"
	"sync"
	"time"
)

// --- Render cache ---

// cacheEntry holds a cached document with expiration.
type cacheEntry struct {
	body      string
	expiresAt time.Time
}

// RenderCache is a thread-safe TTL cache for rendered documents
// (SVG charts, dashboard HTML). Rendering is cheap but dashboards
// re-request the same charts on every poll, so a short TTL pays off.
type RenderCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewRenderCache creates a cache with the given default TTL.
func NewRenderCache(ttl time.Duration) *RenderCache {
	return &RenderCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get retrieves a cached document. Returns "", false if missing or expired.
func (c *RenderCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.body, true
}

// Set stores a document with the default TTL.
func (c *RenderCache) Set(key, body string) {
	c.SetWithTTL(key, body, c.ttl)
}

// SetWithTTL stores a document with a custom TTL.
func (c *RenderCache) SetWithTTL(key, body string, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		body:      body,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Invalidate removes a single key.
func (c *RenderCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Flush removes all entries. Called when any dataset changes, since
// the dashboard page aggregates every dataset.
func (c *RenderCache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Cleanup removes expired entries. Can be called periodically.
func (c *RenderCache) Cleanup() {
	c.mu.Lock()
	now := time.Now()
	for k, v := range c.entries {
		if now.After(v.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of entries, including expired ones not yet
// cleaned up.
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// --- Rate limiter ---

// RateLimiter provides simple token-bucket rate limiting.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter that allows maxTokens requests
// per refillRate duration.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available. Non-blocking; used by
// HTTP middleware to reject rather than queue excess requests.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.Allow() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			// Check again after a short sleep.
		}
	}
}

// refill adds tokens based on elapsed time. Must be called with mu held.
func (rl *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	if elapsed >= rl.refillRate {
		periods := int(elapsed / rl.refillRate)
		rl.tokens += periods
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = rl.lastRefill.Add(time.Duration(periods) * rl.refillRate)
	}
}
