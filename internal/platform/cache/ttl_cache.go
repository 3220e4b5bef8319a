package cache

import (
	"sync"
	"time"
)

// Clock returns the current time; injectable so expiry is testable.
type Clock func() time.Time

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is an in-memory cache with per-entry TTLs and an injected clock.
// It is an explicit component, not package-level state, so callers can
// construct, invalidate, and test it deterministically.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]entry[V]
	now   Clock
}

// NewTTLCache constructs a cache using the given clock. A nil clock defaults
// to time.Now.
func NewTTLCache[K comparable, V any](now Clock) *TTLCache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[K, V]{items: make(map[K]entry[V]), now: now}
}

// Get returns a cached value if present and unexpired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.Invalidate(key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value. A non-positive TTL stores it without expiry.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Invalidate removes a cached entry.
func (c *TTLCache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
