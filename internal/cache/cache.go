// Package cache provides the in-memory TTL cache that short-circuits
// repeated handler executions. Keys are normalized query text; every entry
// carries its own lifetime so hot quotes can expire in minutes while slow
// moving data lives for hours.
package cache

import (
	"sync"
	"time"
)

// Cache is a concurrency-safe map with per-entry expiry. Lookups take the
// read lock only; expired entries are dropped lazily by Set overwrites and
// Purge rather than on Get.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// expired reports whether the entry's lifetime has fully elapsed. An entry
// read at exactly its expiry instant is already a miss.
func (e entry[V]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// New creates an empty cache on wall-clock time.
func New[V any]() *Cache[V] {
	return NewWithClock[V](time.Now)
}

// NewWithClock creates a cache that reads time from now. Tests inject a
// manual clock to step through expiry without sleeping.
func NewWithClock[V any](now func() time.Time) *Cache[V] {
	return &Cache[V]{entries: make(map[string]entry[V]), now: now}
}

// Get returns the live value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the given lifetime, replacing any previous
// entry. A non-positive ttl stores nothing; that is how callers disable
// caching for a single write.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	e := entry[V]{value: value, expiresAt: c.now().Add(ttl)}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every expired entry and reports how many were removed.
func (c *Cache[V]) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len counts live entries.
func (c *Cache[V]) Len() int {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}
