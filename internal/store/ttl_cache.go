package store

import (
	"sync"
	"time"
)

// Key identifies a cached listing: team code plus listing date (YYYYMMDD).
type Key struct {
	Code string
	Date string
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// TTLCache is a concurrency-safe map whose entries expire ttl after they were
// stored. Expiry is checked on read; entries are only ever overwritten.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]entry[V]
}

// NewTTLCache constructs an empty cache. A nil now uses time.Now.
func NewTTLCache[V any](ttl time.Duration, now func() time.Time) *TTLCache[V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[Key]entry[V]),
	}
}

// Get returns the value for key if it was stored less than ttl ago.
func (c *TTLCache[V]) Get(key Key) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *TTLCache[V]) Set(key Key, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, fetchedAt: c.now()}
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *TTLCache[V]) TTL() time.Duration {
	return c.ttl
}
