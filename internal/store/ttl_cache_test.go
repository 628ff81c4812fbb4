package store

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTLCacheSetAndGet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[int](time.Minute, clock.Now)
	key := Key{Code: "LT", Date: "20250501"}

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set(key, 42)
	got, ok := c.Get(key)
	if !ok || got != 42 {
		t.Fatalf("expected hit with 42, got %d ok=%v", got, ok)
	}
}

func TestTTLCacheExpiresLazily(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[string](2*time.Minute, clock.Now)
	key := Key{Code: "HH", Date: "20250501"}
	c.Set(key, "v")

	clock.Advance(2*time.Minute - time.Nanosecond)
	if _, ok := c.Get(key); !ok {
		t.Fatalf("expected entry to be valid just before ttl")
	}

	clock.Advance(time.Nanosecond)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if c.Len() != 1 {
		t.Fatalf("expired entries are not deleted, expected len 1, got %d", c.Len())
	}
}

func TestTTLCacheOverwriteRefreshesTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	c := NewTTLCache[int](time.Minute, clock.Now)
	key := Key{Code: "LT", Date: "20250501"}

	c.Set(key, 1)
	clock.Advance(50 * time.Second)
	c.Set(key, 2)
	clock.Advance(50 * time.Second)

	got, ok := c.Get(key)
	if !ok || got != 2 {
		t.Fatalf("expected refreshed entry 2, got %d ok=%v", got, ok)
	}
}

func TestTTLCacheKeysAreIndependent(t *testing.T) {
	c := NewTTLCache[int](time.Minute, nil)
	c.Set(Key{Code: "LT", Date: "20250501"}, 1)

	if _, ok := c.Get(Key{Code: "LT", Date: "20250502"}); ok {
		t.Fatalf("expected different date to miss")
	}
	if _, ok := c.Get(Key{Code: "HH", Date: "20250501"}); ok {
		t.Fatalf("expected different code to miss")
	}
	if c.TTL() != time.Minute {
		t.Fatalf("unexpected ttl %s", c.TTL())
	}
}

func TestTTLCacheConcurrentAccess(t *testing.T) {
	c := NewTTLCache[int](time.Minute, nil)
	key := Key{Code: "LT", Date: "20250501"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Set(key, v)
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	if _, ok := c.Get(key); !ok {
		t.Fatalf("expected a value after concurrent writes")
	}
}
