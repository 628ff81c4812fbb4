package metrics

import (
	"sync"
	"time"
)

type strategyStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits   int
	misses int
}

// Recorder keeps in-memory counters for strategy calls, cache lookups and
// warm cycles, and forwards them to OTel instruments when configured.
type Recorder struct {
	mu         sync.Mutex
	strategies map[string]*strategyStats
	caches     map[string]*cacheStats
	warmCycles int
	warmErrors int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		strategies: make(map[string]*strategyStats),
		caches:     make(map[string]*cacheStats),
		otel:       otel,
	}
}

// RecordFetch counts one upstream call made by a fetch strategy.
func (r *Recorder) RecordFetch(strategy string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.strategyLocked(strategy)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(strategy, duration, err)
	}
}

// RecordRateLimit tracks an upstream 429 and its Retry-After, if any.
func (r *Recorder) RecordRateLimit(strategy string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.strategyLocked(strategy)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(strategy, retryAfter)
	}
}

// RecordCacheLookup counts a hit or miss against the named cache.
func (r *Recorder) RecordCacheLookup(cache string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.caches[cache]
	if !ok {
		stats = &cacheStats{}
		r.caches[cache] = stats
	}
	if hit {
		stats.hits++
	} else {
		stats.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(cache, hit)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordWarmCycle tracks one cache warmer pass.
func (r *Recorder) RecordWarmCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.warmCycles++
	if err != nil {
		r.warmErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordWarmCycle(duration, err)
	}
}

// Snapshot is a copy of the stats recorded for one strategy.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(strategy string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.strategies[strategy]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// FetchCalls returns the total attempts recorded for a strategy.
func (r *Recorder) FetchCalls(strategy string) int {
	return r.Snapshot(strategy).Calls
}

// FetchErrors returns the failed attempts recorded for a strategy.
func (r *Recorder) FetchErrors(strategy string) int {
	return r.Snapshot(strategy).Errors
}

func (r *Recorder) RateLimitHits(strategy string) int {
	return r.Snapshot(strategy).RateLimitHits
}

func (r *Recorder) LastRetryAfter(strategy string) time.Duration {
	return r.Snapshot(strategy).LastRetryAfter
}

// CacheHits returns hits and misses recorded for the named cache.
func (r *Recorder) CacheHits(cache string) (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.caches[cache]; ok {
		return stats.hits, stats.misses
	}
	return 0, 0
}

// WarmCycles returns the number of warm cycles and how many of them failed.
func (r *Recorder) WarmCycles() (cycles, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warmCycles, r.warmErrors
}

func (r *Recorder) strategyLocked(strategy string) *strategyStats {
	stats, ok := r.strategies[strategy]
	if !ok {
		stats = &strategyStats{}
		r.strategies[strategy] = stats
	}
	return stats
}
