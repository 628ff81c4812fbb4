package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/metrics"
)

const (
	defaultRetryAttempts = 2
	defaultBackoff       = 200 * time.Millisecond
	// maxRetryAfter bounds how long a rate-limited attempt may wait before
	// the next one; longer requests give up immediately.
	maxRetryAfter = 10 * time.Second
)

// retryingFetcher wraps a NewsFetcher with retry/backoff behavior.
type retryingFetcher struct {
	inner       NewsFetcher
	logger      *slog.Logger
	metrics     *metrics.Recorder
	strategy    string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingFetcher retries inner up to maxAttempts times with jittered
// exponential backoff starting at initial. Non-positive values use defaults.
// Every attempt is recorded under strategy.
func NewRetryingFetcher(inner NewsFetcher, logger *slog.Logger, recorder *metrics.Recorder, strategy string, maxAttempts int, initial time.Duration) NewsFetcher {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingFetcher{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		strategy:    strategy,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingFetcher) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var items []news.Item
	attempt := 0
	policy := &retryAfterBackOff{BackOff: r.newBackOff()}

	op := func() error {
		attempt++
		start := time.Now()
		got, err := r.inner.FetchNews(ctx, code, date, count)
		r.metrics.RecordFetch(r.strategy, time.Since(start), err)
		if err == nil {
			items = got
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.strategy, rl.RetryAfter)
			if rl.RetryAfter > maxRetryAfter {
				return backoff.Permanent(err)
			}
			policy.next = rl.RetryAfter
			return err
		}
		if st, ok := AsStatusError(err); ok && !st.Temporary() {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		logWithStrategy(ctx, r.logger, slog.LevelWarn, r.strategy, "news fetch retry",
			logging.FieldAttempt, attempt,
			"max_attempts", r.maxAttempts,
			"wait_ms", wait.Milliseconds(),
			logging.FieldError, err,
		)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		logWithStrategy(ctx, r.logger, slog.LevelWarn, r.strategy, "news fetch failed",
			"attempts", attempt,
			logging.FieldError, err,
		)
		return nil, err
	}
	return items, nil
}

// retryAfterBackOff stretches the next delay to an upstream Retry-After.
type retryAfterBackOff struct {
	backoff.BackOff
	next time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	d := b.BackOff.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	if b.next > d {
		d = b.next
	}
	b.next = 0
	return d
}
