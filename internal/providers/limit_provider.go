package providers

import (
	"context"
	"log/slog"
	"time"

	"kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/logging"
)

const defaultMinInterval = 250 * time.Millisecond

// rateLimitedFetcher wraps a NewsFetcher and enforces a minimum interval between calls.
type rateLimitedFetcher struct {
	next     NewsFetcher
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedFetcher returns a NewsFetcher that spaces upstream calls at
// least interval apart. Calls block until the next tick or until ctx ends.
func NewRateLimitedFetcher(next NewsFetcher, interval time.Duration, logger *slog.Logger) NewsFetcher {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedFetcher{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedFetcher) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	if p.next == nil {
		logging.Warn(logging.FromContext(ctx, p.logger), "fetcher unavailable", logging.FieldProvider, "rate-limited")
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logging.Warn(logging.FromContext(ctx, p.logger), "rate-limited fetch canceled", logging.FieldTeamCode, code)
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	return p.next.FetchNews(ctx, code, date, count)
}

// Close stops the internal ticker.
func (p *rateLimitedFetcher) Close() {
	p.ticker.Stop()
}
