package providers

import (
	"context"

	"kbo-news-service/internal/domain/news"
)

// Strategy names used in logs and metrics.
const (
	StrategyFast    = "fast"
	StrategyScroll  = "scroll"
	StrategyCount   = "count"
	StrategyResults = "results"
)

// NewsFetcher returns up to count news items for a team code on a date
// (YYYYMMDD). Fewer items than count is not an error.
type NewsFetcher interface {
	FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error)
}

// NewsCounter returns how many news cards the listing renders once fully
// loaded.
type NewsCounter interface {
	CountNews(ctx context.Context, code, date string) (int, error)
}

// NewsScroller is the interactive strategy: it can load the whole listing.
type NewsScroller interface {
	NewsFetcher
	NewsCounter
}

// RecentResultsFetcher returns every team's recent outcomes keyed by the
// team name shown in the standings table.
type RecentResultsFetcher interface {
	FetchRecentResults(ctx context.Context) (map[string][]string, error)
}
