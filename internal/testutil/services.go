package testutil

import (
	"time"

	appnews "kbo-news-service/internal/app/news"
	appresults "kbo-news-service/internal/app/results"
	"kbo-news-service/internal/providers"
)

// ServiceDate is the date stamp services built here treat as today.
const ServiceDate = "20250501"

var serviceNow = time.Date(2025, 5, 1, 3, 0, 0, 0, time.UTC)

// NewNewsService builds a news service over the given strategies with a
// fixed clock in UTC. Either strategy may be nil.
func NewNewsService(fast providers.NewsFetcher, scroller providers.NewsScroller) *appnews.Service {
	return appnews.NewService(appnews.Options{
		Fast:     fast,
		Scroller: scroller,
		Location: time.UTC,
		Now:      NowAt(serviceNow),
	})
}

// NewResultsService builds a results service over fetcher with a fixed clock.
func NewResultsService(fetcher providers.RecentResultsFetcher) *appresults.Service {
	return appresults.NewService(fetcher, 0, time.UTC, NowAt(serviceNow), nil, nil)
}
