package results

import (
	"context"
	"log/slog"
	"time"

	domainresults "kbo-news-service/internal/domain/results"
	"kbo-news-service/internal/domain/teams"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/metrics"
	"kbo-news-service/internal/providers"
	"kbo-news-service/internal/store"
	"kbo-news-service/internal/timeutil"
)

const (
	DefaultTTL = 2 * time.Minute

	CacheResults = "results"
)

// Service answers recent-results queries. One standings scrape serves every
// team and is cached per day for the configured TTL.
type Service struct {
	fetcher providers.RecentResultsFetcher
	cache   *store.TTLCache[map[string][]string]
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service. A nil fetcher yields placeholder rows.
func NewService(fetcher providers.RecentResultsFetcher, ttl time.Duration, loc *time.Location, now func() time.Time, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = timeutil.LoadLocation(timeutil.DefaultZone)
	}
	return &Service{
		fetcher: fetcher,
		cache:   store.NewTTLCache[map[string][]string](ttl, now),
		loc:     loc,
		now:     now,
		logger:  logger,
		metrics: recorder,
	}
}

// Recent returns team's last five outcomes, padded with placeholders. The
// team is resolved through the alias table first.
func (s *Service) Recent(ctx context.Context, team string) domainresults.TeamResults {
	id := teams.Resolve(team)
	all := s.standings(ctx)
	return domainresults.TeamResults{Team: id.Name, Results: domainresults.Pad(all[id.Name])}
}

// All returns every canonical team in standings order.
func (s *Service) All(ctx context.Context) []domainresults.TeamResults {
	all := s.standings(ctx)
	names := teams.Canonical()
	out := make([]domainresults.TeamResults, 0, len(names))
	for _, name := range names {
		out = append(out, domainresults.TeamResults{Team: name, Results: domainresults.Pad(all[name])})
	}
	return out
}

func (s *Service) standings(ctx context.Context) map[string][]string {
	key := store.Key{Date: timeutil.Stamp(s.now(), s.loc)}
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCacheLookup(CacheResults, true)
		return cached
	}
	s.metrics.RecordCacheLookup(CacheResults, false)

	if s.fetcher == nil {
		return nil
	}
	start := time.Now()
	got, err := s.fetcher.FetchRecentResults(ctx)
	s.metrics.RecordFetch(providers.StrategyResults, time.Since(start), err)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "recent results fetch failed", logging.FieldError, err)
		return nil
	}
	s.cache.Set(key, got)
	return got
}
