// Package news implements team news pagination over the fetch strategies,
// with short-lived caches for the first page and the listing total.
package news

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"time"

	domainnews "kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/domain/teams"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/metrics"
	"kbo-news-service/internal/providers"
	"kbo-news-service/internal/store"
	"kbo-news-service/internal/timeutil"
)

const (
	DefaultPageSize     = 4
	DefaultFirstPageTTL = 2 * time.Minute
	DefaultTotalTTL     = 10 * time.Minute
	MaxBufferPages      = 5

	CacheFirstPage = "first_page"
	CacheTotal     = "total"
)

// FirstPage is the initial page of a team's listing.
type FirstPage struct {
	Team    teams.Identity
	Date    string
	Items   []domainnews.Item
	PerPage int
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Fast         providers.NewsFetcher
	Scroller     providers.NewsScroller
	PageSize     int
	FirstPageTTL time.Duration
	TotalTTL     time.Duration
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	// FirstPages and Totals are the caches to use. When nil, caches are
	// built from FirstPageTTL and TotalTTL.
	FirstPages *store.TTLCache[[]domainnews.Item]
	Totals     *store.TTLCache[int]
}

// Service coordinates the fast and interactive strategies. Strategy failures
// are logged and degrade to shorter or empty results; they never surface to
// callers of FirstPage, Window or Total.
type Service struct {
	fast       providers.NewsFetcher
	scroller   providers.NewsScroller
	pageSize   int
	firstPages *store.TTLCache[[]domainnews.Item]
	totals     *store.TTLCache[int]
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewService constructs a Service with the provided options.
func NewService(opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.FirstPageTTL <= 0 {
		opts.FirstPageTTL = DefaultFirstPageTTL
	}
	if opts.TotalTTL <= 0 {
		opts.TotalTTL = DefaultTotalTTL
	}
	if opts.Location == nil {
		opts.Location = timeutil.LoadLocation(timeutil.DefaultZone)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FirstPages == nil {
		opts.FirstPages = store.NewTTLCache[[]domainnews.Item](opts.FirstPageTTL, opts.Now)
	}
	if opts.Totals == nil {
		opts.Totals = store.NewTTLCache[int](opts.TotalTTL, opts.Now)
	}
	return &Service{
		fast:       opts.Fast,
		scroller:   opts.Scroller,
		pageSize:   opts.PageSize,
		firstPages: opts.FirstPages,
		totals:     opts.Totals,
		loc:        opts.Location,
		now:        opts.Now,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
}

// PageSize returns the number of items per page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Today returns the current listing date (YYYYMMDD) in the service zone.
func (s *Service) Today() string {
	return timeutil.Stamp(s.now(), s.loc)
}

// FirstPage returns the first page for team, from cache when fresh. An empty
// date means today.
func (s *Service) FirstPage(ctx context.Context, team, date string) FirstPage {
	id, date := s.resolve(team, date)
	key := store.Key{Code: id.Code, Date: date}

	if items, ok := s.firstPages.Get(key); ok {
		s.metrics.RecordCacheLookup(CacheFirstPage, true)
		return FirstPage{Team: id, Date: date, Items: slices.Clone(items), PerPage: s.pageSize}
	}
	s.metrics.RecordCacheLookup(CacheFirstPage, false)

	items, _ := s.loadFirstPage(ctx, id, date, key)
	return FirstPage{Team: id, Date: date, Items: items, PerPage: s.pageSize}
}

// RefreshFirstPage fetches the first page regardless of the cache and stores
// the result. It returns an error when no strategy produced a result.
func (s *Service) RefreshFirstPage(ctx context.Context, team, date string) (FirstPage, error) {
	id, date := s.resolve(team, date)
	key := store.Key{Code: id.Code, Date: date}
	items, err := s.loadFirstPage(ctx, id, date, key)
	return FirstPage{Team: id, Date: date, Items: items, PerPage: s.pageSize}, err
}

// loadFirstPage tries the fast strategy, falls back to the interactive one
// when it comes up short, and caches unless the fallback failed.
func (s *Service) loadFirstPage(ctx context.Context, id teams.Identity, date string, key store.Key) ([]domainnews.Item, error) {
	logger := s.log(ctx, id, date)

	var items []domainnews.Item
	var fastErr error
	if s.fast != nil {
		items, fastErr = s.fast.FetchNews(ctx, id.Code, date, s.pageSize)
		if fastErr != nil {
			logging.Warn(logger, "fast fetch failed, falling back to browser", logging.FieldError, fastErr)
			items = nil
		}
	} else {
		fastErr = providers.ErrProviderUnavailable
	}

	if len(items) < s.pageSize {
		more, err := s.scrollFetch(ctx, id.Code, date, s.pageSize)
		if err != nil {
			logging.Warn(logger, "browser fetch failed", logging.FieldError, err)
			if items == nil {
				items = []domainnews.Item{}
			}
			if fastErr != nil {
				return items, errors.Join(fastErr, err)
			}
			return items, err
		}
		items = more
	}

	if items == nil {
		items = []domainnews.Item{}
	}
	s.firstPages.Set(key, slices.Clone(items))
	return items, nil
}

// Window returns items [offset, offset+pageSize*bufferPages) of the listing.
// offset is clamped to >= 0 and bufferPages to [1, MaxBufferPages]. Windows
// are always fetched live.
func (s *Service) Window(ctx context.Context, team, date string, offset, bufferPages int) domainnews.WindowResponse {
	if offset < 0 {
		offset = 0
	}
	bufferPages = clampBuffer(bufferPages)
	span := s.pageSize * bufferPages
	id, date := s.resolve(team, date)
	if offset > math.MaxInt-span {
		return domainnews.WindowResponse{Items: []domainnews.Item{}, PerPage: s.pageSize}
	}
	end := offset + span

	items, err := s.scrollFetch(ctx, id.Code, date, end)
	if err != nil {
		logging.Warn(s.log(ctx, id, date), "window fetch failed", logging.FieldOffset, offset, logging.FieldError, err)
		items = nil
	}

	window, hasMore := domainnews.Window(items, offset, end)
	return domainnews.WindowResponse{Items: window, HasMore: hasMore, PerPage: s.pageSize}
}

// Total returns the listing size and page count, from cache when fresh.
// Failed counts report zero and are not cached.
func (s *Service) Total(ctx context.Context, team, date string) domainnews.TotalResponse {
	id, date := s.resolve(team, date)
	key := store.Key{Code: id.Code, Date: date}

	if count, ok := s.totals.Get(key); ok {
		s.metrics.RecordCacheLookup(CacheTotal, true)
		return domainnews.NewTotalResponse(count, s.pageSize)
	}
	s.metrics.RecordCacheLookup(CacheTotal, false)

	count, err := s.scrollCount(ctx, id.Code, date)
	if err != nil {
		logging.Warn(s.log(ctx, id, date), "count failed", logging.FieldError, err)
		return domainnews.NewTotalResponse(0, s.pageSize)
	}
	s.totals.Set(key, count)
	return domainnews.NewTotalResponse(count, s.pageSize)
}

func (s *Service) scrollFetch(ctx context.Context, code, date string, count int) ([]domainnews.Item, error) {
	if s.scroller == nil {
		return nil, providers.ErrProviderUnavailable
	}
	start := time.Now()
	items, err := s.scroller.FetchNews(ctx, code, date, count)
	s.metrics.RecordFetch(providers.StrategyScroll, time.Since(start), err)
	return items, err
}

func (s *Service) scrollCount(ctx context.Context, code, date string) (int, error) {
	if s.scroller == nil {
		return 0, providers.ErrProviderUnavailable
	}
	start := time.Now()
	n, err := s.scroller.CountNews(ctx, code, date)
	s.metrics.RecordFetch(providers.StrategyCount, time.Since(start), err)
	return n, err
}

func (s *Service) resolve(team, date string) (teams.Identity, string) {
	if date == "" {
		date = s.Today()
	}
	return teams.Resolve(team), date
}

func (s *Service) log(ctx context.Context, id teams.Identity, date string) *slog.Logger {
	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return nil
	}
	return logger.With(logging.FieldTeam, id.Name, logging.FieldTeamCode, id.Code, logging.FieldDate, date)
}

func clampBuffer(pages int) int {
	if pages < 1 {
		return 1
	}
	if pages > MaxBufferPages {
		return MaxBufferPages
	}
	return pages
}
