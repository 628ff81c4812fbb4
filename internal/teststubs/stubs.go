package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"kbo-news-service/internal/browser"
	"kbo-news-service/internal/domain/news"
)

// StubFetcher is a test double for providers.NewsFetcher. Results are capped
// at the requested count unless Uncapped is set.
type StubFetcher struct {
	Items    []news.Item
	Err      error
	Uncapped bool
	Calls    atomic.Int32
	Notify   chan struct{}

	mu        sync.Mutex
	lastCode  string
	lastDate  string
	lastCount int
}

// FetchNews returns the configured items capped at count while tracking calls.
func (s *StubFetcher) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	s.mu.Lock()
	s.lastCode, s.lastDate, s.lastCount = code, date, count
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Uncapped {
		return capItems(s.Items, 0), nil
	}
	return capItems(s.Items, count), nil
}

// LastArgs returns the arguments of the most recent FetchNews call.
func (s *StubFetcher) LastArgs() (code, date string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCode, s.lastDate, s.lastCount
}

func (s *StubFetcher) notify() {
	if s.Notify == nil {
		return
	}
	select {
	case <-s.Notify:
	default:
		close(s.Notify)
	}
}

// StubScroller is a test double for providers.NewsScroller.
type StubScroller struct {
	StubFetcher
	Total      int
	CountErr   error
	CountCalls atomic.Int32
}

// CountNews returns the configured total.
func (s *StubScroller) CountNews(ctx context.Context, code, date string) (int, error) {
	_ = ctx
	_ = code
	_ = date
	s.CountCalls.Add(1)
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	return s.Total, nil
}

// StubResults is a test double for providers.RecentResultsFetcher.
type StubResults struct {
	Results map[string][]string
	Err     error
	Calls   atomic.Int32
}

func (s *StubResults) FetchRecentResults(ctx context.Context) (map[string][]string, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Results, nil
}

// FakePage is a scripted browser.Page. HTML and ScrollHeight walk through
// their slices call by call and repeat the last element once exhausted.
type FakePage struct {
	Pages   []string
	Heights []int64

	NavigateErr error
	// HTMLErr, when set, is consulted with the zero-based call index.
	HTMLErr   func(call int) error
	ScrollErr error
	HeightErr error
	WaitErr   error

	Navigated  []string
	Waited     []string
	HTMLCalls  int
	Scrolls    int
	ScrollTops int
	Fractions  []float64
}

func (p *FakePage) Navigate(url string) error {
	p.Navigated = append(p.Navigated, url)
	return p.NavigateErr
}

func (p *FakePage) HTML() (string, error) {
	call := p.HTMLCalls
	p.HTMLCalls++
	if p.HTMLErr != nil {
		if err := p.HTMLErr(call); err != nil {
			return "", err
		}
	}
	if len(p.Pages) == 0 {
		return "", nil
	}
	if call >= len(p.Pages) {
		call = len(p.Pages) - 1
	}
	return p.Pages[call], nil
}

func (p *FakePage) ScrollBy(fraction float64) error {
	if p.ScrollErr != nil {
		return p.ScrollErr
	}
	p.Scrolls++
	p.Fractions = append(p.Fractions, fraction)
	return nil
}

func (p *FakePage) ScrollTop() error {
	p.ScrollTops++
	return nil
}

func (p *FakePage) ScrollHeight() (int64, error) {
	if p.HeightErr != nil {
		return 0, p.HeightErr
	}
	if len(p.Heights) == 0 {
		return 0, nil
	}
	i := p.Scrolls - 1
	if i < 0 {
		i = 0
	}
	if i >= len(p.Heights) {
		i = len(p.Heights) - 1
	}
	return p.Heights[i], nil
}

func (p *FakePage) WaitReady(selector string, timeout time.Duration) error {
	_ = timeout
	p.Waited = append(p.Waited, selector)
	return p.WaitErr
}

// FakeLauncher hands out Page and counts launches and releases.
type FakeLauncher struct {
	Page     browser.Page
	Err      error
	Launches atomic.Int32
	Releases atomic.Int32
}

func (l *FakeLauncher) Launch(ctx context.Context) (browser.Page, func(), error) {
	_ = ctx
	l.Launches.Add(1)
	if l.Err != nil {
		return nil, func() {}, l.Err
	}
	return l.Page, func() { l.Releases.Add(1) }, nil
}

func capItems(items []news.Item, count int) []news.Item {
	if count > 0 && len(items) > count {
		items = items[:count]
	}
	out := make([]news.Item, len(items))
	copy(out, items)
	return out
}
