package naver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kbo-news-service/internal/browser"
	"kbo-news-service/internal/domain/news"
	"kbo-news-service/internal/extract"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/providers"
)

// Scroller is the interactive strategy. Each call drives its own browser
// session: the listing is scrolled until enough cards render or the page
// stops growing.
type Scroller struct {
	launcher  browser.Launcher
	baseURL   string
	extractor *extract.Extractor
	logger    *slog.Logger
	sleep     func(time.Duration)
	fetch     ScrollPlan
	count     ScrollPlan
}

// NewScroller returns a Scroller opening listings under baseURL.
func NewScroller(launcher browser.Launcher, baseURL string, logger *slog.Logger) *Scroller {
	return &Scroller{
		launcher:  launcher,
		baseURL:   normalizeBaseURL(baseURL),
		extractor: extract.New(""),
		logger:    logger,
		sleep:     time.Sleep,
		fetch:     fetchPlan,
		count:     countPlan,
	}
}

// FetchNews scrolls until count cards are rendered, returns to the top so
// lazy images settle, and extracts at most count items.
func (s *Scroller) FetchNews(ctx context.Context, code, date string, count int) ([]news.Item, error) {
	if count <= 0 {
		return []news.Item{}, nil
	}

	var items []news.Item
	err := s.withPage(ctx, NewsURL(s.baseURL, code, date), s.fetch.Settle, func(page browser.Page) error {
		html := s.scrollUntil(ctx, page, count)

		if err := page.ScrollTop(); err != nil {
			s.debug(ctx, "scroll to top failed", err)
		}
		s.sleep(topSettle)
		if final, err := page.HTML(); err == nil {
			html = final
		} else {
			s.debug(ctx, "final read failed, using last markup", err)
		}
		if html == "" {
			return fmt.Errorf("naver: no markup read for %s", code)
		}

		got, err := s.extractor.ItemsFromHTML(strings.NewReader(html), count)
		if err != nil {
			return fmt.Errorf("naver: %w", err)
		}
		items = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountNews scrolls to the end of the listing and returns the number of
// cards rendered, including any without a link.
func (s *Scroller) CountNews(ctx context.Context, code, date string) (int, error) {
	var total int
	err := s.withPage(ctx, NewsURL(s.baseURL, code, date), s.count.Settle, func(page browser.Page) error {
		var last int64
		for i := 0; i < s.count.MaxSteps; i++ {
			grew, h, err := s.step(page, s.count, last)
			if err != nil {
				s.debug(ctx, "count scroll stopped", err)
				break
			}
			if !grew {
				break
			}
			last = h
		}

		html, err := page.HTML()
		if err != nil {
			return err
		}
		n, err := extract.CountHTML(html)
		if err != nil {
			return fmt.Errorf("naver: %w", err)
		}
		total = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// scrollUntil returns the last markup read. The card count is checked before
// each scroll; a failed step ends the loop with what was read so far.
func (s *Scroller) scrollUntil(ctx context.Context, page browser.Page, count int) string {
	var html string
	var last int64
	for i := 0; i < s.fetch.MaxSteps; i++ {
		current, err := page.HTML()
		if err != nil {
			s.debug(ctx, "read during scroll failed", err)
			break
		}
		html = current
		if n, err := extract.CountHTML(html); err == nil && n >= count {
			break
		}

		grew, h, err := s.step(page, s.fetch, last)
		if err != nil {
			s.debug(ctx, "scroll stopped", err)
			break
		}
		if !grew {
			break
		}
		last = h
	}
	return html
}

// step scrolls once, waits, and reports whether the page height changed.
func (s *Scroller) step(page browser.Page, plan ScrollPlan, last int64) (bool, int64, error) {
	if err := page.ScrollBy(plan.Fraction); err != nil {
		return false, last, err
	}
	s.sleep(plan.Step)
	h, err := page.ScrollHeight()
	if err != nil {
		return false, last, err
	}
	return h != last, h, nil
}

// withPage launches a session, navigates and settles, runs fn and always
// releases the session.
func (s *Scroller) withPage(ctx context.Context, url string, settle time.Duration, fn func(browser.Page) error) error {
	if s.launcher == nil {
		return fmt.Errorf("naver: browser launcher: %w", providers.ErrProviderUnavailable)
	}
	page, release, err := s.launcher.Launch(ctx)
	if err != nil {
		return fmt.Errorf("naver: launch browser: %w", err)
	}
	defer release()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("naver: open listing: %w", err)
	}
	s.sleep(settle)
	return fn(page)
}

func (s *Scroller) debug(ctx context.Context, msg string, err error) {
	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return
	}
	logger.Debug(msg, logging.FieldProvider, providerName, logging.FieldError, err)
}
