package naver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kbo-news-service/internal/browser"
	"kbo-news-service/internal/extract"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/providers"
)

// ResultsScraper reads every team's recent outcomes from the standings page.
// The standings table is rendered client-side, so a browser session is used.
type ResultsScraper struct {
	launcher browser.Launcher
	baseURL  string
	season   int
	wait     time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewResultsScraper returns a scraper for the given season; season <= 0
// follows the current year.
func NewResultsScraper(launcher browser.Launcher, baseURL string, season int, logger *slog.Logger) *ResultsScraper {
	return &ResultsScraper{
		launcher: launcher,
		baseURL:  normalizeBaseURL(baseURL),
		season:   season,
		wait:     defaultResultsWait,
		logger:   logger,
		now:      time.Now,
	}
}

// Season returns the season code requested from the portal.
func (r *ResultsScraper) Season() int {
	if r.season > 0 {
		return r.season
	}
	return r.now().Year()
}

// FetchRecentResults returns outcomes keyed by the team name in the table.
func (r *ResultsScraper) FetchRecentResults(ctx context.Context) (map[string][]string, error) {
	if r.launcher == nil {
		return nil, fmt.Errorf("naver: browser launcher: %w", providers.ErrProviderUnavailable)
	}
	page, release, err := r.launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("naver: launch browser: %w", err)
	}
	defer release()

	if err := page.Navigate(ResultsURL(r.baseURL, r.Season())); err != nil {
		return nil, fmt.Errorf("naver: open standings: %w", err)
	}
	if err := page.WaitReady(extract.ResultsReadySelector, r.wait); err != nil {
		return nil, fmt.Errorf("naver: standings not rendered: %w", err)
	}
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("naver: read standings: %w", err)
	}
	out, err := extract.RecentResultsFromHTML(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("naver: %w", err)
	}
	if logger := logging.FromContext(ctx, r.logger); logger != nil {
		logger.Debug("standings scraped", logging.FieldProvider, providerName, logging.FieldCount, len(out))
	}
	return out, nil
}
