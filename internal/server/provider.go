package server

import (
	"log/slog"
	"strings"

	"kbo-news-service/internal/browser"
	"kbo-news-service/internal/config"
	"kbo-news-service/internal/providers"
	"kbo-news-service/internal/providers/fixture"
	"kbo-news-service/internal/providers/naver"
)

// strategies are the raw upstream implementations before shared wrappers.
type strategies struct {
	fast     providers.NewsFetcher
	scroller providers.NewsScroller
	results  providers.RecentResultsFetcher
	// closers release wrapper resources on shutdown.
	closers []func()
}

func selectStrategies(cfg config.Config, logger *slog.Logger) strategies {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		p := fixture.New()
		return strategies{fast: p.Static(), scroller: p, results: p}
	case config.ProviderNaver:
		launcher := newLauncher(cfg)
		return strategies{
			fast: naver.NewClient(naver.Config{
				BaseURL:   cfg.Naver.BaseURL,
				UserAgent: userAgent(cfg),
				Timeout:   cfg.Naver.FastTimeout,
			}),
			scroller: naver.NewScroller(launcher, cfg.Naver.BaseURL, logger),
			results:  naver.NewResultsScraper(launcher, cfg.Naver.BaseURL, cfg.Naver.Season, logger),
		}
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		p := fixture.New()
		return strategies{fast: p.Static(), scroller: p, results: p}
	}
}

// newLauncher builds the browser launcher shared by the interactive
// strategies. It presents the same mobile user agent as the fast client.
func newLauncher(cfg config.Config) *browser.ChromeLauncher {
	return browser.NewChromeLauncher(browser.ChromeOptions{
		ExecPath:       cfg.Browser.ChromeBin,
		RemoteURL:      cfg.Browser.RemoteURL,
		UserAgent:      userAgent(cfg),
		SessionTimeout: cfg.Browser.SessionTimeout,
	})
}

func userAgent(cfg config.Config) string {
	if ua := strings.TrimSpace(cfg.Naver.UserAgent); ua != "" {
		return ua
	}
	return naver.DefaultUserAgent
}
