package server

import (
	"log/slog"

	"kbo-news-service/internal/config"
	"kbo-news-service/internal/metrics"
	"kbo-news-service/internal/providers"
)

// providerFactory assembles the strategies with shared wrappers (rate limit + retry on the fast path).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) strategies {
	s := selectStrategies(cfg, f.logger)
	limited := providers.NewRateLimitedFetcher(s.fast, cfg.Naver.MinInterval, f.logger)
	if c, ok := limited.(interface{ Close() }); ok {
		s.closers = append(s.closers, c.Close)
	}
	s.fast = providers.NewRetryingFetcher(limited, f.logger, f.metrics, providers.StrategyFast, cfg.Naver.FastAttempts, 0)
	return s
}
