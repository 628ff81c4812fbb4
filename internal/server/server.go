package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	appnews "kbo-news-service/internal/app/news"
	appresults "kbo-news-service/internal/app/results"
	"kbo-news-service/internal/config"
	domainnews "kbo-news-service/internal/domain/news"
	httpserver "kbo-news-service/internal/http"
	"kbo-news-service/internal/http/handlers"
	"kbo-news-service/internal/http/middleware"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/metrics"
	"kbo-news-service/internal/poller"
	"kbo-news-service/internal/store"
	"kbo-news-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	newsService    *appnews.Service
	resultsService *appresults.Service
	httpServer     httpServer
	metricsServer  httpServer
	poller         Poller
	metricsStop    func(context.Context) error
	closers        []func()
}

// New constructs a server with the configured provider and optional cache warmer.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

// newServerWithStrategies wires injected strategies; used by tests.
func newServerWithStrategies(cfg config.Config, logger *slog.Logger, s strategies) *Server {
	return newServerWithMetrics(cfg, logger, &s, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, injected *strategies, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var s strategies
	if injected == nil {
		s = newProviderFactory(logger, recorder).build(cfg)
	} else {
		s = *injected
	}

	newsSvc, resultsSvc := buildServices(cfg, s, logger, recorder)

	var plr Poller
	if cfg.Warm.Enabled {
		plr = poller.New(newsSvc, logger, recorder, cfg.Warm.Interval)
	}
	httpSrv := buildHTTPServer(cfg, newsSvc, resultsSvc, logger, recorder, plr)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		newsService:    newsSvc,
		resultsService: resultsSvc,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		poller:         plr,
		metricsStop:    metricsShutdown,
		closers:        s.closers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildServices(cfg config.Config, s strategies, logger *slog.Logger, recorder *metrics.Recorder) (*appnews.Service, *appresults.Service) {
	loc := timeutil.LoadLocation(cfg.Timezone)
	newsSvc := appnews.NewService(appnews.Options{
		Fast:       s.fast,
		Scroller:   s.scroller,
		PageSize:   cfg.News.PageSize,
		FirstPages: store.NewTTLCache[[]domainnews.Item](positiveOr(cfg.News.FirstPageTTL, appnews.DefaultFirstPageTTL), nil),
		Totals:     store.NewTTLCache[int](positiveOr(cfg.News.TotalTTL, appnews.DefaultTotalTTL), nil),
		Location:   loc,
		Logger:     logger,
		Metrics:    recorder,
	})
	resultsSvc := appresults.NewService(s.results, cfg.Results.TTL, loc, nil, logger, recorder)
	return newsSvc, resultsSvc
}

func buildHTTPServer(cfg config.Config, newsSvc *appnews.Service, resultsSvc *appresults.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(newsSvc, resultsSvc, logger, statusFn)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the cache warmer and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop cache warmer", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		closeFn()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

func positiveOr(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}
