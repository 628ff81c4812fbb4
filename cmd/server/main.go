package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kbo-news-service/internal/config"
	"kbo-news-service/internal/logging"
	"kbo-news-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stop context.CancelFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
	logging.Info(logger, "starting", "provider", cfg.Provider, "port", cfg.Port, "warm", cfg.Warm.Enabled)

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
	return nil
}
