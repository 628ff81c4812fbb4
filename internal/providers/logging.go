package providers

import (
	"context"
	"log/slog"

	"kbo-news-service/internal/logging"
)

// logWithStrategy emits a log entry if a logger is available and always
// includes the strategy name.
func logWithStrategy(ctx context.Context, logger *slog.Logger, level slog.Level, strategy string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldStrategy, strategy))
	logger.Log(ctx, level, msg, args...)
}
