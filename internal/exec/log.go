package exec

import (
	"EnvKit/internal/logger"
	"context"
	"strings"
)

// logByType logs a message with the appropriate logger function based on type
func logByType(ctx context.Context, noticeType string, format string, args ...any) {
	switch strings.ToLower(noticeType) {
	case "notice":
		logger.Notice(ctx, format, args...)
	case "info":
		logger.Info(ctx, format, args...)
	case "warn", "warning":
		logger.Warn(ctx, format, args...)
	case "error":
		logger.Error(ctx, format, args...)
	case "debug":
		logger.Debug(ctx, format, args...)
	default:
		logger.Notice(ctx, format, args...)
	}
}
