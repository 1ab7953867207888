// Package monitoring provides structured logging and lightweight
// in-process metrics for the mapping service.
package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with domain-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// MappingLogger logs one completed interest mapping.
func (l *Logger) MappingLogger(recommendedArea string, confidence, textQuality float64, textUsed bool, duration time.Duration) {
	l.Info("Mapping Completed",
		"recommended_area", recommendedArea,
		"confidence", confidence,
		"text_quality", textQuality,
		"text_used", textUsed,
		"duration_ms", duration.Milliseconds(),
	)
}
