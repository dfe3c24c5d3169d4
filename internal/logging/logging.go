package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options задает уровень и формат логов
type Options struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
	Writer io.Writer
}

// New создает структурированный логгер и делает его логгером по умолчанию
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel переводит строковый уровень в slog.Level, по умолчанию INFO
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
