package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Service   string
	Env       string
	Level     string
	AddSource bool

	// Writer defaults to stdout; tests inject a buffer.
	Writer io.Writer
}

func New(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)

	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	var h slog.Handler
	if opts.Env == "dev" {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource})
	}

	base := slog.New(h).With(
		"service", opts.Service,
		"env", opts.Env,
	)

	slog.SetDefault(base)
	return base
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
