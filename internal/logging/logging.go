// Package logging configures the process logger: structured text to
// stderr, plus a size-rotated file when one is configured.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds and installs the root logger. An empty logFile means
// stderr only.
func Setup(logFile, level string) *slog.Logger {
	var w io.Writer = os.Stderr
	if logFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
