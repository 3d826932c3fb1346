package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log starts as a JSON logger on stdout so packages can log before Init runs
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init(level string) {
	InitWithWriter(os.Stdout, level)
}

// InitWithWriter swaps the global logger for one writing JSON to w
func InitWithWriter(w io.Writer, level string) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	Log = slog.New(handler)
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to debug
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
