package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(env string) {
	slog.SetDefault(slog.New(StdoutHandler(env)))
}

// StdoutHandler returns the JSON stdout handler. Development mode lowers
// the threshold to debug.
func StdoutHandler(env string) slog.Handler {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
}
