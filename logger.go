package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// logger discards everything until InitLogger runs; stdout belongs to the TUI.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func ResolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// InitLogger points the logger at path. The returned file must be closed by
// the caller; it is nil when path is empty and logging stays disabled.
func InitLogger(path, level string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	logLevel, err := ResolveLogLevel(level)
	if err != nil {
		return nil, err
	}
	file, err := tea.LogToFile(path, "emojiart")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger = slog.New(handler)
	return file, nil
}
