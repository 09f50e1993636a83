// Package logging configures the process-wide slog logger. Records go to a
// size-rotated file so they never mix with reports written to stdout.
package logging

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/coder26-cmd/anti-plagiarism/internal/config"
)

// ParseLevel maps a level name (or a numeric slog level) to slog.Level.
// Unknown values yield defaultLevel.
func ParseLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	switch level {
	case "":
		return defaultLevel
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}
	return defaultLevel
}

// NewWriter returns the rotating log file writer for cfg
func NewWriter(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// New builds a text logger over w. verbose forces debug level.
func New(w io.Writer, level string, verbose bool) *slog.Logger {
	logLevel := ParseLevel(level, slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: verbose,
		Level:     logLevel,
	}))
}

// Configure installs the default logger writing to the configured file and
// returns a closer for the file. An empty filename discards all records.
func Configure(cfg config.LogConfig, verbose bool) (*slog.Logger, io.Closer) {
	if strings.TrimSpace(cfg.Filename) == "" {
		logger := New(io.Discard, cfg.Level, verbose)
		slog.SetDefault(logger)
		return logger, io.NopCloser(nil)
	}

	writer := NewWriter(cfg)
	logger := New(writer, cfg.Level, verbose)
	slog.SetDefault(logger)
	return logger, writer
}
