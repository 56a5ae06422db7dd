// Package logging builds the slog handlers used by the server and the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// SetupHandlerText configures a text slog handler with the provided writer and log level
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := true
	lvl := log.InfoLevel
	switch strings.ToLower(logLevel) {
	case "trace":
		reportCaller = true
		lvl = log.DebugLevel
	case "debug":
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
		Prefix:          "registration",
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer and log level
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(logLevel, "trace"),
	})
}

// New returns a logger for the given format ("text" or "json").
func New(format, logLevel string, writer io.Writer) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(SetupHandlerJSON(logLevel, writer))
	}
	return slog.New(SetupHandlerText(logLevel, writer))
}

// SetupLogger configures the default logger and returns it.
func SetupLogger(format, logLevel string) *slog.Logger {
	logger := New(format, logLevel, nil)
	slog.SetDefault(logger)
	return logger
}
