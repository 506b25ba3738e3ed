// Package logging is the diagnostics sink handed to the PubChem client and the pipeline.
// Components never log through a process-wide logger; they receive a *Logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with compound-scan field names
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewWithFormat builds a Logger writing to w in "text" or "json" format
func NewWithFormat(w io.Writer, format string, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return New(slog.NewJSONHandler(w, opts))
	}
	return New(slog.NewTextHandler(w, opts))
}

// Noop discards everything
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// WithRun tags every line with the run ID
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.Logger.With("run_id", runID)}
}

// WithCID tags every line with the compound ID
func (l *Logger) WithCID(cid int) *Logger {
	return &Logger{Logger: l.Logger.With("cid", cid)}
}

// LogFetch logs a completed upstream request
func (l *Logger) LogFetch(ctx context.Context, endpoint string, status int, bytes int, cached bool, took time.Duration) {
	l.DebugContext(ctx, "fetch completed",
		"endpoint", endpoint,
		"status", status,
		"bytes", bytes,
		"cached", cached,
		"took", took,
	)
}

// LogDegraded reports a category that fell back to its empty value
func (l *Logger) LogDegraded(ctx context.Context, category string, err error) {
	l.WarnContext(ctx, "category degraded to empty",
		"category", category,
		"error", err,
	)
}

// LogCategory logs a category that completed
func (l *Logger) LogCategory(ctx context.Context, category string, items int) {
	l.DebugContext(ctx, "category fetched",
		"category", category,
		"items", items,
	)
}

// LogRun logs the final state of a run
func (l *Logger) LogRun(ctx context.Context, name string, state string, cid int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"name", name,
			"state", state,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"name", name,
		"state", state,
		"cid", cid,
	)
}
