package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/celllists/celllist"
	"github.com/katalvlaran/celllists/grid"
)

// Logger wraps slog.Logger with the fields of one neighbor search.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger writing to w. format is "text" or "json", level is
// one of debug, info, warn, error.
func NewLogger(w io.Writer, format, level string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}
	return &Logger{Logger: slog.New(handler)}, nil
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// LogPartition logs the chosen grid.
func (l *Logger) LogPartition(ctx context.Context, g *grid.Grid, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition failed", "error", err)
		return
	}
	l.InfoContext(ctx, "partition completed",
		"shape", g.Shape(),
		"cells", g.Len(),
		"cutoff", g.Cutoff(),
	)
}

// LogBuild logs the bucket layout.
func (l *Logger) LogBuild(ctx context.Context, cl *celllist.CellList, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed", "error", err)
		return
	}
	l.DebugContext(ctx, "build completed",
		"points", cl.Len(),
		"occupied", len(cl.Occupied()),
		"cells", cl.Grid().Len(),
	)
}

// LogPairs logs the result of the neighbor search.
func (l *Logger) LogPairs(ctx context.Context, pairs int, cutoff float64) {
	l.InfoContext(ctx, "neighbor search completed",
		"pairs", pairs,
		"cutoff", cutoff,
	)
}

// LogVerify logs the comparison against the brute-force reference.
func (l *Logger) LogVerify(ctx context.Context, want, got, missing, extra int) {
	if missing > 0 || extra > 0 {
		l.ErrorContext(ctx, "verification failed",
			"want", want,
			"got", got,
			"missing", missing,
			"extra", extra,
		)
		return
	}
	l.InfoContext(ctx, "verification passed", "pairs", want)
}
