// Package logging configures the process-wide slog logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+
// to stderr.
type levelRouter struct {
	minLevel slog.Level
	stdout   slog.Handler
	stderr   slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.minLevel
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		minLevel: lr.minLevel,
		stdout:   lr.stdout.WithAttrs(attrs),
		stderr:   lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		minLevel: lr.minLevel,
		stdout:   lr.stdout.WithGroup(name),
		stderr:   lr.stderr.WithGroup(name),
	}
}

// Setup configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr; verbose lowers the threshold to DEBUG. If logPath is
// non-empty, all levels are also written to that file. Returns a cleanup
// function that closes the log file (if opened).
func Setup(logPath string, verbose bool) (func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		minLevel: level,
		stdout:   slog.NewTextHandler(stdoutW, opts),
		stderr:   slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}
