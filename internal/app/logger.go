package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// LogEnvVar names a file that receives a JSON copy of every log record.
const LogEnvVar = "CARGO_FMT_LOG_FILE"

// setupLogger configures a logger that writes clean, human-readable logs to
// the console and, when logPath is set, structured logs to that file.
// The console logger is returned even when the file cannot be opened.
func setupLogger(stderr io.Writer, logLevel *slog.LevelVar, logPath string) (*slog.Logger, io.Closer, error) {
	console := &consoleHandler{
		w:     stderr,
		level: logLevel,
	}
	if logPath == "" {
		return slog.New(console), nil, nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(console), nil, err
	}

	file := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug, // The file always gets full debug info
	})
	return slog.New(&teeHandler{file: file, console: console}), f, nil
}

// teeHandler sends each record to the JSON log file and to the console. A
// failed file write does not stop the record reaching the console.
type teeHandler struct {
	file    slog.Handler
	console slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.file.Enabled(ctx, level) || t.console.Enabled(ctx, level)
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var fileErr, consoleErr error
	if t.file.Enabled(ctx, record.Level) {
		if err := t.file.Handle(ctx, record.Clone()); err != nil {
			fileErr = fmt.Errorf("log file: %w", err)
		}
	}
	if t.console.Enabled(ctx, record.Level) {
		consoleErr = t.console.Handle(ctx, record)
	}
	return errors.Join(fileErr, consoleErr)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{file: t.file.WithAttrs(attrs), console: t.console.WithAttrs(attrs)}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{file: t.file.WithGroup(name), console: t.console.WithGroup(name)}
}

// consoleHandler prints records the way cargo does: one line per record,
// "warning: " and "error: " prefixes, attributes only at debug level.
type consoleHandler struct {
	w     io.Writer
	level *slog.LevelVar
	attrs []slog.Attr
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var line strings.Builder
	switch {
	case record.Level >= slog.LevelError:
		line.WriteString("error: ")
	case record.Level >= slog.LevelWarn:
		line.WriteString("warning: ")
	}
	line.WriteString(record.Message)

	for _, a := range c.attrs {
		c.formatAttr(&line, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		c.formatAttr(&line, a)
		return true
	})
	line.WriteByte('\n')

	_, err := io.WriteString(c.w, line.String())
	return err
}

func (c *consoleHandler) formatAttr(line *strings.Builder, a slog.Attr) {
	if a.Key == "error" || a.Key == "err" {
		fmt.Fprintf(line, ": %v", a.Value)
	} else if c.level.Level() <= slog.LevelDebug {
		fmt.Fprintf(line, " %s=%v", a.Key, a.Value)
	}
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		w:     c.w,
		level: c.level,
		attrs: slices.Concat(c.attrs, attrs),
	}
}

// WithGroup is a no-op: console lines are flat.
func (c *consoleHandler) WithGroup(_ string) slog.Handler {
	return c
}
