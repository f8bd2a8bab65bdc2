package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("console only", func(t *testing.T) {
		t.Parallel()
		logLevel := &slog.LevelVar{}
		stderr := &bytes.Buffer{}
		logger, closer, err := setupLogger(stderr, logLevel, "")
		require.NoError(t, err)
		assert.Nil(t, closer)

		logger.Info("hello", "key", "value")
		assert.Equal(t, "hello\n", stderr.String())
	})

	t.Run("success with file", func(t *testing.T) {
		t.Parallel()
		logFile := filepath.Join(t.TempDir(), "cargo-fmt.log")
		logLevel := &slog.LevelVar{}
		logLevel.Set(slog.LevelInfo)
		stderr := &bytes.Buffer{}

		logger, closer, err := setupLogger(stderr, logLevel, logFile)
		require.NoError(t, err)
		require.NotNil(t, closer)
		defer closer.Close()

		logger.Info("test message", "key", "value")
		logger.Debug("debug only in file")

		assert.Equal(t, "test message\n", stderr.String())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"test message"`)
		assert.Contains(t, string(data), `"key":"value"`)
		assert.Contains(t, string(data), `"msg":"debug only in file"`)
	})

	t.Run("fallback on file error", func(t *testing.T) {
		t.Parallel()
		logLevel := &slog.LevelVar{}
		stderr := &bytes.Buffer{}

		logger, closer, err := setupLogger(stderr, logLevel, "/non/existent/path/unwritable.log")
		require.Error(t, err)
		assert.Nil(t, closer)
		require.NotNil(t, logger)

		logger.Info("fallback message")
		assert.Contains(t, stderr.String(), "fallback message")
	})
}

func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	t.Run("levels", func(t *testing.T) {
		t.Parallel()
		logLevel := &slog.LevelVar{}
		logLevel.Set(slog.LevelDebug)
		buf := &bytes.Buffer{}
		handler := &consoleHandler{w: buf, level: logLevel}

		tests := []struct {
			level slog.Level
			msg   string
			want  string
		}{
			{slog.LevelDebug, "d", "d\n"},
			{slog.LevelInfo, "i", "i\n"},
			{slog.LevelWarn, "w", "warning: w\n"},
			{slog.LevelError, "e", "error: e\n"},
		}
		for _, tt := range tests {
			buf.Reset()
			err := handler.Handle(context.Background(), slog.Record{Level: tt.level, Message: tt.msg})
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		}
	})

	t.Run("enabled follows level var", func(t *testing.T) {
		t.Parallel()
		logLevel := &slog.LevelVar{}
		logLevel.Set(slog.LevelWarn)
		handler := &consoleHandler{w: &bytes.Buffer{}, level: logLevel}

		assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
		logLevel.Set(slog.LevelDebug)
		assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("attributes", func(t *testing.T) {
		t.Parallel()
		logLevel := &slog.LevelVar{}
		buf := &bytes.Buffer{}
		handler := &consoleHandler{w: buf, level: logLevel}

		logLevel.Set(slog.LevelDebug)
		rec := slog.NewRecord(time.Now(), slog.LevelError, "msg", 0)
		rec.AddAttrs(slog.String("err", "boom"))
		require.NoError(t, handler.Handle(context.Background(), rec))
		assert.Equal(t, "error: msg: boom\n", buf.String())

		// Non-error attributes are hidden above debug level.
		buf.Reset()
		logLevel.Set(slog.LevelInfo)
		rec2 := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
		rec2.AddAttrs(slog.String("foo", "bar"))
		require.NoError(t, handler.Handle(context.Background(), rec2))
		assert.Equal(t, "msg\n", buf.String())

		buf.Reset()
		logLevel.Set(slog.LevelDebug)
		h2 := handler.WithAttrs([]slog.Attr{slog.Int("pid", 123)})
		require.NoError(t, h2.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)))
		assert.Equal(t, "msg pid=123\n", buf.String())

		assert.Same(t, h2, h2.WithGroup("somegroup"))
	})
}

type errHandler struct{}

func (e *errHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (e *errHandler) Handle(context.Context, slog.Record) error { return errors.New("handler error") }
func (e *errHandler) WithAttrs(_ []slog.Attr) slog.Handler      { return e }
func (e *errHandler) WithGroup(_ string) slog.Handler           { return e }

func TestTeeHandler(t *testing.T) {
	t.Parallel()

	t.Run("Enabled", func(t *testing.T) {
		t.Parallel()
		file := &consoleHandler{w: &bytes.Buffer{}, level: &slog.LevelVar{}}
		console := &consoleHandler{w: &bytes.Buffer{}, level: &slog.LevelVar{}}
		tee := &teeHandler{file: file, console: console}

		assert.True(t, tee.Enabled(context.Background(), slog.LevelInfo))

		file.level.Set(slog.LevelError)
		assert.True(t, tee.Enabled(context.Background(), slog.LevelInfo))

		console.level.Set(slog.LevelError)
		assert.False(t, tee.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("file failure still reaches the console", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		console := &consoleHandler{w: &buf, level: &slog.LevelVar{}}
		tee := &teeHandler{file: &errHandler{}, console: console}

		err := tee.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelWarn, "mixed editions", 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log file: handler error")
		assert.Equal(t, "warning: mixed editions\n", buf.String())
	})

	t.Run("WithAttrs and WithGroup", func(t *testing.T) {
		t.Parallel()
		console := &consoleHandler{w: &bytes.Buffer{}, level: &slog.LevelVar{}}
		tee := &teeHandler{file: &errHandler{}, console: console}

		h2 := tee.WithAttrs([]slog.Attr{slog.String("v", "1")})
		assert.IsType(t, &teeHandler{}, h2)
		assert.IsType(t, &teeHandler{}, h2.WithGroup("g"))
	})
}
