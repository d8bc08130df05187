// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishore-rajkumar/task-manager-api/internal/config"
	"github.com/kishore-rajkumar/task-manager-api/internal/platform/logger"
)

// testLogBuffer is a synchronized buffer for capturing log output in tests
type testLogBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *testLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// entries parses each non-empty line as a JSON log entry
func (b *testLogBuffer) entries(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range strings.Split(b.buf.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

// restoreDefault resets slog's default logger after a test replaces it
func restoreDefault(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestSetup(t *testing.T) {
	restoreDefault(t)

	l, err := logger.Setup(config.ServerConfig{LogLevel: "info", Port: 8080})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default(), "Setup should install the logger as the default")
}

func TestSetupWithWriter_FiltersByLevel(t *testing.T) {
	restoreDefault(t)

	buf := &testLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn", Port: 8080}, buf)
	require.NoError(t, err)

	l.Debug("debug test message")
	l.Info("info test message")
	l.Warn("warn test message", "task_id", "abc")
	l.Error("error test message")

	entries := buf.entries(t)
	require.Len(t, entries, 2, "only warn and error should be written at warn level")
	assert.Equal(t, "warn test message", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "abc", entries[0]["task_id"])
	assert.Equal(t, "error test message", entries[1]["msg"])
}

func TestSetupWithWriter_InvalidLevelDefaultsToInfo(t *testing.T) {
	restoreDefault(t)

	// Silence the warning written to stderr
	origStderr := os.Stderr
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	os.Stderr = devNull
	t.Cleanup(func() {
		os.Stderr = origStderr
		_ = devNull.Close()
	})

	buf := &testLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "invalid_level"}, buf)
	require.NoError(t, err, "an invalid level is not a setup error")

	l.Debug("debug test message")
	l.Info("info test message")

	entries := buf.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "info test message", entries[0]["msg"])
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   slog.Level
		wantOK bool
	}{
		{name: "debug level", input: "debug", want: slog.LevelDebug, wantOK: true},
		{name: "info level", input: "info", want: slog.LevelInfo, wantOK: true},
		{name: "warn level", input: "warn", want: slog.LevelWarn, wantOK: true},
		{name: "error level", input: "error", want: slog.LevelError, wantOK: true},
		{name: "case insensitive - DEBUG", input: "DEBUG", want: slog.LevelDebug, wantOK: true},
		{name: "surrounding spaces", input: " Info ", want: slog.LevelInfo, wantOK: true},
		{name: "unknown", input: "verbose", want: slog.LevelInfo, wantOK: false},
		{name: "empty", input: "", want: slog.LevelInfo, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestContextLogger(t *testing.T) {
	buf := &testLogBuffer{}
	scoped := slog.New(slog.NewJSONHandler(buf, nil)).With("trace_id", "t-1")
	fallback := slog.New(slog.NewJSONHandler(&testLogBuffer{}, nil))

	t.Run("empty context returns fallback", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil fallback returns default", func(t *testing.T) {
		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("stored logger wins", func(t *testing.T) {
		ctx := logger.WithContext(context.Background(), scoped)
		got := logger.FromContextOrDefault(ctx, fallback)
		assert.Same(t, scoped, got)

		got.Info("scoped message")
		entries := buf.entries(t)
		require.Len(t, entries, 1)
		assert.Equal(t, "t-1", entries[0]["trace_id"])
	})
}

func TestForComponent(t *testing.T) {
	t.Run("request logger gains component", func(t *testing.T) {
		buf := &testLogBuffer{}
		scoped := slog.New(slog.NewJSONHandler(buf, nil)).With("trace_id", "t-2")
		fallback := slog.New(slog.NewJSONHandler(&testLogBuffer{}, nil)).With("component", "task_service")
		ctx := logger.WithContext(context.Background(), scoped)

		logger.ForComponent(ctx, fallback, "task_service").Info("saved")

		entries := buf.entries(t)
		require.Len(t, entries, 1)
		assert.Equal(t, "t-2", entries[0]["trace_id"])
		assert.Equal(t, "task_service", entries[0]["component"])
	})

	t.Run("empty context returns fallback", func(t *testing.T) {
		fallback := slog.New(slog.NewJSONHandler(&testLogBuffer{}, nil))
		assert.Same(t, fallback, logger.ForComponent(context.Background(), fallback, "task_service"))
	})

	t.Run("nil fallback tags default", func(t *testing.T) {
		assert.NotNil(t, logger.ForComponent(context.Background(), nil, "task_service"))
	})
}
