package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// captureConsole swaps the console writer for a buffer until the test ends.
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := consoleOut
	consoleOut = &buf
	t.Cleanup(func() { consoleOut = orig })
	return &buf
}

func TestSetup_FileOnly_NoConsole(t *testing.T) {
	console := captureConsole(t)

	var fileBuf bytes.Buffer
	m := NewSlogManager(nil)
	m.Setup(&fileBuf, "info", nil)
	m.Logger().Info("hello file")

	assert.Contains(t, fileBuf.String(), "hello file")
	assert.Empty(t, console.String())
}

func TestSetup_NoFile_WritesToConsole(t *testing.T) {
	console := captureConsole(t)

	m := NewSlogManager(nil)
	m.Setup(nil, "info", nil)
	m.Logger().Info("hello console")

	assert.Contains(t, console.String(), "hello console")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager(nil)
	m.Setup(&buf, "debug", nil)

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "Logging initialized")
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager(nil)
	m.Setup(&buf, "info", nil)

	m.Logger().Debug("should be filtered")
	m.Logger().Info("should appear")

	output := buf.String()
	assert.NotContains(t, output, "should be filtered")
	assert.Contains(t, output, "should appear")
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewSlogManager(nil)

	m.Setup(&buf1, "info", nil)
	m.Logger().Info("first")

	m.Setup(&buf2, "info", nil)
	m.Logger().Info("second")

	assert.Contains(t, buf1.String(), "first")
	assert.NotContains(t, buf1.String(), "second", "old file should not receive new logs")
	assert.Contains(t, buf2.String(), "second")
}

func TestSetup_PlanningContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager(PlanningContext("blue", "Caucasus"))
	m.Setup(&buf, "info", nil)

	m.Logger().Info("planning", "operation", "strike_targets")

	output := buf.String()
	assert.Contains(t, output, "operation=strike_targets")
	assert.Contains(t, output, "side=blue")
	assert.Contains(t, output, "theater=Caucasus")
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager(nil)
	assert.Equal(t, slog.Default(), m.Logger())
}

func TestFlush_NilProvider(t *testing.T) {
	m := NewSlogManager(nil)
	assert.NoError(t, m.Flush(context.Background()))
}

func TestFlush_WithProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	m := NewSlogManager(nil)

	var buf bytes.Buffer
	m.Setup(&buf, "info", provider)
	m.Logger().Info("otel integrated")

	assert.Contains(t, buf.String(), "otel integrated")
	assert.NoError(t, m.Flush(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"info+2", slog.LevelInfo + 2},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestFanoutHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(NewFanoutHandler(h1, nil, h2)).Info("fanned out")

	assert.Contains(t, buf1.String(), "fanned out")
	assert.Contains(t, buf2.String(), "fanned out")
}

func TestFanoutHandler_Enabled(t *testing.T) {
	infoHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	infoOnly := NewFanoutHandler(infoHandler)
	assert.False(t, infoOnly.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, infoOnly.Enabled(context.Background(), slog.LevelInfo))

	both := NewFanoutHandler(infoHandler, debugHandler)
	assert.True(t, both.Enabled(context.Background(), slog.LevelDebug))

	assert.False(t, NewFanoutHandler().Enabled(context.Background(), slog.LevelError))
}

func TestFanoutHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	fanout := NewFanoutHandler(slog.NewTextHandler(&buf, nil))

	logger := slog.New(fanout.WithAttrs([]slog.Attr{slog.String("component", "finder")}).WithGroup("grp"))
	logger.Info("with attrs", "key", "val")

	assert.Contains(t, buf.String(), "component=finder")
	assert.Contains(t, buf.String(), "grp.key=val")
	assert.Same(t, fanout, fanout.WithGroup(""))
}

// errorHandler is a slog.Handler that always returns an error from Handle.
type errorHandler struct {
	slog.Handler
}

func (h *errorHandler) Handle(_ context.Context, _ slog.Record) error {
	return errors.New("handler error")
}

func (h *errorHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func TestFanoutHandler_HandleError(t *testing.T) {
	var buf bytes.Buffer
	spy := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewFanoutHandler(&errorHandler{}, spy))
	logger.Info("should reach spy")

	assert.Contains(t, buf.String(), "should reach spy")
}

func TestContextHandler_CalledPerRecord(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	provider := func() []slog.Attr {
		calls++
		return []slog.Attr{slog.Int("call", calls)}
	}
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil), provider))

	logger.Info("one")
	logger.With("k", "v").Info("two")

	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), "call=1")
	assert.Contains(t, buf.String(), "k=v call=2")
}

func TestKeyValueLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewKeyValueLogger(NewJSONLogger(&buf, "debug"))

	l.Info("ranked candidates", "operation", "oca_targets", "count", 3, 42, "ignored", "dangling")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ranked candidates", entry["message"])
	assert.Equal(t, "oca_targets", entry["operation"])
	assert.EqualValues(t, 3, entry["count"])
	assert.NotContains(t, entry, "dangling")
	assert.Contains(t, entry, "time")
}

func TestNewJSONLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewKeyValueLogger(NewJSONLogger(&buf, "error"))

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewKeyValueLogger(NewJSONLogger(&buf, "nonsense")).Info("defaults to info")
	assert.Contains(t, buf.String(), "defaults to info")
}
