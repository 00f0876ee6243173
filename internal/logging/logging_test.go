package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedPGHandler() *PGHandler {
	return &PGHandler{sink: &pgSink{}}
}

func TestPGHandlerMapsKnownAttributes(t *testing.T) {
	h := bufferedPGHandler()
	logger := slog.New(h).With("request_id", "req-1")

	logger.Error("unexpected error",
		"method", "PUT",
		"path", "/api/adoptions/1/status",
		"user_id", "u-1",
		"error", "boom",
		"latency_ms", 12.6,
		"stack", "goroutine 1",
	)

	require.Len(t, h.sink.buffer, 1)
	entry := h.sink.buffer[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "PUT", entry.Method)
	assert.Equal(t, "/api/adoptions/1/status", entry.Path)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "goroutine 1", extra["stack"])
}

func TestPGHandlerIgnoresBelowError(t *testing.T) {
	h := bufferedPGHandler()
	slog.New(h).Warn("cache miss")
	assert.Empty(t, h.sink.buffer)
}

func TestLatencyMs(t *testing.T) {
	assert.Equal(t, 7, latencyMs(slog.Int64Value(7)))
	assert.Equal(t, 250, latencyMs(slog.DurationValue(250*time.Millisecond)))
	assert.Equal(t, 0, latencyMs(slog.StringValue("fast")))
}

func TestMultiHandlerFansOut(t *testing.T) {
	var info, errs bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("request_id", "req-2")

	logger.Info("adoption created")
	logger.Error("db down")

	assert.Equal(t, 2, bytes.Count(info.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(errs.Bytes(), []byte("\n")))
	assert.Contains(t, errs.String(), `"request_id":"req-2"`)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}
