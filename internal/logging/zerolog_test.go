package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dcs-liberation/theater/internal/dispatcher"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "failed to parse log output")
	return entry
}

func TestNewDispatcherLogger(t *testing.T) {
	dl := NewDispatcherLogger(zerolog.New(&bytes.Buffer{}))
	assert.NotNil(t, dl)
}

func TestDispatcherLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	dl.Debug("test message", "key1", "value1", "key2", 42)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "test message", entry["message"])
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(42), entry["key2"]) // JSON numbers are float64
}

func TestDispatcherLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf))

	dl.Info("info message", "status", "ok")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ok", entry["status"])
}

func TestDispatcherLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf))

	dl.Error("handler failed", "command", ":NEAREST_LAND:", "error", "no landmap")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, ":NEAREST_LAND:", entry["command"])
	assert.Equal(t, "no landmap", entry["error"])
}

func TestDispatcherLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	dl.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestDispatcherLogger_OddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf))

	dl.Info("odd", "key", "value", "dangling", 7, "leftover")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(7), entry["dangling"])
	assert.Equal(t, "leftover", entry[BadKey])
}

func TestDispatcherLogger_TypedValues(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf))

	dl.Error("request failed", "error", errors.New("queue full"), "duration", 1500*time.Millisecond, 3, "three")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "queue full", entry["error"])
	assert.Equal(t, float64(1500), entry["duration"])
	assert.Equal(t, "three", entry["3"])
}

func TestNewZerolog(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
	}{
		{"debug", true},
		{"info", false},
		{"bogus", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			dl := NewDispatcherLogger(NewZerolog(&buf, tt.level, "dispatcher"))

			dl.Debug("hidden at info")
			assert.Equal(t, tt.debugSeen, buf.Len() > 0)

			buf.Reset()
			dl.Info("visible")
			entry := decodeEntry(t, &buf)
			assert.Equal(t, "dispatcher", entry["component"])
			assert.Contains(t, entry, "time")
		})
	}
}

func TestDispatcherLogger_ImplementsInterface(t *testing.T) {
	var _ dispatcher.Logger = NewDispatcherLogger(zerolog.Nop())
}
