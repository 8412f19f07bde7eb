package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ dispatcher.Logger = (*DispatcherLogger)(nil)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestDispatcherLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		log   func(l *DispatcherLogger)
		want  map[string]any
	}{
		{
			level: "DEBUG",
			log:   func(l *DispatcherLogger) { l.Debug("handling event", "command", ":GROUP:ALIGN:", "args", 2) },
			want:  map[string]any{"msg": "handling event", "command": ":GROUP:ALIGN:", "args": float64(2)},
		},
		{
			level: "INFO",
			log:   func(l *DispatcherLogger) { l.Info("saved", "backend", "memory") },
			want:  map[string]any{"msg": "saved", "backend": "memory"},
		},
		{
			level: "ERROR",
			log:   func(l *DispatcherLogger) { l.Error("event failed", "command", ":PROJECTOR:EDIT:") },
			want:  map[string]any{"msg": "event failed", "command": ":PROJECTOR:EDIT:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			tt.log(NewDispatcherLogger(logger))

			entry := decodeLine(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "dispatcher", entry["component"])
			for k, v := range tt.want {
				assert.Equal(t, v, entry[k], k)
			}
		})
	}
}

func TestDispatcherLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	NewDispatcherLogger(logger).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestDispatcherLogger_WithDispatcher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := dispatcher.New(NewDispatcherLogger(logger))
	require.NoError(t, err)
	d.Register(":PING:", func(dispatcher.Event) (any, error) { return "pong", nil }, dispatcher.Logged())

	_, err = d.Dispatch(dispatcher.Event{Command: ":PING:"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "event complete")
	assert.Contains(t, buf.String(), "command=:PING:")
}
