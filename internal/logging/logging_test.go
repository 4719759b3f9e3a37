package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name        string
		logsDir     string
		serviceName string
		want        string
	}{
		{
			name:        "basic path",
			logsDir:     "theaterlogs",
			serviceName: "theater",
			want:        filepath.Join("theaterlogs", "theater.20260212_213836.log"),
		},
		{
			name:        "relative path with dot",
			logsDir:     "./theaterlogs",
			serviceName: "theater",
			want:        filepath.Join(".", "theaterlogs", "theater.20260212_213836.log"),
		},
		{
			name:        "absolute path",
			logsDir:     filepath.Join("/var", "log", "theater"),
			serviceName: "theater",
			want:        filepath.Join("/var", "log", "theater", "theater.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.serviceName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theater.log")

	w := OpenLogFile(path, 0, 0)
	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
