package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerLatest(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(h).With("component", "worker")

	logger.Info("scan finished")
	logger.Warn("scan failed", "error", "bus closed")
	logger.Info("scan finished again")

	r, ok := h.Latest(slog.LevelWarn)
	require.True(t, ok)
	assert.Equal(t, "scan failed", r.Message)

	r, ok = h.Latest(slog.LevelInfo)
	require.True(t, ok)
	assert.Equal(t, "scan finished again", r.Message)

	_, ok = h.Latest(slog.LevelError)
	assert.False(t, ok)

	assert.Contains(t, buf.String(), "component=worker")
}

func TestHandlerLimit(t *testing.T) {
	h := NewHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
	logger := slog.New(h)
	for i := 0; i < recentLimit*2; i++ {
		logger.Info("tick")
	}
	assert.Len(t, h.recent.records, recentLimit)
}

func TestInit(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "weefee.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	closeLog, err := Init(path, slog.LevelDebug)
	require.NoError(t, err)
	slog.Debug("hello", "ssid", "Cafe")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "stale"), "log file should be truncated")
	assert.Contains(t, string(data), "ssid=Cafe")

	_, ok := Latest(slog.LevelDebug)
	assert.True(t, ok)
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "x.log"), slog.LevelInfo)
	assert.Error(t, err)
}
