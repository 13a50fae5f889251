package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Config{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	logger.Debug("hidden")
	logger.Info("session started", "minutes", 25)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, "focusflow.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
	assert.Contains(t, string(data), "minutes=25")
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, filepath.Join(dir, "focusflow.log"), logger.Path())
}

func TestDebugMirrorsToConsole(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(Config{Debug: true, Dir: t.TempDir(), Stderr: &console})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	logger.Component("timer").Debug("tick", "remaining", 42)
	assert.Contains(t, console.String(), "tick")
	assert.Contains(t, console.String(), "component=timer")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	assert.Empty(t, logger.Path())
	assert.NoError(t, logger.Close())
}
