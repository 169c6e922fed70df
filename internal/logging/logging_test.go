package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tutor.log")

	log, cleanup, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("quiz finished", zap.String("subject", "ADBMS"), zap.Int("score", 60))
	cleanup()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "quiz finished", rec["msg"])
	assert.Equal(t, "ADBMS", rec["subject"])
	assert.Contains(t, rec, "time")
	assert.Contains(t, rec, "caller")
}

func TestNew_Console(t *testing.T) {
	var console bytes.Buffer
	log, cleanup, err := New(Options{
		File:    filepath.Join(t.TempDir(), "tutor.log"),
		Level:   "debug",
		Console: &console,
	})
	require.NoError(t, err)

	log.Debug("loaded bank")
	cleanup()

	assert.Contains(t, console.String(), "DEBUG")
	assert.Contains(t, console.String(), "loaded bank")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(Options{Level: "info"})
	assert.Error(t, err)
}
