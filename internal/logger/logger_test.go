package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"":        zerolog.InfoLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestZerologAdapterWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Debug("Scaffold", "hidden", nil)
	log.Info("Scaffold", "project created", map[string]interface{}{"files": 3})
	log.Error("Scaffold", errors.New("disk full"), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Scaffold", entry["component"])
	assert.Equal(t, "project created", entry["message"])
	assert.Equal(t, float64(3), entry["files"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "disk full", entry["error"])
}

func TestNewFromOptionsWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creator.log")
	log, err := NewFromOptions(Options{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("Config", "loaded", map[string]interface{}{"path": "x"})
	log.Shutdown()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"Config"`)
}

func TestNewFromOptionsRejectsBadLevel(t *testing.T) {
	_, err := NewFromOptions(Options{Level: "shout"})
	assert.Error(t, err)
}
