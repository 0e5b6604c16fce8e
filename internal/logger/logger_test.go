package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/variant-insights/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input).String())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{"json stderr", &config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"}, false},
		{"text stdout", &config.LoggingConfig{Level: "debug", Format: "text", Output: "stdout"}, false},
		{"file output", &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "run.log")}, false},
		{"unwritable file", &config.LoggingConfig{Output: filepath.Join(t.TempDir(), "missing", "run.log")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestWithRunAndStep(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	l.WithRun("run-1").WithStep("filter").Infow("rows retained", "rows", 2)
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "rows retained", entry["msg"])
	assert.Equal(t, "run-1", entry["run"])
	assert.Equal(t, "filter", entry["step"])
	assert.EqualValues(t, 2, entry["rows"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	l.Info("hidden")
	l.Warn("visible")
	_ = l.Sync()

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "visible"))
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&config.LoggingConfig{Format: "json"}, &buf)

	l.WithFields(map[string]interface{}{"chart": "bar"}).Info("rendered")
	_ = l.Sync()
	assert.Contains(t, buf.String(), `"chart":"bar"`)
}

func TestNopAndDefault(t *testing.T) {
	NewNop().Info("discarded")
	require.NotNil(t, NewDefault())
}

func TestClose_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.WithRun("run-1").Info("written")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"run":"run-1"`)
}

func TestClose_StreamOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&config.LoggingConfig{Format: "text"}, &buf)
	l.Info("kept")
	assert.NoError(t, l.Close())
	assert.Contains(t, buf.String(), "kept")
}
