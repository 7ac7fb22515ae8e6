package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithWriter_LevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("verify", &buf, "warn")

	l.Infof("dropped")
	assert.Zero(t, buf.Len())

	l.Warnf("kept %d", 7)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "verify", line["component"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "kept 7", line["message"])
}

func TestNewWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("x", &buf, "loud")
	l.Debugw("hidden", map[string]any{"a": 1})
	assert.Zero(t, buf.Len())
	l.Infof("shown")
	assert.Contains(t, buf.String(), "shown")
}
