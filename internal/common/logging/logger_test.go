package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level LogLevel) (Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger, err := NewZapLogger(LogConfig{
		Level:      level,
		Output:     &buf,
		TimeFormat: time.RFC3339,
	})
	require.NoError(t, err)
	return logger, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input %q", tt.input)
	}
}

func TestZapLoggerWritesFields(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.Info("route resolved", String("d_depot", "0142"), Int("matches", 2))

	out := buf.String()
	assert.Contains(t, out, "route resolved")
	assert.Contains(t, out, "0142")
	assert.Contains(t, out, "INFO")
}

func TestZapLoggerLevelFilter(t *testing.T) {
	logger, buf := newBufferLogger(t, WarnLevel)

	logger.Debug("ignored")
	logger.Info("also ignored")
	logger.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "ignored")
	assert.Contains(t, out, "kept")
}

func TestZapLoggerErrorField(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.Error("lookup failed", errors.New("no such depot"))
	assert.Contains(t, buf.String(), "no such depot")
}

func TestWithFields(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.WithFields(String("backend", "sqlite")).Info("store opened")

	out := buf.String()
	assert.Contains(t, out, "store opened")
	assert.Contains(t, out, "sqlite")
}
