package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetConsoleWriter(&buf, "INFO", true))

	Log().Debug().Msg("hidden")
	Log().Info().Str("phase", "mix64").Msg("recovered")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "recovered")
	assert.Contains(t, out, "phase=mix64")
	assert.NotContains(t, out, "\x1b[")
}

func TestSetConsoleWriterRejectsLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, SetConsoleWriter(&buf, "loud", true))
}

func TestFormatLevel(t *testing.T) {
	assert.Equal(t, "TRC", formatLevel(true)("trace"))
	assert.Equal(t, "???", formatLevel(true)(nil))
	assert.Equal(t, "\x1b[32mINF\x1b[0m", formatLevel(false)("info"))
}
