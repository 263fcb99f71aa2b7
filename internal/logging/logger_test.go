package logging

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLoggerWritesStructuredFields(t *testing.T) {
	var out bytes.Buffer

	logger, err := New(Options{Level: "debug", Format: FormatJSON, Output: &out})
	require.NoError(t, err)

	logger.Info().Str("entry_id", "entry-1").Msg("refreshed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "entry-1", line["entry_id"])
	assert.Equal(t, "refreshed", line["message"])
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var out bytes.Buffer

	logger, err := New(Options{Level: "warn", Format: FormatJSON, Output: &out})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	assert.Empty(t, out.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestNewConsoleLoggerIsDefault(t *testing.T) {
	var out bytes.Buffer

	logger, err := New(Options{Output: &out})
	require.NoError(t, err)

	logger.Info().Msg("hello")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "INF")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log format")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
