package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

func TestNewLoggerDefaultLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, &cliFlags{})
	logger.Log(logging.LevelDebug, "hidden")
	logger.Log(logging.LevelInfo, "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewLoggerVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, &cliFlags{verbose: true})
	logger.Log(logging.LevelDebug, "detail")
	assert.Contains(t, buf.String(), "detail")
}

func TestNewLoggerQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, &cliFlags{quiet: true})
	logger.Log(logging.LevelWarning, "hidden")
	logger.Log(logging.LevelError, "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewLoggerJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, &cliFlags{jsonLog: true})
	logger.Log(logging.LevelInfo, "structured")

	line := strings.TrimSpace(buf.String())
	var entry map[string]string
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, logging.LevelInfo, entry["level"])
	assert.Equal(t, "structured", entry["message"])
}
