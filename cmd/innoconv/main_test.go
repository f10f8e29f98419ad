package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--help"}, &stdout, &stderr)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "Usage: innoconv")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, &stdout, &stderr)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "innoconv")
}

func TestRunMissingSource(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr.String(), "expected exactly one SOURCE")
}

func TestRunUnknownFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-such-flag"}, &stdout, &stderr)
	assert.Equal(t, ExitUsage, code)
}

func TestRunDoctorJSON(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	run([]string{"doctor", "--json"}, &stdout, &stdout)

	var result map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Contains(t, result, "status")
	assert.Contains(t, result, "system")
}
