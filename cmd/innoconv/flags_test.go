package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innodoc/innoconv-mintmod/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseFlags([]string{
		"-o", "out", "--to=json", "-l", "en", "--workers=4", "-d", "source",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"source"}, positional)
	assert.Equal(t, "out", flags.outputDirBase)
	assert.Equal(t, "json", flags.outputFormat)
	assert.Equal(t, "en", flags.lang)
	assert.Equal(t, 4, flags.workers)
	assert.True(t, flags.debug)
	assert.False(t, flags.noSplit)
}

func TestParseFlagsUnknown(t *testing.T) {
	t.Parallel()

	_, _, err := parseFlags([]string{"--no-such-flag"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestUsageListsFlags(t *testing.T) {
	t.Parallel()

	text := usage()
	assert.Contains(t, text, "innoconv [flags] SOURCE")
	assert.Contains(t, text, "--output-dir-base")
	assert.Contains(t, text, "--remove-exercises")
}

func TestToJobFlagsWinOverConfig(t *testing.T) {
	t.Parallel()

	flags := &cliFlags{
		outputFormat: "json",
		debug:        true,
	}
	cfg := &config.Config{
		OutputDirBase: "from-config",
		Lang:          "en",
		OutputFormat:  "markdown",
		NoSplit:       true,
	}

	job := toJob(flags, cfg, "src")
	assert.Equal(t, "src", job.Source)
	assert.Equal(t, "from-config", job.OutputDirBase)
	assert.Equal(t, "en", job.Lang)
	assert.Equal(t, "json", job.OutputFormat, "flag beats config")
	assert.True(t, job.Debug)
	assert.True(t, job.NoSplit, "booleans merge with or")
}
