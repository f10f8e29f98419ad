package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yml")
	content := `
output_dir: out
language: en
workers: 4
ignore_exercises: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDirBase)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.IgnoreExercises)
	assert.False(t, cfg.Debug)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("no_such_option: true\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrConfigParse)
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrConfigParse)
}
