package innodoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innodoc/innoconv-mintmod/internal/yamlutil"
)

func TestUpdateManifestCreates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.yml")
	require.NoError(t, UpdateManifest(path, "de", "Vorkurs Mathematik"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, yamlutil.UnmarshalStrict(data, &manifest))
	assert.Equal(t, []string{"de"}, manifest.Languages)
	assert.Equal(t, "Vorkurs Mathematik", manifest.Title["de"])
}

func TestUpdateManifestAddsLanguage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.yml")
	require.NoError(t, UpdateManifest(path, "de", "Vorkurs"))
	require.NoError(t, UpdateManifest(path, "en", "Precourse"))
	// repeated updates must not duplicate the language entry
	require.NoError(t, UpdateManifest(path, "en", "Precourse v2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, yamlutil.UnmarshalStrict(data, &manifest))
	assert.Equal(t, []string{"de", "en"}, manifest.Languages)
	assert.Equal(t, "Vorkurs", manifest.Title["de"])
	assert.Equal(t, "Precourse v2", manifest.Title["en"])
}

func TestUpdateManifestRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.yml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [de\n"), 0o644))
	err := UpdateManifest(path, "de", "X")
	require.Error(t, err)

	// the corrupt file must not be clobbered
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "languages: [de\n", string(data))
}

func TestUpdateManifestRejectsUnknownField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.yml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [de]\nbogus: 1\n"), 0o644))
	require.Error(t, UpdateManifest(path, "de", "X"))
}
