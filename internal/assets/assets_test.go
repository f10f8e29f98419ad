package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	css, err := LoadStyle(DefaultStyleName)
	require.NoError(t, err)
	assert.NotEmpty(t, css)
}

func TestLoadStyleUnknown(t *testing.T) {
	t.Parallel()

	_, err := LoadStyle("no-such-style")
	require.ErrorIs(t, err, ErrStyleNotFound)
}

func TestLoadStyleRejectsPathCharacters(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "../preview", "a/b", `a\b`, "preview.css"} {
		_, err := LoadStyle(name)
		assert.ErrorIs(t, err, ErrInvalidAssetName, name)
	}
}
