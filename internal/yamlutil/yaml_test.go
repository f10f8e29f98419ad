package yamlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name"`
	Langs []string `yaml:"langs"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var s sample
	require.NoError(t, UnmarshalStrict([]byte("name: course\nlangs: [de, en]\n"), &s))
	assert.Equal(t, "course", s.Name)
	assert.Equal(t, []string{"de", "en"}, s.Langs)
}

func TestUnmarshalStrictRejectsUnknownField(t *testing.T) {
	t.Parallel()

	var s sample
	assert.Error(t, UnmarshalStrict([]byte("unknown_key: x\n"), &s))
}

func TestUnmarshalStrictValidation(t *testing.T) {
	t.Parallel()

	var s sample
	assert.ErrorIs(t, UnmarshalStrict(nil, &s), ErrNilData)
	assert.ErrorIs(t, UnmarshalStrict([]byte{}, &s), ErrNilData)
	assert.ErrorIs(t, UnmarshalStrict([]byte("name: x"), nil), ErrNilDestination)

	big := make([]byte, MaxInputSize+1)
	assert.ErrorIs(t, UnmarshalStrict(big, &s), ErrInputTooLarge)
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := sample{Name: "course", Langs: []string{"de"}}
	data, err := Marshal(in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, UnmarshalStrict(data, &out))
	assert.Equal(t, in, out)
}
