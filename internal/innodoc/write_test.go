package innodoc

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

// fakeRunner records pandoc invocations and returns canned output.
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	stdout []byte
	err    error
}

func (r *fakeRunner) Run(_ context.Context, _ string, _ []byte, args ...string) ([]byte, string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, args)
	r.mu.Unlock()
	return r.stdout, "", r.err
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, ResolveWorkers(3))
	derived := ResolveWorkers(0)
	assert.GreaterOrEqual(t, derived, minWorkers)
	assert.LessOrEqual(t, derived, maxWorkers)
}

func TestWriteSectionsJSON(t *testing.T) {
	t.Parallel()

	sections := []*Section{
		{
			ID:      "000-intro",
			Title:   strInlines("Intro"),
			Content: []any{para("intro text")},
			Children: []*Section{{
				ID:      "000-basics",
				Title:   strInlines("Basics"),
				Content: []any{para("basics text")},
			}},
		},
		{
			ID:    "001-final",
			Title: strInlines("Final"),
		},
	}

	dir := t.TempDir()
	w := NewWriter(nil, logging.Nop, FormatJSON, 2)
	require.NoError(t, w.WriteSections(context.Background(), sections, dir))

	// the first top-level section writes into the base directory itself
	data, err := os.ReadFile(filepath.Join(dir, "content.json"))
	require.NoError(t, err)
	var blocks []any
	require.NoError(t, json.Unmarshal(data, &blocks))
	require.Len(t, blocks, 1)

	assert.FileExists(t, filepath.Join(dir, "000-basics", "content.json"))
	assert.FileExists(t, filepath.Join(dir, "001-final", "content.json"))

	// empty sections still get a content file with an empty block list
	data, err = os.ReadFile(filepath.Join(dir, "001-final", "content.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// content is detached so a toc serialization stays lean
	for _, s := range sections {
		assert.Nil(t, s.Content)
	}
}

func TestWriteSectionsMarkdown(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: []byte("---\ntitle: Intro\n---\n\nintro text\n")}
	sections := []*Section{{
		ID:      "000-intro",
		Title:   strInlines("Intro"),
		Type:    "test",
		Content: []any{para("intro text")},
	}}

	dir := t.TempDir()
	w := NewWriter(runner, logging.Nop, FormatMarkdown, 1)
	require.NoError(t, w.WriteSections(context.Background(), sections, dir))

	data, err := os.ReadFile(filepath.Join(dir, "content.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "intro text")

	require.Len(t, runner.calls, 1)
	args := strings.Join(runner.calls[0], " ")
	assert.Contains(t, args, "--from=json")
	assert.Contains(t, args, "--to=markdown+yaml_metadata_block")
	assert.Contains(t, args, "--standalone")
}

func TestWriteSectionsPropagatesErrors(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: os.ErrPermission}
	sections := []*Section{{ID: "000-x", Title: strInlines("X")}}

	w := NewWriter(runner, logging.Nop, FormatMarkdown, 1)
	err := w.WriteSections(context.Background(), sections, t.TempDir())
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestWriteTOC(t *testing.T) {
	t.Parallel()

	sections := []*Section{{
		ID:    "000-intro",
		Title: strInlines("Intro"),
		Children: []*Section{{
			ID:    "000-basics",
			Title: strInlines("Basics"),
		}},
	}}

	path := filepath.Join(t.TempDir(), "toc.json")
	require.NoError(t, WriteTOC(path, sections))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "000-intro", decoded[0]["id"])
	assert.NotContains(t, decoded[0], "content")
}
