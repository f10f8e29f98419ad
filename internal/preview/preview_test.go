package preview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	out, err := r.Render(context.Background(), "Intro", "# Heading\n\nSome *text*.\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Intro</title>")
	assert.Contains(t, out, "Heading</h1>")
	assert.Contains(t, out, "<em>text</em>")
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	out, err := r.Render(context.Background(), "T", "| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestRenderCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer()
	_, err := r.Render(ctx, "X", "text")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderEmbedsStylesheet(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	require.NotEmpty(t, r.css)
	out, err := r.Render(context.Background(), "X", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "<style>")
}
