// Package preview renders generated markdown sections to HTML for quick
// visual inspection in debug runs. It uses goldmark instead of another
// pandoc round trip so previews work even on partially broken output.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/innodoc/innoconv-mintmod/internal/assets"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates markdown rendering failed.
var ErrRender = errors.New("preview rendering failed")

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// Renderer converts markdown section content into standalone HTML pages.
type Renderer struct {
	md  goldmark.Markdown
	css string
}

// NewRenderer creates a Renderer with GFM extensions and syntax
// highlighting, matching what the content pipeline emits (tables, fenced
// tikz code blocks).
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	// missing stylesheet just means an unstyled preview
	css, _ := assets.LoadStyle(assets.DefaultStyleName)
	return &Renderer{md: md, css: css}
}

// Render converts markdown to a standalone HTML5 document. Goldmark has no
// native context support, so cancellation is handled around the conversion.
func (r *Renderer) Render(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, title, r.css, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
