package mintmod

import (
	"context"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
	"github.com/innodoc/innoconv-mintmod/internal/logging"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

// NewPandocFilter creates a Filter whose fragment parsing shells out to
// pandoc via runner and re-applies the filter to the result.
func NewPandocFilter(opts Options, runner pandoc.Runner, logger logging.Logger) *Filter {
	parser := &pandocParser{runner: runner}
	f := New(opts, parser, logger)
	parser.filter = f
	return f
}

type pandocParser struct {
	runner pandoc.Runner
	filter *Filter
}

// ParseFragment converts a source fragment to pandoc JSON and filters it.
// The filter tracks recursion depth; fragments produced by handlers can
// themselves contain mintmod constructs.
func (p *pandocParser) ParseFragment(ctx context.Context, source, fromFormat string) ([]ast.Block, error) {
	out, err := pandoc.Convert(ctx, p.runner, p.filter.sourceDir, []byte(source), fromFormat, "json")
	if err != nil {
		return nil, err
	}
	doc, err := ast.DecodeDoc(out)
	if err != nil {
		return nil, err
	}
	return p.filter.Blocks(ctx, doc)
}
