package mintmod

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

// ErrRecursionDepth indicates runaway fragment recursion, usually caused by
// a mintmod construct expanding to itself.
var ErrRecursionDepth = errors.New("fragment recursion depth exceeded")

// FragmentParser parses a LaTeX (or HTML) source fragment into filtered
// blocks. Handlers use it for environment bodies and file includes; the
// production implementation shells out to pandoc and re-applies the filter.
type FragmentParser interface {
	ParseFragment(ctx context.Context, source, fromFormat string) ([]ast.Block, error)
}

// Options control filter behavior.
type Options struct {
	Lang            string
	Debug           bool
	IgnoreExercises bool
	RemoveExercises bool
	// SourceDir resolves \input and roulette exercise includes.
	SourceDir string
}

// Filter rewrites mintmod constructs in a pandoc document.
type Filter struct {
	opts       Options
	parser     FragmentParser
	logger     logging.Logger
	doc        *ast.Doc
	remembered map[string]ast.Node
	sourceDir  string
	depth      int
}

// New creates a Filter. parser may be nil if no handler needs fragment
// parsing (only true in tests); logger may be nil to discard logs.
func New(opts Options, parser FragmentParser, logger logging.Logger) *Filter {
	if logger == nil {
		logger = logging.Nop
	}
	return &Filter{
		opts:       opts,
		parser:     parser,
		logger:     logger,
		remembered: make(map[string]ast.Node),
		sourceDir:  opts.SourceDir,
	}
}

// Apply runs the filter over the document and finalizes it: empty paragraphs
// are dropped and, at the outermost level, left-over annotation elements are
// removed.
func (f *Filter) Apply(ctx context.Context, doc *ast.Doc) error {
	f.doc = doc
	if err := doc.Transform(func(n ast.Node) ([]ast.Node, error) {
		return f.dispatch(ctx, n)
	}); err != nil {
		return err
	}
	if err := removeEmptyParagraphs(doc); err != nil {
		return err
	}
	if f.depth == 0 {
		// annotation removal must not happen while parsing fragments:
		// parents still need to extract identifiers from them
		if err := removeAnnotations(doc); err != nil {
			return err
		}
	}
	return nil
}

// Blocks filters a block list in place of a full document. Used when
// fragment parsing re-enters the filter. Remembered elements are scoped to
// the fragment: a \MLabel inside an environment body must not attach to a
// header outside of it.
func (f *Filter) Blocks(ctx context.Context, doc *ast.Doc) ([]ast.Block, error) {
	f.depth++
	savedDoc, savedRemembered := f.doc, f.remembered
	f.remembered = make(map[string]ast.Node)
	defer func() {
		f.doc, f.remembered = savedDoc, savedRemembered
		f.depth--
	}()
	if err := f.Apply(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Blocks, nil
}

func (f *Filter) dispatch(ctx context.Context, n ast.Node) ([]ast.Node, error) {
	switch v := n.(type) {
	case *ast.Math:
		if _, err := handleMath(v); err != nil {
			return nil, err
		}
		return nil, nil
	case *ast.RawBlock:
		if !isLaTeX(v.Format) {
			return nil, nil
		}
		if strings.HasPrefix(v.Text, `\begin`) {
			return f.dispatchEnvironment(ctx, v)
		}
		return f.dispatchCommand(ctx, v.Text, v)
	case *ast.RawInline:
		if !isLaTeX(v.Format) {
			return nil, nil
		}
		return f.dispatchCommand(ctx, v.Text, v)
	}
	return nil, nil
}

// pandoc tags raw TeX as "latex" or "tex" depending on version
func isLaTeX(format string) bool {
	return format == "latex" || format == "tex"
}

func (f *Filter) dispatchCommand(ctx context.Context, text string, elem ast.Node) ([]ast.Node, error) {
	name, args, err := parseCommand(text)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSuffix(name, "*")

	if f.opts.RemoveExercises && exerciseNames[name] {
		return []ast.Node{}, nil
	}
	if handler, ok := commandHandlers[name]; ok {
		return handler(ctx, f, args, elem)
	}
	return f.unknownCommand(name, text, elem), nil
}

func (f *Filter) dispatchEnvironment(ctx context.Context, elem *ast.RawBlock) ([]ast.Node, error) {
	env, err := parseEnvironment(elem.Text)
	if err != nil {
		return nil, err
	}

	if f.opts.RemoveExercises && exerciseNames[env.name] {
		return []ast.Node{}, nil
	}
	if handler, ok := environmentHandlers[env.name]; ok {
		return handler(ctx, f, env, elem)
	}
	return f.unknownEnvironment(env, elem), nil
}

func (f *Filter) unknownCommand(name, text string, elem ast.Node) []ast.Node {
	if !(f.opts.IgnoreExercises && exerciseNames[name]) {
		f.logger.Log(logging.LevelInfo, fmt.Sprintf("Could not handle command %s.", name))
	}
	if !f.opts.Debug {
		return nil
	}

	attr := ast.Attr{
		Classes: append(append([]string{}, elementClasses["DEBUG_UNKNOWN_CMD"]...), strings.ToLower(name)),
		KVs:     [][2]string{{"style", "background: " + colorUnknownCmd + ";"}},
	}
	msg := []ast.Inline{
		&ast.Strong{Content: ast.Destringify("Unhandled command:")},
		&ast.Space{},
		&ast.Code{Text: text},
	}
	if ast.IsBlock(elem) {
		return []ast.Node{&ast.Div{Attr: attr, Content: []ast.Block{&ast.Para{Content: msg}}}}
	}
	return []ast.Node{&ast.Span{Attr: attr, Content: msg}}
}

func (f *Filter) unknownEnvironment(env environment, elem *ast.RawBlock) []ast.Node {
	if !(f.opts.IgnoreExercises && exerciseNames[env.name]) {
		f.logger.Log(logging.LevelInfo, fmt.Sprintf("Could not handle environment %s.", env.name))
	}
	if !f.opts.Debug {
		return nil
	}

	attr := ast.Attr{
		Classes: append(append([]string{}, elementClasses["DEBUG_UNKNOWN_ENV"]...), strings.ToLower(env.name)),
		KVs:     [][2]string{{"style", "background: " + colorUnknownEnv + ";"}},
	}
	msg := &ast.Para{Content: []ast.Inline{
		&ast.Strong{Content: ast.Destringify("Unhandled environment:")},
		&ast.LineBreak{},
		&ast.Code{Text: elem.Text},
	}}
	return []ast.Node{&ast.Div{Attr: attr, Content: []ast.Block{msg}}}
}

// remember stores an element for later reference (e.g. the last header for
// \MLabel).
func (f *Filter) remember(key string, n ast.Node) {
	f.remembered[key] = n
}

// recall retrieves a remembered element; unless keep is set the element is
// forgotten.
func (f *Filter) recall(key string, keep bool) ast.Node {
	n, ok := f.remembered[key]
	if !ok {
		return nil
	}
	if !keep {
		delete(f.remembered, key)
	}
	return n
}

func (f *Filter) parseFragment(ctx context.Context, source, fromFormat string) ([]ast.Block, error) {
	if f.parser == nil {
		return nil, errors.New("mintmod: no fragment parser configured")
	}
	if f.depth > maxRecursionDepth {
		return nil, ErrRecursionDepth
	}
	return f.parser.ParseFragment(ctx, source, fromFormat)
}

// parseFragmentInlines parses a fragment and returns the inline content of
// its first block.
func (f *Filter) parseFragmentInlines(ctx context.Context, source string) ([]ast.Inline, error) {
	blocks, err := f.parseFragment(ctx, source, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	switch first := blocks[0].(type) {
	case *ast.Para:
		return first.Content, nil
	case *ast.Plain:
		return first.Content, nil
	}
	return []ast.Inline{ast.ToInline(blocks[0], nil, nil)}, nil
}

// Fragment source formats.
const (
	FormatLaTeX = "latex+raw_tex"
	FormatHTML  = "html"
)

// blockWrap wraps an inline in a Plain when the element it replaces was a
// block. Pandoc expects block replacements for block elements.
func blockWrap(n ast.Inline, orig ast.Node) ast.Node {
	if ast.IsBlock(orig) {
		return &ast.Plain{Content: []ast.Inline{n}}
	}
	return n
}

func removeEmptyParagraphs(doc *ast.Doc) error {
	return doc.Transform(func(n ast.Node) ([]ast.Node, error) {
		if para, ok := n.(*ast.Para); ok && len(para.Content) == 0 {
			return []ast.Node{}, nil
		}
		return nil, nil
	})
}

// removeAnnotations drops left-over identifier carrier Divs created by
// \MLabel and \MDeclareSiteUXID in child fragments. Spans stay: inline
// index-label anchors must survive into the output so references to them
// can be resolved.
func removeAnnotations(doc *ast.Doc) error {
	return doc.Transform(func(n ast.Node) ([]ast.Node, error) {
		if div, ok := n.(*ast.Div); ok {
			if div.Attr.HasClass(indexLabelPrefix) || div.Attr.HasClass(siteUXIDPrefix) {
				return []ast.Node{}, nil
			}
		}
		return nil, nil
	})
}
