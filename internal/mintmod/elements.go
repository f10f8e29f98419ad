package mintmod

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
)

// descriptionWidth bounds image titles derived from figure descriptions.
const descriptionWidth = 125

// createHeader builds a header element and remembers it so a later \MLabel
// or \MSetSectionID can attach an identifier.
func (f *Filter) createHeader(ctx context.Context, title string, level int, parseText bool, identifier string) (*ast.Header, error) {
	var content []ast.Inline
	if parseText {
		inlines, err := f.parseFragmentInlines(ctx, title)
		if err != nil {
			return nil, err
		}
		content = inlines
	} else {
		content = ast.Destringify(title)
	}
	header := &ast.Header{
		Level:   level,
		Attr:    ast.NewAttr(identifier),
		Content: content,
	}
	f.remember("label", header)
	return header, nil
}

// createContentBox parses an environment body into a classed Div,
// extracting an identifier when the body carried a \MLabel or
// \MDeclareSiteUXID annotation.
func (f *Filter) createContentBox(ctx context.Context, content string, classes []string) (*ast.Div, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: content box without classes", ErrParse)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content box without content", ErrParse)
	}
	blocks, err := f.parseFragment(ctx, content, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	div := &ast.Div{Attr: ast.NewAttr("", classes...), Content: blocks}
	if identifier := extractIdentifier(blocks); identifier != "" {
		div.Attr.Identifier = identifier
	}
	return div, nil
}

// createImage builds an image element; in block context it is wrapped in a
// figure Div together with its description.
func (f *Filter) createImage(ctx context.Context, filename, descr string, elem ast.Node, addDescr bool) (ast.Node, error) {
	img := &ast.Image{
		Attr:   ast.Attr{Classes: elementClasses["IMAGE"]},
		Target: filename,
	}

	var descrBlocks []ast.Block
	if addDescr {
		var err error
		descrBlocks, err = f.parseFragment(ctx, descr, FormatLaTeX)
		if err != nil {
			return nil, err
		}
		nodes := make([]ast.Node, len(descrBlocks))
		for i, b := range descrBlocks {
			nodes[i] = b
		}
		img.Title = shorten(strings.TrimSpace(ast.Stringify(nodes...)), descriptionWidth)
	} else {
		img.Title = descr
	}

	if ast.IsBlock(elem) {
		figure := &ast.Div{
			Attr:    ast.Attr{Classes: elementClasses["FIGURE"]},
			Content: []ast.Block{&ast.Plain{Content: []ast.Inline{img}}},
		}
		f.remember("label", figure)
		if addDescr && len(descrBlocks) > 0 {
			figure.Content = append(figure.Content, descrBlocks[0])
		}
		return figure, nil
	}
	f.remember("label", img)
	return img, nil
}

// shorten collapses whitespace and truncates at a word boundary, appending
// "..." when content was cut.
func shorten(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= width {
		return s
	}
	const placeholder = "..."
	cut := width - len(placeholder)
	if idx := strings.LastIndex(s[:cut+1], " "); idx > 0 {
		cut = idx
	}
	return strings.TrimRight(s[:cut], " ") + placeholder
}

// extractIdentifier pulls an identifier out of annotation elements created
// by \MLabel/\MDeclareSiteUXID in child fragments. Only the first elements
// are considered; a label annotation takes precedence over a site UXID.
func extractIdentifier(content []ast.Block) string {
	identifier := ""
	for _, prefix := range []string{siteUXIDPrefix, indexLabelPrefix} {
		for idx := 0; idx < 3 && idx < len(content); idx++ {
			attr := ast.AttrPtr(content[idx])
			if attr == nil || !attr.HasClass(prefix) {
				continue
			}
			if id, ok := strings.CutPrefix(attr.Identifier, prefix+"-"); ok && id != "" {
				identifier = id
			}
		}
	}
	return identifier
}

// questionSpecs define, per question command, the named attributes its
// positional arguments map to ("uxid" becomes the identifier) and the
// validation kind attached to the element.
var questionSpecs = map[string]struct {
	argNames   []string
	validation string
	checkbox   bool
}{
	"MLQuestion": {
		argNames:   []string{"length", "solution", "uxid"},
		validation: "exact",
	},
	"MLParsedQuestion": {
		argNames:   []string{"length", "solution", "precision", "uxid"},
		validation: "parsed",
	},
	"MLFunctionQuestion": {
		argNames:   []string{"length", "solution", "supporting-points", "variables", "precision", "uxid"},
		validation: "function",
	},
	"MLSpecialQuestion": {
		argNames:   []string{"length", "solution", "supporting-points", "variables", "precision", "special-type", "uxid"},
		validation: "special",
	},
	"MLSimplifyQuestion": {
		argNames:   []string{"length", "solution", "supporting-points", "variables", "precision", "simplification-code", "uxid"},
		validation: "simplify",
	},
	"MLCheckbox": {
		argNames:   []string{"solution", "uxid"},
		validation: "boolean",
		checkbox:   true,
	},
	"MLIntervalQuestion": {
		argNames:   []string{"length", "solution", "precision", "uxid"},
		validation: "interval",
	},
}

// questionElement builds the generic element for a question command: a Div
// in block context, a Span otherwise, with question classes and named
// attributes.
func (f *Filter) questionElement(name string, args []string, elem ast.Node) (ast.Node, error) {
	spec, ok := questionSpecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown question command %q", ErrParse, name)
	}
	if len(args) != len(spec.argNames) {
		return nil, fmt.Errorf("%w: \\%s expects %d arguments, got %d", ErrParse, name, len(spec.argNames), len(args))
	}

	attr := ast.Attr{Classes: append(append([]string{}, elementClasses["QUESTION"]...), "text")}
	if spec.checkbox {
		attr.Classes = append(append([]string{}, elementClasses["QUESTION"]...), "checkbox")
	}
	for i, argName := range spec.argNames {
		if argName == "uxid" {
			attr.Identifier = args[i]
			continue
		}
		value := args[i]
		if argName == "simplification-code" {
			value = convertSimplificationCode(value)
		}
		attr.KVs = append(attr.KVs, [2]string{argName, value})
	}
	attr.KVs = append(attr.KVs, [2]string{"validation", spec.validation})

	points := defaultExercisePoints
	if p, ok := f.recall("points", true).(*ast.Str); ok {
		points = p.Text
	}
	attr.KVs = append(attr.KVs, [2]string{"points", points})

	if ast.IsBlock(elem) {
		return &ast.Div{Attr: attr}, nil
	}
	return &ast.Span{Attr: attr}, nil
}

// convertSimplificationCode decodes the binary simplification flags into
// comma-joined string flags. Non-numeric input passes through unchanged.
func convertSimplificationCode(code string) string {
	num, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return code
	}

	var flags []string
	switch num & 15 {
	case 1:
		flags = append(flags, "no-brackets")
	case 2:
		flags = append(flags, "factor-notation")
	case 3:
		flags = append(flags, "sum-notation")
	}
	codeFlags := []struct {
		bit  int
		flag string
	}{
		{16, "only-one-slash"},
		{32, "antiderivative"},
		{64, "no-sqrt"},
		{128, "no-abs"},
		{256, "no-fractions-no-powers"},
		{512, "special-support-points"},
		{1024, "only-natural-number"},
		{2048, "one-power-no-mult-or-div"},
	}
	for _, cf := range codeFlags {
		if num&cf.bit == cf.bit {
			flags = append(flags, cf.flag)
		}
	}
	return strings.Join(flags, ",")
}
