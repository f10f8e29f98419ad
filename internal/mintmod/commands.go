package mintmod

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

// commandFunc handles a single mintmod command occurrence. args are the
// brace arguments, elem the raw element being replaced.
type commandFunc func(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error)

var commandHandlers map[string]commandFunc

// The map is populated in init to allow handlers to reference each other.
func init() {
	commandHandlers = map[string]commandFunc{
		// file inclusion: disabled in pandoc's raw_tex mode, so handled here
		"input": handleInput,

		// sections
		"MSection":            handleMSection,
		"MSubsection":         handleMSubsection,
		"MSubsubsection":      headerHandler(4),
		"MSubsubsectionx":     headerHandler(4),
		"MTitle":              headerHandler(4),
		"MSubsubsubsectionx":  headerHandler(4),

		// metadata
		"MSubject":    handleMSubject,
		"MSetSubject": handleMSetSubject,

		// identifiers
		"MDeclareSiteUXID": handleMDeclareSiteUXID,
		"MLabel":           handleMLabel,
		"MCopyrightLabel":  handleMLabel,
		"MSetSectionID":    handleMSetSectionID,

		// links
		"MRef":     handleMRef,
		"MSRef":    handleMSRef,
		"MNRef":    handleMNRef,
		"MExtLink": handleMExtLink,

		// index
		"MEntry": handleMEntry,
		"MIndex": handleMIndex,

		// media
		"MGraphics":      handleMGraphics,
		"MGraphicsSolo":  handleMGraphicsSolo,
		"MUGraphics":     handleMUGraphics,
		"MUGraphicsSolo": handleMGraphicsSolo,
		"MYoutubeVideo":  handleMYoutubeVideo,
		"MVideo":         handleMVideo,
		"MTikzAuto":      handleMTikzAuto,

		// questions
		"MLQuestion":               questionHandler("MLQuestion"),
		"MLParsedQuestion":         questionHandler("MLParsedQuestion"),
		"MLFunctionQuestion":       questionHandler("MLFunctionQuestion"),
		"MLSpecialQuestion":        questionHandler("MLSpecialQuestion"),
		"MLSimplifyQuestion":       questionHandler("MLSimplifyQuestion"),
		"MLCheckbox":               questionHandler("MLCheckbox"),
		"MLIntervalQuestion":       questionHandler("MLIntervalQuestion"),
		"MGroupButton":             noopHandler,
		"MSetPoints":               handleMSetPoints,
		"MDirectRouletteExercises": handleMDirectRouletteExercises,

		// misc elements
		"special":       handleSpecial,
		"MInputHint":    handleMInputHint,
		"MEquationItem": handleMEquationItem,

		// math commands that also occur in text
		"MZXYZhltrennzeichen": handleMZXYZhltrennzeichen,
		"MZahl":               handleMZahl,

		// simple substitutions
		"glqq":   strHandler("„"),
		"grqq":   strHandler("“"),
		"quad":   spaceHandler,
		"MBlank": spaceHandler,

		// formatting
		"modstextbf": handleModsTextbf,
		"modsemph":   handleModsEmph,
		"highlight":  handleHighlight,
		"newline":    handleNewline,

		// display-related and site-generator commands without innodoc
		// counterpart
		"MModStartBox":                    noopHandler,
		"MPragma":                         noopHandler,
		"vspace":                          noopHandler,
		"newpage":                         noopHandler,
		"MPrintIndex":                     noopHandler,
		"MContentTable":                   noopHandler,
		"MGlobalStart":                    noopHandler,
		"MPullSite":                       noopHandler,
		"MGlobalChapterTag":               noopHandler,
		"MGlobalConfTag":                  noopHandler,
		"MGlobalLogoutTag":                noopHandler,
		"MGlobalLoginTag":                 noopHandler,
		"MGlobalLocationTag":              noopHandler,
		"MGlobalDataTag":                  noopHandler,
		"MGlobalSearchTag":                noopHandler,
		"MGlobalFavoTag":                  noopHandler,
		"MGlobalSTestTag":                 noopHandler,
		"MWatermarkSettings":              noopHandler,
		"smallskip":                       noopHandler,
		"medskip":                         noopHandler,
		"bigskip":                         noopHandler,
		"hspace":                          noopHandler,
		"clearpage":                       noopHandler,
		"noindent":                        noopHandler,
		"MCopyrightCollection":            noopHandler,
		"MFormelZoomHint":                 noopHandler,
		"jHTMLHinweisEingabeFunktionen":   noopHandler,
		"jHTMLHinweisEingabeFunktionenExp": noopHandler,
	}
}

func noopHandler(context.Context, *Filter, []string, ast.Node) ([]ast.Node, error) {
	return []ast.Node{}, nil
}

func strHandler(text string) commandFunc {
	return func(_ context.Context, _ *Filter, _ []string, elem ast.Node) ([]ast.Node, error) {
		return []ast.Node{blockWrap(&ast.Str{Text: text}, elem)}, nil
	}
}

func spaceHandler(_ context.Context, _ *Filter, _ []string, elem ast.Node) ([]ast.Node, error) {
	return []ast.Node{blockWrap(&ast.Space{}, elem)}, nil
}

func headerHandler(level int) commandFunc {
	return func(ctx context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
		header, err := f.createHeader(ctx, firstArg(args), level, false, "")
		if err != nil {
			return nil, err
		}
		return []ast.Node{header}, nil
	}
}

func questionHandler(name string) commandFunc {
	return func(_ context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
		q, err := f.questionElement(name, args, elem)
		if err != nil {
			return nil, err
		}
		return []ast.Node{q}, nil
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func handleInput(ctx context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	path := filepath.Join(f.sourceDir, firstArg(args))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("including %q: %w", path, err)
	}
	// includes are resolved relative to the included file
	prevDir := f.sourceDir
	f.sourceDir = filepath.Dir(path)
	defer func() { f.sourceDir = prevDir }()

	blocks, err := f.parseFragment(ctx, string(content), FormatLaTeX)
	if err != nil {
		return nil, err
	}
	return blockNodes(blocks), nil
}

func handleMSection(ctx context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	header, err := f.createHeader(ctx, firstArg(args), 1, false, "")
	if err != nil {
		return nil, err
	}
	return []ast.Node{header}, nil
}

// finalTestTitles are headings handled by the \MTest environment instead.
var finalTestTitles = map[string]bool{
	"Abschlusstest":                          true,
	"Final Test":                             true,
	"Test 1: Abzugebender Teil":              true,
	"Test 1: Graded Part To Be Submitted":    true,
}

// sampleTestTitles get a fixed legacy identifier.
var sampleTestTitles = map[string]bool{
	"Test 1: Einführender Teil": true,
	"Test 1: Sample Part":       true,
}

func handleMSubsection(ctx context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	title := firstArg(args)
	if finalTestTitles[title] {
		return []ast.Node{}, nil
	}
	header, err := f.createHeader(ctx, title, 2, false, "")
	if err != nil {
		return nil, err
	}
	if sampleTestTitles[title] {
		header.Attr.Identifier = "L_TEST01"
	}
	return []ast.Node{header}, nil
}

func handleMSubject(ctx context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	if _, ok := f.doc.Meta["title"]; !ok {
		f.doc.Meta["title"] = ast.MetaString(firstArg(args))
	}
	header, err := f.createHeader(ctx, firstArg(args), 1, false, "")
	if err != nil {
		return nil, err
	}
	return []ast.Node{header}, nil
}

func handleMSetSubject(_ context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	subject, ok := mintmodSubjects[firstArg(args)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrParse, firstArg(args))
	}
	f.doc.Meta["subject"] = ast.MetaString(subject)
	return []ast.Node{}, nil
}

// handleMDeclareSiteUXID emits a hidden annotation element. The command can
// occur inside an environment body that is parsed separately; the parent
// extracts the identifier from the annotation (extractIdentifier) since the
// child cannot reach the enclosing tree.
func handleMDeclareSiteUXID(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	return []ast.Node{annotationElement(siteUXIDPrefix, firstArg(args), elem)}, nil
}

func handleMLabel(_ context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	identifier := firstArg(args)

	// labels in test sections would clobber the previous section caption
	if strings.Contains(identifier, "Abschlusstest") || strings.Contains(identifier, "Ausgangstest") {
		return []ast.Node{}, nil
	}

	if target := f.recall("label", false); target != nil {
		if ast.SetIdentifier(target, identifier) {
			return []ast.Node{}, nil
		}
	}
	return []ast.Node{annotationElement(indexLabelPrefix, identifier, elem)}, nil
}

func handleMSetSectionID(_ context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	if target := f.recall("label", false); target != nil {
		ast.SetIdentifier(target, firstArg(args))
	}
	return []ast.Node{}, nil
}

func annotationElement(prefix, identifier string, elem ast.Node) ast.Node {
	attr := ast.Attr{
		Identifier: prefix + "-" + identifier,
		Classes:    []string{prefix},
		KVs:        [][2]string{{"hidden", "hidden"}},
	}
	if ast.IsBlock(elem) {
		return &ast.Div{Attr: attr}
	}
	return &ast.Span{Attr: attr}
}

func handleMRef(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	link := &ast.Link{
		Attr:   ast.Attr{KVs: [][2]string{{"data-mref", "true"}}},
		Target: "#" + firstArg(args),
	}
	return []ast.Node{blockWrap(link, elem)}, nil
}

func handleMSRef(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf(`%w: \MSRef needs 2 arguments`, ErrParse)
	}
	link := &ast.Link{
		Attr:    ast.Attr{KVs: [][2]string{{"data-msref", "true"}}},
		Content: ast.Destringify(args[1]),
		Target:  "#" + args[0],
	}
	return []ast.Node{blockWrap(link, elem)}, nil
}

func handleMNRef(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	link := &ast.Link{
		Attr:   ast.Attr{KVs: [][2]string{{"data-mnref", "true"}}},
		Target: firstArg(args),
	}
	return []ast.Node{blockWrap(link, elem)}, nil
}

func handleMExtLink(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf(`%w: \MExtLink needs 2 arguments`, ErrParse)
	}
	link := &ast.Link{
		Content: ast.Destringify(args[1]),
		Target:  args[0],
	}
	return []ast.Node{blockWrap(link, elem)}, nil
}

func handleMEntry(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf(`%w: \MEntry needs 2 arguments`, ErrParse)
	}
	if ast.IsBlock(elem) {
		f.logger.Log(logging.LevelWarning, fmt.Sprintf("Warning: Expected Inline for MEntry: %v", args))
	}

	// the concept can contain LaTeX
	concept := applyMathSubstitutions(args[1])
	content, err := f.parseFragmentInlines(ctx, args[0])
	if err != nil {
		return nil, err
	}
	span := &ast.Span{
		Attr:    ast.Attr{KVs: [][2]string{{indexAttribute, concept}}},
		Content: []ast.Inline{&ast.Strong{Content: content}},
	}
	return []ast.Node{blockWrap(span, elem)}, nil
}

func handleMIndex(_ context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if ast.IsBlock(elem) {
		f.logger.Log(logging.LevelWarning, fmt.Sprintf("Warning: Expected Inline for MIndex: %v", args))
	}
	concept := applyMathSubstitutions(firstArg(args))
	span := &ast.Span{
		Attr: ast.Attr{KVs: [][2]string{{indexAttribute, concept}, {"hidden", "hidden"}}},
	}
	return []ast.Node{blockWrap(span, elem)}, nil
}

// handleMGraphics embeds an image with title: \MGraphics{img.png}{scale=1}{title}
func handleMGraphics(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf(`%w: \MGraphics needs 3 arguments`, ErrParse)
	}
	img, err := f.createImage(ctx, args[0], args[2], elem, true)
	if err != nil {
		return nil, err
	}
	return []ast.Node{img}, nil
}

// handleMGraphicsSolo embeds an image without title, using the filename as
// image title.
func handleMGraphicsSolo(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	img, err := f.createImage(ctx, firstArg(args), firstArg(args), elem, false)
	if err != nil {
		return nil, err
	}
	return []ast.Node{img}, nil
}

func handleMUGraphics(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	return handleMGraphics(ctx, f, args, elem)
}

func handleMYoutubeVideo(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf(`%w: \MYoutubeVideo needs 4 arguments`, ErrParse)
	}
	title, url := args[0], args[3]
	link := &ast.Link{
		Attr:    ast.Attr{Classes: elementClasses["MYOUTUBE_VIDEO"]},
		Content: ast.Destringify(title),
		Target:  url,
		Title:   title,
	}
	return []ast.Node{blockWrap(link, elem)}, nil
}

func handleMVideo(_ context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf(`%w: \MVideo needs 2 arguments`, ErrParse)
	}
	link := &ast.Link{
		Attr:    ast.Attr{Classes: elementClasses["MVIDEO"]},
		Content: ast.Destringify(args[1]),
		Target:  args[0] + ".mp4",
		Title:   args[1],
	}
	f.remember("label", link)
	return []ast.Node{blockWrap(link, elem)}, nil
}

// handleMTikzAuto turns TikZ code into a figure-classed CodeBlock; rendering
// happens downstream.
func handleMTikzAuto(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if !ast.IsBlock(elem) {
		return nil, fmt.Errorf(`%w: \MTikzAuto must be a block element`, ErrParse)
	}
	code := stripHashLineRe.ReplaceAllString(firstArg(args), "")
	for _, sub := range tikzSubstitutions {
		code = sub.re.ReplaceAllString(code, sub.repl)
	}
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimRight(line, "\r") != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	codeBlock := &ast.CodeBlock{
		Attr: ast.Attr{Classes: elementClasses["MTIKZAUTO"]},
		Text: strings.Join(lines, "\n"),
	}
	div := &ast.Div{
		Attr:    ast.Attr{Classes: elementClasses["FIGURE"]},
		Content: []ast.Block{codeBlock},
	}
	return []ast.Node{div}, nil
}

func handleMSetPoints(_ context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	f.remember("points", &ast.Str{Text: firstArg(args)})
	return []ast.Node{}, nil
}

func handleMDirectRouletteExercises(ctx context.Context, f *Filter, args []string, _ ast.Node) ([]ast.Node, error) {
	path := filepath.Join(f.sourceDir, firstArg(args))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("including %q: %w", path, err)
	}
	blocks, err := f.parseFragment(ctx, string(content), FormatLaTeX)
	if err != nil {
		return nil, err
	}
	div := &ast.Div{
		Attr:    ast.Attr{Classes: elementClasses["MDIRECTROULETTEEXERCISES"]},
		Content: blocks,
	}
	return []ast.Node{div}, nil
}

// handleSpecial passes through HTML embedded via \special{html:...}.
func handleSpecial(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if html, ok := strings.CutPrefix(firstArg(args), "html:"); ok {
		if ast.IsBlock(elem) {
			return []ast.Node{&ast.RawBlock{Format: "html", Text: html}}, nil
		}
		return []ast.Node{&ast.RawInline{Format: "html", Text: html}}, nil
	}
	return nil, nil
}

func handleMInputHint(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	blocks, err := f.parseFragment(ctx, firstArg(args), FormatLaTeX)
	if err != nil {
		return nil, err
	}
	if ast.IsBlock(elem) {
		return []ast.Node{&ast.Div{
			Attr:    ast.Attr{Classes: elementClasses["MINPUTHINT"]},
			Content: blocks,
		}}, nil
	}
	span := &ast.Span{Attr: ast.Attr{Classes: elementClasses["MINPUTHINT"]}}
	if len(blocks) > 0 {
		if para, ok := blocks[0].(*ast.Para); ok {
			span.Content = para.Content
		}
	}
	return []ast.Node{span}, nil
}

func handleMEquationItem(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf(`%w: \MEquationItem needs 2 arguments, got %v`, ErrParse, args)
	}
	left, err := f.parseFragment(ctx, args[0], FormatLaTeX)
	if err != nil {
		return nil, err
	}
	right, err := f.parseFragment(ctx, args[1], FormatLaTeX)
	if err != nil {
		return nil, err
	}

	nodes := ast.NodeList{}
	for _, b := range left {
		nodes = append(nodes, b)
	}
	nodes = append(nodes, &ast.Math{Type: ast.InlineMath, Text: `\;\;=\;`})
	for _, b := range right {
		nodes = append(nodes, b)
	}
	content := ast.ToInline(nodes, nil, nil)

	return []ast.Node{blockWrap(content, elem)}, nil
}

func handleMZXYZhltrennzeichen(_ context.Context, _ *Filter, _ []string, elem ast.Node) ([]ast.Node, error) {
	if ast.IsBlock(elem) {
		return nil, fmt.Errorf(`%w: \MZXYZhltrennzeichen as block element`, ErrParse)
	}
	return []ast.Node{&ast.Math{Type: ast.InlineMath, Text: `\decmarker`}}, nil
}

func handleMZahl(_ context.Context, _ *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	if ast.IsBlock(elem) {
		return nil, fmt.Errorf(`%w: \MZahl as block element`, ErrParse)
	}
	if len(args) < 2 {
		return nil, fmt.Errorf(`%w: \MZahl needs 2 arguments`, ErrParse)
	}
	return []ast.Node{&ast.Math{
		Type: ast.InlineMath,
		Text: fmt.Sprintf(`\num{%s.%s}`, args[0], args[1]),
	}}, nil
}

func handleModsTextbf(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	content, err := f.parseFragmentInlines(ctx, firstArg(args))
	if err != nil {
		return nil, err
	}
	return []ast.Node{blockWrap(&ast.Strong{Content: content}, elem)}, nil
}

func handleModsEmph(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	content, err := f.parseFragmentInlines(ctx, firstArg(args))
	if err != nil {
		return nil, err
	}
	return []ast.Node{blockWrap(&ast.Emph{Content: content}, elem)}, nil
}

// handleHighlight keeps the information of the undocumented \highlight
// formatting command as a classed Span.
func handleHighlight(ctx context.Context, f *Filter, args []string, elem ast.Node) ([]ast.Node, error) {
	content, err := f.parseFragmentInlines(ctx, firstArg(args))
	if err != nil {
		return nil, err
	}
	span := &ast.Span{
		Attr:    ast.Attr{Classes: elementClasses["HIGHLIGHT"]},
		Content: content,
	}
	return []ast.Node{blockWrap(span, elem)}, nil
}

func handleNewline(_ context.Context, _ *Filter, _ []string, elem ast.Node) ([]ast.Node, error) {
	return []ast.Node{blockWrap(&ast.LineBreak{}, elem)}, nil
}

func blockNodes(blocks []ast.Block) []ast.Node {
	nodes := make([]ast.Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	return nodes
}
