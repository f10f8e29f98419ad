package mintmod

import (
	"context"
	"fmt"
	"strings"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
)

// envFunc handles a mintmod environment. env holds the parsed name, brace
// arguments and inner content; elem is the raw block being replaced.
type envFunc func(ctx context.Context, f *Filter, env environment, elem *ast.RawBlock) ([]ast.Node, error)

var environmentHandlers = map[string]envFunc{
	"MSectionStart":       handleEnvTransparent,
	"MXContent":           handleEnvMXContent,
	"MContent":            handleEnvTransparent,
	"MIntro":              handleEnvMIntro,
	"MExercises":          handleEnvMExercises,
	"MExerciseCollection": handleEnvTransparent,
	"MExercise":           boxHandler("MEXERCISE"),
	"MExerciseItems":      handleEnvExerciseItems,
	"MQuestionGroup":      boxHandler("MQUESTIONGROUP"),
	"itemize":             handleEnvExerciseItems,
	"MInfo":               boxHandler("MINFO"),
	"MXInfo":              handleEnvMXInfo,
	"MExperiment":         boxHandler("MEXPERIMENT"),
	"MExample":            boxHandler("MEXAMPLE"),
	"MHint":               handleEnvMHint,
	"MTest":               handleEnvMTest,
	"MCOSHZusatz":         boxHandler("MCOSHZUSATZ"),
	"html":                handleEnvHTML,
}

// handleEnvTransparent unwraps an environment without innodoc counterpart,
// keeping only its parsed content.
func handleEnvTransparent(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	blocks, err := f.parseFragment(ctx, env.content, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	return blockNodes(blocks), nil
}

func boxHandler(classKey string) envFunc {
	return func(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
		div, err := f.createContentBox(ctx, env.content, elementClasses[classKey])
		if err != nil {
			return nil, err
		}
		return []ast.Node{div}, nil
	}
}

// handleEnvMXContent unwraps the content and prepends a header from the
// first environment argument.
func handleEnvMXContent(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	if len(env.args) == 0 {
		return nil, fmt.Errorf(`%w: \begin{MXContent} needs a title argument`, ErrParse)
	}
	blocks, err := f.parseFragment(ctx, env.content, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	header, err := f.createHeader(ctx, env.args[0], 3, false, "")
	if err != nil {
		return nil, err
	}
	if identifier := extractIdentifier(blocks); identifier != "" {
		header.Attr.Identifier = identifier
	}
	return blockNodes(append([]ast.Block{header}, blocks...)), nil
}

func handleEnvMIntro(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	blocks, err := f.parseFragment(ctx, env.content, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	header, err := f.createHeader(ctx, translate("introduction", f.opts.Lang), 3, false, "introduction")
	if err != nil {
		return nil, err
	}
	if identifier := extractIdentifier(blocks); identifier != "" {
		header.Attr.Identifier = identifier
	}
	header.Attr.Classes = append(header.Attr.Classes, elementClasses["MINTRO"]...)
	return blockNodes(append([]ast.Block{header}, blocks...)), nil
}

func handleEnvMExercises(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	blocks, err := f.parseFragment(ctx, env.content, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	header, err := f.createHeader(ctx, translate("exercises", f.opts.Lang), 3, false, "")
	if err != nil {
		return nil, err
	}
	if identifier := extractIdentifier(blocks); identifier != "" {
		header.Attr.Identifier = identifier
	}
	return blockNodes(append([]ast.Block{header}, blocks...)), nil
}

// handleEnvExerciseItems reparses the whole raw block with MExerciseItems
// rewritten to enumerate. This also covers itemize environments pandoc could
// not parse because they contained MExerciseItems.
func handleEnvExerciseItems(ctx context.Context, f *Filter, _ environment, elem *ast.RawBlock) ([]ast.Node, error) {
	text := strings.ReplaceAll(elem.Text, `\begin{MExerciseItems}`, `\begin{enumerate}`)
	text = strings.ReplaceAll(text, `\end{MExerciseItems}`, `\end{enumerate}`)
	blocks, err := f.parseFragment(ctx, text, FormatLaTeX)
	if err != nil {
		return nil, err
	}
	return blockNodes(blocks), nil
}

// handleEnvMXInfo is an info box with a title header.
func handleEnvMXInfo(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	if len(env.args) == 0 {
		return nil, fmt.Errorf(`%w: \begin{MXInfo} needs a title argument`, ErrParse)
	}
	div, err := f.createContentBox(ctx, env.content, elementClasses["MINFO"])
	if err != nil {
		return nil, err
	}
	header, err := f.createHeader(ctx, env.args[0], 4, true, "")
	if err != nil {
		return nil, err
	}
	div.Content = append([]ast.Block{header}, div.Content...)
	return []ast.Node{div}, nil
}

// handleEnvMHint carries its caption as an attribute; the \iSolution macro
// in captions is translated literally.
func handleEnvMHint(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	if len(env.args) == 0 {
		return nil, fmt.Errorf(`%w: \begin{MHint} needs a caption argument`, ErrParse)
	}
	div, err := f.createContentBox(ctx, env.content, elementClasses["MHINT"])
	if err != nil {
		return nil, err
	}
	solution := "Solution"
	if f.opts.Lang == "de" {
		solution = "Lösung"
	}
	div.Attr.Set("caption", strings.ReplaceAll(env.args[0], `\iSolution`, solution))
	return []ast.Node{div}, nil
}

// handleEnvMTest is a test box with a header inside; cross references in the
// title are stripped as they cannot be resolved in a standalone section.
func handleEnvMTest(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	if len(env.args) == 0 {
		return nil, fmt.Errorf(`%w: \begin{MTest} needs a title argument`, ErrParse)
	}
	div, err := f.createContentBox(ctx, env.content, elementClasses["MTEST"])
	if err != nil {
		return nil, err
	}
	title := fixMTestRe.ReplaceAllString(env.args[0], "")
	header, err := f.createHeader(ctx, title, 3, false, "")
	if err != nil {
		return nil, err
	}
	if identifier := extractIdentifier(div.Content); identifier != "" {
		header.Attr.Identifier = identifier
	}
	div.Content = append([]ast.Block{header}, div.Content...)
	return []ast.Node{div}, nil
}

func handleEnvHTML(ctx context.Context, f *Filter, env environment, _ *ast.RawBlock) ([]ast.Node, error) {
	blocks, err := f.parseFragment(ctx, env.content, FormatHTML)
	if err != nil {
		return nil, err
	}
	return blockNodes(blocks), nil
}

func translate(key, lang string) string {
	if t, ok := translations[key][lang]; ok {
		return t
	}
	return translations[key]["en"]
}
