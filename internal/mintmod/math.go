package mintmod

import (
	"fmt"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
)

// handleMath rewrites mintmod math macros inside a Math node: first the
// plain regex substitutions, then the irregular commands whose arguments
// may contain nested commands.
func handleMath(math *ast.Math) (*ast.Math, error) {
	text := applyMathSubstitutions(math.Text)
	text, err := applyIrregular(text)
	if err != nil {
		return nil, err
	}
	math.Text = text
	return math, nil
}

func applyMathSubstitutions(text string) string {
	for _, sub := range mathSubstitutions {
		text = sub.re.ReplaceAllString(text, sub.repl)
	}
	return text
}

// applyIrregular replaces irregular math commands (\MVector, \MPointTwo, ...)
// by expanding their brace-balanced arguments into arity-specific templates.
func applyIrregular(text string) (string, error) {
	loc := irregularRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil
	}
	name := text[loc[2]:loc[3]]
	args, rest := parseNestedArgs(text[loc[1]:])

	cmd := irregularByName[name]
	tmpl, ok := cmd.templates[len(args)]
	if !ok {
		return "", fmt.Errorf("%w: \\%s with %d arguments", ErrParse, name, len(args))
	}

	// arguments may contain irregular commands themselves
	fmtArgs := make([]any, len(args))
	for i, arg := range args {
		expanded, err := applyIrregular(arg)
		if err != nil {
			return "", err
		}
		fmtArgs[i] = expanded
	}

	expanded := fmt.Sprintf(tmpl, fmtArgs...)
	restExpanded, err := applyIrregular(rest)
	if err != nil {
		return "", err
	}
	return text[:loc[0]] + expanded + restExpanded, nil
}
