package mintmod

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse indicates raw LaTeX that looked like a mintmod construct but
// could not be parsed.
var ErrParse = errors.New("could not parse LaTeX")

// parseCommand parses a command like `\foo{bar}{baz}` into its name and
// argument list.
func parseCommand(text string) (string, []string, error) {
	match := cmdRe.FindStringSubmatch(text)
	if match == nil {
		return "", nil, fmt.Errorf("%w command: %q", ErrParse, text)
	}
	name := match[1]
	args, _ := parseNestedArgs(match[2])
	return name, args, nil
}

// parseNestedArgs parses LaTeX command arguments that can contain nested
// braces. `{bar}{baz{}}rest` yields ["bar", "baz{}"] and "rest".
func parseNestedArgs(toParse string) ([]string, string) {
	var args []string
	if strings.HasPrefix(toParse, "{") {
		var stack []int
		for i, ch := range toParse {
			if len(stack) == 0 && ch != '{' {
				break
			}
			switch ch {
			case '{':
				stack = append(stack, i)
			case '}':
				if len(stack) > 0 {
					start := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if len(stack) == 0 {
						args = append(args, toParse[start+1:i])
					}
				}
			}
		}
		consumed := 0
		for _, arg := range args {
			consumed += len(arg) + 2
		}
		toParse = toParse[consumed:]
	}
	return args, toParse
}

// environment is a parsed `\begin{name}...\end{name}` body with its leading
// brace arguments split off.
type environment struct {
	name    string
	args    []string
	content string
}

// parseEnvironment splits raw LaTeX into environment name, arguments and
// inner content. The text must start with \begin{name} and end with the
// matching \end{name}.
func parseEnvironment(text string) (environment, error) {
	trimmed := strings.TrimSpace(text)
	match := envBeginRe.FindStringSubmatch(trimmed)
	if match == nil {
		return environment{}, fmt.Errorf("%w environment: %.50q", ErrParse, text)
	}
	name := match[1]
	closing := `\end{` + name + `}`
	rest := match[2]
	end := strings.LastIndex(rest, closing)
	if end < 0 || strings.TrimSpace(rest[end+len(closing):]) != "" {
		return environment{}, fmt.Errorf("%w environment: %.50q", ErrParse, text)
	}
	inner := rest[:end]

	// leading one-line brace groups are environment arguments; they can
	// contain nested commands like \MRef{...} in titles
	var args []string
	for strings.HasPrefix(inner, "{") {
		arg, argRest, ok := parseBraceGroup(inner)
		if !ok || strings.ContainsAny(arg, "\n\r") {
			break
		}
		args = append(args, arg)
		inner = argRest
	}
	return environment{name: name, args: args, content: inner}, nil
}

// parseBraceGroup splits the leading brace-balanced group off text.
func parseBraceGroup(text string) (arg, rest string, ok bool) {
	if !strings.HasPrefix(text, "{") {
		return "", "", false
	}
	depth := 0
	for i, ch := range text {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[1:i], text[i+1:], true
			}
		}
	}
	return "", "", false
}
