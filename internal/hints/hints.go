// Package hints provides actionable error hints for common failure
// scenarios. Hints are formatted as "\n  hint: <text>" for appending to
// error messages.
package hints

import (
	"os/exec"
	"strings"
)

// ForPandocNotFound returns hints for a missing pandoc executable.
func ForPandocNotFound() string {
	hints := []string{"install pandoc from https://pandoc.org/installing.html"}
	if _, err := exec.LookPath("pandoc2"); err == nil {
		hints = append(hints, "found pandoc2; create a pandoc symlink or adjust PATH")
	}
	return formatHints(hints)
}

// ForPandocFailed returns hints for a failing pandoc run based on its
// stderr output.
func ForPandocFailed(stderr string) string {
	var hints []string
	switch {
	case strings.Contains(stderr, "Unknown reader"):
		hints = append(hints, "the input format needs the raw_tex extension; use latex+raw_tex")
	case strings.Contains(stderr, "Error at"):
		hints = append(hints, "check the LaTeX source for unbalanced braces or environments")
	}
	return formatHints(hints)
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range hints {
		b.WriteString("\n  hint: ")
		b.WriteString(h)
	}
	return b.String()
}
