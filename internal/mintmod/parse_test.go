package mintmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantName string
		wantArgs []string
	}{
		{
			name:     "no arguments",
			in:       `\MPrintIndex`,
			wantName: "MPrintIndex",
		},
		{
			name:     "single argument",
			in:       `\MSection{Foo}`,
			wantName: "MSection",
			wantArgs: []string{"Foo"},
		},
		{
			name:     "multiple arguments",
			in:       `\MSRef{target}{caption text}`,
			wantName: "MSRef",
			wantArgs: []string{"target", "caption text"},
		},
		{
			name:     "nested braces",
			in:       `\MEntry{\textbf{foo}}{bar{}baz}`,
			wantName: "MEntry",
			wantArgs: []string{`\textbf{foo}`, "bar{}baz"},
		},
		{
			name:     "multiline argument",
			in:       "\\MTikzAuto{line one\nline two}",
			wantName: "MTikzAuto",
			wantArgs: []string{"line one\nline two"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, args, err := parseCommand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestParseCommandInvalid(t *testing.T) {
	t.Parallel()

	_, _, err := parseCommand("not a command")
	require.ErrorIs(t, err, ErrParse)
}

func TestParseNestedArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantArgs []string
		wantRest string
	}{
		{
			name:     "plain",
			in:       "{a}{b}",
			wantArgs: []string{"a", "b"},
		},
		{
			name:     "nested with rest",
			in:       "{bar}{baz{}}rest",
			wantArgs: []string{"bar", "baz{}"},
			wantRest: "rest",
		},
		{
			name:     "no arguments",
			in:       "rest only",
			wantRest: "rest only",
		},
		{
			name:     "deeply nested",
			in:       `{\frac{3}{2}}{1+\frac{\sqrt{3}}{2}} x_2`,
			wantArgs: []string{`\frac{3}{2}`, `1+\frac{\sqrt{3}}{2}`},
			wantRest: " x_2",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args, rest := parseNestedArgs(tt.in)
			assert.Equal(t, tt.wantArgs, args)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          string
		wantName    string
		wantArgs    []string
		wantContent string
	}{
		{
			name:        "plain environment",
			in:          "\\begin{MInfo}\nsome content\n\\end{MInfo}",
			wantName:    "MInfo",
			wantContent: "\nsome content\n",
		},
		{
			name:        "environment with arguments",
			in:          "\\begin{MXContent}{Long title}{Short}{STD}\ncontent\n\\end{MXContent}",
			wantName:    "MXContent",
			wantArgs:    []string{"Long title", "Short", "STD"},
			wantContent: "\ncontent\n",
		},
		{
			name:        "argument with nested command braces",
			in:          "\\begin{MTest}{Abschlusstest \\MRef{VBKM01}}\ncontent\n\\end{MTest}",
			wantName:    "MTest",
			wantArgs:    []string{`Abschlusstest \MRef{VBKM01}`},
			wantContent: "\ncontent\n",
		},
		{
			name:        "multiline brace group is content, not an argument",
			in:          "\\begin{MExercise}{line one\nline two}\n\\end{MExercise}",
			wantName:    "MExercise",
			wantContent: "{line one\nline two}\n",
		},
		{
			name: "nested same-name environment",
			in: "\\begin{MExercise}\nouter" +
				"\n\\begin{MExercise}\ninner\n\\end{MExercise}\n\\end{MExercise}",
			wantName:    "MExercise",
			wantContent: "\nouter\n\\begin{MExercise}\ninner\n\\end{MExercise}\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, err := parseEnvironment(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, env.name)
			assert.Equal(t, tt.wantArgs, env.args)
			assert.Equal(t, tt.wantContent, env.content)
		})
	}
}

func TestParseEnvironmentInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"no environment here",
		`\begin{MInfo}unterminated`,
		`\begin{MInfo}content\end{MOther}`,
	} {
		_, err := parseEnvironment(in)
		assert.ErrorIs(t, err, ErrParse, in)
	}
}
