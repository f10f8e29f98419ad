package hints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPandocNotFound(t *testing.T) {
	t.Parallel()

	hint := ForPandocNotFound()
	assert.Contains(t, hint, "\n  hint: ")
	assert.Contains(t, hint, "pandoc.org")
}

func TestForPandocFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{
			name:   "unknown reader",
			stderr: "Unknown reader: latex+raw_texx",
			want:   "latex+raw_tex",
		},
		{
			name:   "parse error",
			stderr: "Error at \"source\" (line 3, column 1)",
			want:   "unbalanced braces",
		},
		{
			name:   "unrecognized output",
			stderr: "something else entirely",
			want:   "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForPandocFailed(tt.stderr)
			if tt.want == "" {
				assert.Empty(t, hint)
				return
			}
			assert.Contains(t, hint, tt.want)
		})
	}
}
