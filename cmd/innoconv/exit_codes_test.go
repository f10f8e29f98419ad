package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	innoconv "github.com/innodoc/innoconv-mintmod"
	"github.com/innodoc/innoconv-mintmod/internal/config"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "generic", err: errors.New("boom"), want: ExitGeneral},
		{name: "usage", err: ErrUsage, want: ExitUsage},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "invalid language", err: innoconv.ErrInvalidLanguage, want: ExitUsage},
		{name: "split format", err: innoconv.ErrOutputFormatSplit, want: ExitUsage},
		{name: "source missing", err: innoconv.ErrSourceNotFound, want: ExitIO},
		{name: "file missing", err: os.ErrNotExist, want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},
		{name: "pandoc missing", err: pandoc.ErrNotFound, want: ExitPandoc},
		{name: "pandoc failed", err: pandoc.ErrFailed, want: ExitPandoc},
		{
			name: "wrapped error",
			err:  fmt.Errorf("parsing source: %w", pandoc.ErrFailed),
			want: ExitPandoc,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}
