package main

import (
	"errors"
	"os"

	innoconv "github.com/innodoc/innoconv-mintmod"
	"github.com/innodoc/innoconv-mintmod/internal/config"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

// Exit codes for the innoconv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitPandoc  = 4 // pandoc missing or failed
)

// ErrUsage marks command line parsing failures.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error. It uses
// errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, pandoc.ErrNotFound) ||
		errors.Is(err, pandoc.ErrFailed) {
		return ExitPandoc
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, innoconv.ErrSourceNotFound) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, innoconv.ErrInvalidInputFormat) ||
		errors.Is(err, innoconv.ErrInvalidOutputFormat) ||
		errors.Is(err, innoconv.ErrInvalidLanguage) ||
		errors.Is(err, innoconv.ErrOutputFormatSplit) {
		return ExitUsage
	}

	return ExitGeneral
}
