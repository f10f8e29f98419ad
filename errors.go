package innoconv

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceNotFound      = errors.New("source file or directory not found")
	ErrInvalidInputFormat  = errors.New("invalid input format")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidLanguage     = errors.New("invalid language code")

	// ErrOutputFormatSplit is returned when section splitting is requested
	// with an output format that cannot be split.
	ErrOutputFormatSplit = errors.New("section splitting requires json or markdown output")
)
