package innoconv

import (
	"github.com/innodoc/innoconv-mintmod/internal/logging"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

// Input format constants.
const (
	InputFormatLaTeX    = "latex+raw_tex"
	InputFormatMarkdown = "markdown"
)

// Output format constants.
const (
	OutputFormatHTML     = "html5"
	OutputFormatJSON     = "json"
	OutputFormatLaTeX    = "latex"
	OutputFormatMarkdown = "markdown"
	OutputFormatAsciiDoc = "asciidoc"
)

// Defaults for Job fields left empty.
const (
	DefaultInputFormat   = InputFormatLaTeX
	DefaultOutputFormat  = OutputFormatMarkdown
	DefaultLang          = "de"
	DefaultOutputDirBase = "innoconv_output"
)

// outputExt maps output formats to file extensions.
var outputExt = map[string]string{
	OutputFormatHTML:     "html",
	OutputFormatJSON:     "json",
	OutputFormatLaTeX:    "tex",
	OutputFormatMarkdown: "md",
	OutputFormatAsciiDoc: "adoc",
}

// languageCodes are the supported content languages.
var languageCodes = map[string]bool{"de": true, "en": true}

// Option customizes a Converter.
type Option func(*Converter)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRunner sets the pandoc process runner, mainly for tests.
func WithRunner(runner pandoc.Runner) Option {
	return func(c *Converter) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithWorkers sets the section writer concurrency. Zero derives it from
// GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(c *Converter) {
		c.workers = workers
	}
}
