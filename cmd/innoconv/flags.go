package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	innoconv "github.com/innodoc/innoconv-mintmod"
	"github.com/innodoc/innoconv-mintmod/internal/config"
)

// cliFlags holds all flags for the convert invocation.
type cliFlags struct {
	config          string
	outputDirBase   string
	inputFormat     string
	outputFormat    string
	lang            string
	workers         int
	debug           bool
	ignoreExercises bool
	removeExercises bool
	noSplit         bool
	quiet           bool
	verbose         bool
	jsonLog         bool
	version         bool
	help            bool
}

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("innoconv", flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.StringVarP(&f.outputDirBase, "output-dir-base", "o", "", "output base directory")
	fs.StringVarP(&f.inputFormat, "from", "f", "", "input format: latex+raw_tex, markdown")
	fs.StringVarP(&f.outputFormat, "to", "t", "", "output format: markdown, html5, json, latex, asciidoc")
	fs.StringVarP(&f.lang, "language-code", "l", "", "two-letter language code: de, en")
	fs.IntVar(&f.workers, "workers", 0, "section writer concurrency (0 = auto)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "highlight unknown commands and write HTML previews")
	fs.BoolVarP(&f.ignoreExercises, "ignore-exercises", "i", false, "don't show logs for unknown exercise commands")
	fs.BoolVarP(&f.removeExercises, "remove-exercises", "r", false, "remove all exercise commands and environments")
	fs.BoolVar(&f.noSplit, "no-split", false, "write a single output file instead of split sections")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.BoolVar(&f.jsonLog, "json-log", false, "log as JSON lines")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help message and exit")

	return fs
}

// parseFlags parses args (excluding the program name) and returns the flags
// and positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

func usage() string {
	f := &cliFlags{}
	fs := newFlagSet(f)
	return "Usage: innoconv [flags] SOURCE\n" +
		"       innoconv doctor [--json]\n\n" +
		"Convert mintmod LaTeX content into innodoc output.\n\n" +
		"Flags:\n" + fs.FlagUsages()
}

// toJob merges config file values and flags into a Job; flags win.
func toJob(f *cliFlags, cfg *config.Config, source string) innoconv.Job {
	return innoconv.Job{
		Source:          source,
		OutputDirBase:   pick(f.outputDirBase, cfg.OutputDirBase),
		Lang:            pick(f.lang, cfg.Lang),
		InputFormat:     pick(f.inputFormat, cfg.InputFormat),
		OutputFormat:    pick(f.outputFormat, cfg.OutputFormat),
		Debug:           f.debug || cfg.Debug,
		IgnoreExercises: f.ignoreExercises || cfg.IgnoreExercises,
		RemoveExercises: f.removeExercises || cfg.RemoveExercises,
		NoSplit:         f.noSplit || cfg.NoSplit,
	}
}

func pick(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
