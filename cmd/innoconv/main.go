package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	innoconv "github.com/innodoc/innoconv-mintmod"
	"github.com/innodoc/innoconv-mintmod/internal/config"
	"github.com/innodoc/innoconv-mintmod/internal/hints"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 && args[0] == "doctor" {
		return runDoctorCmd(ctx, args[1:], stdout)
	}

	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	switch {
	case flags.help:
		fmt.Fprint(stdout, usage())
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(stdout, "innoconv %s\n", Version)
		return ExitSuccess
	}

	if len(positional) != 1 {
		fmt.Fprintf(stderr, "%v: expected exactly one SOURCE argument\n\n%s", ErrUsage, usage())
		return ExitUsage
	}

	// maxprocs only fails on an invalid GOMAXPROCS env var; runtime
	// defaults apply in that case
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	logger := newLogger(stderr, flags)

	cfg, err := config.Load(flags.config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}

	conv := innoconv.New(
		innoconv.WithLogger(logger),
		innoconv.WithWorkers(pickWorkers(flags.workers, cfg.Workers)),
	)

	result, err := conv.Convert(ctx, toJob(flags, cfg, positional[0]))
	if err != nil {
		fmt.Fprintf(stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	fmt.Fprintln(stdout, result.OutputPath)
	return ExitSuccess
}

func pickWorkers(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, pandoc.ErrNotFound):
		return hints.ForPandocNotFound()
	case errors.Is(err, pandoc.ErrFailed):
		return hints.ForPandocFailed(err.Error())
	}
	return ""
}
