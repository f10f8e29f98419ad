// Package pandoc drives the pandoc executable as a subprocess. All LaTeX
// parsing and final rendering is delegated to it; this package only handles
// invocation, I/O plumbing and error reporting.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/innodoc/innoconv-mintmod/internal/process"
)

// Sentinel errors for pandoc invocation failures.
var (
	ErrNotFound = errors.New("pandoc executable not found")
	ErrFailed   = errors.New("pandoc process failed")
)

// DefaultTimeout bounds a single pandoc run when the caller's context
// carries no deadline.
const DefaultTimeout = 30 * time.Minute

// Runner abstracts command execution to enable testing without real
// subprocesses.
type Runner interface {
	Run(ctx context.Context, dir string, stdin []byte, args ...string) (stdout []byte, stderr string, err error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct {
	// Bin overrides the pandoc binary name, mainly for tests.
	Bin string
}

func (r *ExecRunner) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "pandoc"
}

// Run executes pandoc with the given working directory and stdin content.
func (r *ExecRunner) Run(ctx context.Context, dir string, stdin []byte, args ...string) ([]byte, string, error) {
	if _, err := exec.LookPath(r.bin()); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.bin(), args...)
	cmd.Dir = dir
	process.Setpgid(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// pandoc can spawn helpers; take down the whole group
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, stderr.String(), ctx.Err()
		}
		return nil, stderr.String(), fmt.Errorf("%w: %v: %s", ErrFailed, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), stderr.String(), nil
}

// Convert runs a single pandoc conversion on input and returns its output.
func Convert(ctx context.Context, runner Runner, dir string, input []byte, from, to string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"--from=" + from, "--to=" + to}, extraArgs...)
	out, _, err := runner.Run(ctx, dir, input, args...)
	if err != nil {
		return nil, fmt.Errorf("converting %s to %s: %w", from, to, err)
	}
	return out, nil
}

// LookPath reports the location of the pandoc binary, or an error wrapping
// ErrNotFound.
func LookPath() (string, error) {
	path, err := exec.LookPath("pandoc")
	if err != nil {
		return "", fmt.Errorf("%w: install it from https://pandoc.org", ErrNotFound)
	}
	return path, nil
}

// Version returns the first line of `pandoc --version`.
func Version(ctx context.Context, runner Runner) (string, error) {
	out, _, err := runner.Run(ctx, "", nil, "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
