package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"

	"github.com/innodoc/innoconv-mintmod/internal/fileutil"
	"github.com/innodoc/innoconv-mintmod/internal/pandoc"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "errors"
	Pandoc   pandocInfo `json:"pandoc"`
	System   systemInfo `json:"system"`
	Errors   []string   `json:"errors,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
}

type pandocInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

type systemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	TempWritable bool   `json:"temp_writable"`
	Container    bool   `json:"container"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, stdout io.Writer) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(ctx)

	if jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(ctx context.Context) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		System: systemInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Container: fileutil.FileExists("/.dockerenv"),
		},
	}

	if path, err := pandoc.LookPath(); err == nil {
		result.Pandoc.Found = true
		result.Pandoc.Path = path
		if version, err := pandoc.Version(ctx, &pandoc.ExecRunner{}); err == nil {
			result.Pandoc.Version = version
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not run pandoc: %v", err))
		}
	} else {
		result.Status = "errors"
		result.Errors = append(result.Errors, "pandoc not found in PATH")
	}

	if tmp, err := os.CreateTemp("", "innoconv-doctor-*"); err == nil {
		result.System.TempWritable = true
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	} else {
		result.Status = "errors"
		result.Errors = append(result.Errors, "temp directory not writable")
	}

	return result
}

func printDoctorResult(w io.Writer, result *doctorResult) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "innoconv doctor\n\n")
	if result.Pandoc.Found {
		fmt.Fprintf(w, "  %s pandoc: %s (%s)\n", ok("✓"), result.Pandoc.Path, result.Pandoc.Version)
	} else {
		fmt.Fprintf(w, "  %s pandoc: not found\n", bad("✗"))
	}
	fmt.Fprintf(w, "  system: %s/%s", result.System.OS, result.System.Arch)
	if result.System.Container {
		fmt.Fprint(w, " (container)")
	}
	fmt.Fprintln(w)

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(w, "  %s %s\n", bad("error:"), errMsg)
	}
	fmt.Fprintf(w, "\nStatus: %s\n", result.Status)
}
