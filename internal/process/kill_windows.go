//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// Setpgid is a no-op on Windows; taskkill /T handles the process tree.
func Setpgid(*exec.Cmd) {}

// KillProcessGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
