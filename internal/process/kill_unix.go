//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Setpgid places the command in its own process group so pandoc and the
// LaTeX helpers it may spawn can be killed together.
func Setpgid(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
