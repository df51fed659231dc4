//go:build windows

package command

import (
	"os"
	"os/exec"
	"syscall"
)

func configureProcess(_ *exec.Cmd) {}

func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// terminationSignal has no signal to read on Windows; a process the runner
// killed is reported as terminated by SIGKILL.
func terminationSignal(_ *os.ProcessState, killed bool) (bool, int) {
	if killed {
		return true, int(syscall.SIGKILL)
	}
	return false, 0
}
