//go:build unix

package command

import (
	stderrors "errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcess puts the child in its own process group so a kill
// reaches any processes it spawned, which may hold the output pipes open.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess sends SIGKILL to the child's process group.
func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	if err == nil || stderrors.Is(err, unix.ESRCH) {
		return nil
	}
	return cmd.Process.Kill()
}

// terminationSignal reports the signal that ended the process, if any.
func terminationSignal(state *os.ProcessState, _ bool) (bool, int) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return false, 0
	}
	return true, int(ws.Signal())
}
