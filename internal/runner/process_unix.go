//go:build unix

package runner

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup makes the child a session leader. All processes it spawns
// join its group, so one signal to the group reaches every descendant.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// Kill terminates the process together with every descendant it has spawned
// by signalling the whole group. The kill may race a normal exit; a tree
// that is already gone is not an error.
func (h *Handle) Kill() {
	if h.cmd.Process == nil {
		return
	}
	_ = unix.Kill(-h.cmd.Process.Pid, unix.SIGTERM)
}
