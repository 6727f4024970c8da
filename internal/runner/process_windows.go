//go:build windows

package runner

import (
	"os/exec"
	"strconv"
)

func setProcessGroup(cmd *exec.Cmd) {}

// Kill terminates the process together with every descendant it has spawned.
// Windows has no POSIX process groups to signal, so the tree is walked and
// killed by pid through taskkill.
func (h *Handle) Kill() {
	if h.cmd.Process == nil {
		return
	}
	kill := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(h.cmd.Process.Pid))
	_ = kill.Run()
}
