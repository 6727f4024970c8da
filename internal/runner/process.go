package runner

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

// Handle owns exactly one running OS process and, on platforms that support
// it, the process group rooted at it. A handle is created by start and is
// never reused for another execution.
type Handle struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	buf   *bytes.Buffer // nil when output is passed through
}

// start spawns the given command. With bufferOutput the child's stdout and
// stderr are merged into a single in-memory capture; otherwise the child
// writes straight to the runner's configured streams so interactive tools
// behave normally. Stdin is always available for writing.
func (r *Runner) start(command []string, bufferOutput bool) (*Handle, error) {
	if len(command) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(command[0], command[1:]...)
	h := &Handle{cmd: cmd}

	if bufferOutput {
		h.buf = &bytes.Buffer{}
		cmd.Stdout = h.buf
		// Same writer for both streams; os/exec serializes the writes.
		cmd.Stderr = h.buf
	} else {
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdin pipe: %w", err)
	}
	h.stdin = stdin

	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", command[0], err)
	}
	return h, nil
}

// output returns the captured merged output. Only valid after the process
// has been waited on; until then the capture may still be written to.
func (h *Handle) output() string {
	if h.buf == nil {
		return ""
	}
	return h.buf.String()
}
