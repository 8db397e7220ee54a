package mount

import (
	"fmt"
	"os/exec"
	"time"
)

// cancelWait bounds how long Cancel waits for a killed mount process to
// exit before reporting failure.
const cancelWait = 5 * time.Second

// Handle owns one running mount process. Long-running operations hand a
// Handle back to the caller instead of stashing the process in shared
// state.
type Handle struct {
	cmd  *exec.Cmd
	done chan error
}

// Pid returns the mount process id.
func (h *Handle) Pid() int {
	return h.cmd.Process.Pid
}

// Running reports whether the mount process is still alive.
func (h *Handle) Running() bool {
	select {
	case err := <-h.done:
		// Re-arm so a later Cancel still observes the exit.
		h.done <- err
		return false
	default:
		return true
	}
}

// Cancel kills the mount process and waits, bounded, for it to exit.
// The kill error is ignored: a process that already exited delivers its
// status on done, and one that survives the wait is reported by the
// timeout.
func (h *Handle) Cancel() error {
	_ = h.cmd.Process.Kill()

	timer := time.NewTimer(cancelWait)
	defer timer.Stop()

	select {
	case err := <-h.done:
		// Re-arm so later Running calls observe the exit.
		h.done <- err
		return nil
	case <-timer.C:
		return fmt.Errorf("mount process %d did not exit within %s", h.Pid(), cancelWait)
	}
}
