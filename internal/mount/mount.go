// Package mount exposes remotes as local directories through the rclone
// mount facility and answers mount-table queries.
package mount

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcus/rcm/internal/rclone"
)

const (
	// graceWindow is how long a freshly started mount process gets to
	// fail before we call the mount successful. Success only means the
	// process did not immediately exit, not that the mount is healthy.
	graceWindow = 2 * time.Second
)

// Controller resolves mount directories under a base and drives
// mount/unmount through external tools.
type Controller struct {
	Base       string // mount base directory, conventionally ~/mnt
	ConfigPath string // rclone config file, empty for rclone's default
}

// DefaultBase returns the conventional mount base, ~/mnt.
func DefaultBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mnt"
	}
	return filepath.Join(home, "mnt")
}

// Dir returns the conventional mount directory for a remote.
func (c *Controller) Dir(name string) string {
	return filepath.Join(c.Base, name)
}

// EnsureDir creates the mount directory if needed and returns it.
func (c *Controller) EnsureDir(name string) (string, error) {
	dir := c.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create mount directory %s: %w", dir, err)
	}
	return dir, nil
}

// IsMounted reports whether path is an active mount point. It asks the
// mountpoint tool and falls back to scanning /proc/self/mounts when the
// tool is unavailable.
func (c *Controller) IsMounted(path string) bool {
	if _, err := exec.LookPath("mountpoint"); err == nil {
		return exec.Command("mountpoint", "-q", path).Run() == nil
	}
	return inMountTable(path)
}

// Mount starts `rclone mount` for the remote at path and waits out the
// grace window. The returned Handle owns the still-running process.
func (c *Controller) Mount(ctx context.Context, name, path string) (*Handle, error) {
	args := []string{"mount", "--vfs-cache-mode", "writes", name + ":", path}
	if c.ConfigPath != "" {
		args = append(args, "--config", c.ConfigPath)
	}

	// Deliberately not CommandContext: the mount must outlive the
	// caller's context.
	cmd := exec.Command(rclone.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("mount failed: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	grace := time.NewTimer(graceWindow)
	defer grace.Stop()

	select {
	case <-done:
		// Early exit means the mount failed to start.
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "process exited immediately"
		}
		return nil, fmt.Errorf("mount failed: %s", msg)
	case <-ctx.Done():
		cmd.Process.Kill()
		<-done
		return nil, ctx.Err()
	case <-grace.C:
		return &Handle{cmd: cmd, done: done}, nil
	}
}

// Unmount detaches a mount point, trying fusermount first and plain
// umount as the fallback.
func (c *Controller) Unmount(path string) error {
	out, err := runTool("fusermount", "-u", path)
	if err == nil {
		return nil
	}

	fallbackOut, fallbackErr := runTool("umount", path)
	if fallbackErr == nil {
		return nil
	}

	msg := fallbackOut
	if msg == "" {
		msg = out
	}
	if msg == "" {
		msg = fallbackErr.Error()
	}
	return fmt.Errorf("unmount failed: %s", msg)
}

// runTool executes an external command, returning its stderr text.
func runTool(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// inMountTable scans /proc/self/mounts for path. Mount table entries
// escape spaces as \040.
func inMountTable(path string) bool {
	data, err := os.ReadFile("/proc/self/mounts")
	if err != nil {
		return false
	}
	escaped := strings.ReplaceAll(path, " ", `\040`)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == escaped {
			return true
		}
	}
	return false
}
