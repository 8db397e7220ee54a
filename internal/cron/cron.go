// Package cron manages @reboot auto-mount entries in the user crontab.
// The crontab is treated the same way the config store treats its file:
// whole read, filter or append, whole rewrite, no merging with
// concurrent editors.
package cron

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/marcus/rcm/internal/rclone"
)

// Scheduler edits the invoking user's crontab through the crontab tool.
type Scheduler struct{}

// mountCommand is the substring that identifies a remote's auto-mount
// line, mirroring the command the mount controller runs.
func mountCommand(name string) string {
	return rclone.Binary + " mount --vfs-cache-mode writes " + name + ":"
}

// HasEntry reports whether an auto-mount line exists for the remote. A
// missing crontab counts as no entry.
func (s *Scheduler) HasEntry(name string) bool {
	current, err := readCrontab()
	if err != nil {
		return false
	}
	return hasMountLine(current, name)
}

// AddEntry appends an @reboot mount line for the remote. Adding an entry
// that already exists is a no-op.
func (s *Scheduler) AddEntry(name, mountDir string) error {
	current, err := readCrontab()
	if err != nil {
		return err
	}
	if hasMountLine(current, name) {
		return nil
	}
	return writeCrontab(appendMountLine(current, name, mountDir))
}

// RemoveEntry deletes every auto-mount line for the remote.
func (s *Scheduler) RemoveEntry(name string) error {
	current, err := readCrontab()
	if err != nil {
		return err
	}
	if !hasMountLine(current, name) {
		return nil
	}
	return writeCrontab(withoutMountLines(current, name))
}

// hasMountLine reports whether the crontab text contains an auto-mount
// line for the remote.
func hasMountLine(crontab, name string) bool {
	return strings.Contains(crontab, mountCommand(name))
}

// appendMountLine returns the crontab text with an @reboot entry added.
func appendMountLine(crontab, name, mountDir string) string {
	if crontab != "" && !strings.HasSuffix(crontab, "\n") {
		crontab += "\n"
	}
	return crontab + "@reboot " + mountCommand(name) + " " + mountDir + "\n"
}

// withoutMountLines returns the crontab text with the remote's
// auto-mount lines filtered out.
func withoutMountLines(crontab, name string) string {
	needle := mountCommand(name)
	var kept []string
	for _, line := range strings.Split(crontab, "\n") {
		if strings.Contains(line, needle) {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, "\n")
	out = strings.TrimRight(out, "\n")
	if out != "" {
		out += "\n"
	}
	return out
}

// readCrontab returns the current crontab text. No crontab at all is
// returned as empty, not as an error.
func readCrontab() (string, error) {
	cmd := exec.Command("crontab", "-l")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.ToLower(stderr.String())
		if strings.Contains(msg, "no crontab") {
			return "", nil
		}
		return "", fmt.Errorf("crontab -l: %s", strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// writeCrontab replaces the whole crontab with content.
func writeCrontab(content string) error {
	cmd := exec.Command("crontab", "-")
	cmd.Stdin = strings.NewReader(content)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("crontab update failed: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}
