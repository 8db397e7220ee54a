// Package rclone wraps invocations of the external rclone binary.
package rclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// DefaultProbeTimeout bounds a connectivity test.
const DefaultProbeTimeout = 30 * time.Second

// Binary is the rclone executable to invoke. Overridable via preferences
// or the RCLONE_BINARY environment variable.
var Binary = "rclone"

func init() {
	if b := os.Getenv("RCLONE_BINARY"); b != "" {
		Binary = b
	}
}

// Run executes rclone with the given arguments and returns trimmed stdout.
// On failure the error carries rclone's stderr verbatim.
func Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("rclone %s: %s", args[0], msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Version returns the first line of `rclone version`, e.g. "rclone v1.68.2".
func Version(ctx context.Context) (string, error) {
	out, err := Run(ctx, "version")
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return out, nil
}

// Available reports whether the rclone binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(Binary)
	return err == nil
}

// ProbeRemote lists the root of an already-configured remote as a
// lightweight connectivity check.
func ProbeRemote(ctx context.Context, configPath, name string, timeout time.Duration) (bool, string) {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"lsf", name + ":"}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	_, err := Run(ctx, args...)
	return probeResult(ctx, err)
}

// ProbeTransient tests connectivity using a scratch single-section config
// built from the given key/value pairs. The scratch file is removed on
// every exit path.
func ProbeTransient(ctx context.Context, fields map[string]string, timeout time.Duration) (bool, string) {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	tmp, err := os.CreateTemp("", "rcm-probe-*.conf")
	if err != nil {
		return false, "connection test failed: " + err.Error()
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := writeScratchConfig(path, "probe", fields); err != nil {
		return false, "connection test failed: " + err.Error()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err = Run(ctx, "lsf", "probe:", "--config", path)
	return probeResult(ctx, err)
}

func probeResult(ctx context.Context, err error) (bool, string) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return false, "Connection test timed out"
	}
	if err != nil {
		return false, "Connection failed: " + strings.TrimPrefix(err.Error(), "rclone lsf: ")
	}
	return true, "Connection successful"
}

func writeScratchConfig(path, section string, fields map[string]string) error {
	f := ini.Empty()
	sec, err := f.NewSection(section)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := sec.NewKey(k, fields[k]); err != nil {
			return err
		}
	}

	if err := f.SaveTo(path); err != nil {
		return err
	}
	// The scratch config can carry credentials.
	return os.Chmod(path, 0600)
}
