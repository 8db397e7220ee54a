// Package prefs persists user preferences (theme, overrides for the
// mount base, rclone binary and config path) as JSON under the user
// config directory.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"syscall"
)

const prefsFile = "preferences.json"
const lockFile = "preferences.json.lock"

// Preferences holds the settings the app remembers between runs.
type Preferences struct {
	DarkMode     bool   `json:"dark_mode"`
	MountBase    string `json:"mount_base,omitempty"`
	RcloneBinary string `json:"rclone_binary,omitempty"`
	ConfigPath   string `json:"config_path,omitempty"`
}

// DefaultDir returns the preferences directory, ~/.config/rcm.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rcm"
	}
	return filepath.Join(home, ".config", "rcm")
}

// Load reads preferences from baseDir. A missing file yields defaults.
func Load(baseDir string) (*Preferences, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, prefsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Preferences{}, nil
		}
		return nil, err
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes preferences to baseDir using atomic write (temp file + rename).
func Save(baseDir string, p *Preferences) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(baseDir, "preferences-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filepath.Join(baseDir, prefsFile))
}

// withLock serializes access to the preferences file using flock.
func withLock(baseDir string, fn func() error) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(baseDir, lockFile), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// SetDarkMode persists the theme choice.
func SetDarkMode(baseDir string, dark bool) error {
	return withLock(baseDir, func() error {
		p, err := Load(baseDir)
		if err != nil {
			return err
		}
		p.DarkMode = dark
		return Save(baseDir, p)
	})
}

// SetMountBase persists the mount base override. Empty clears it.
func SetMountBase(baseDir, mountBase string) error {
	return withLock(baseDir, func() error {
		p, err := Load(baseDir)
		if err != nil {
			return err
		}
		p.MountBase = mountBase
		return Save(baseDir, p)
	})
}
