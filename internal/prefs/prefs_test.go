package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingYieldsDefaults(t *testing.T) {
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.DarkMode || p.MountBase != "" || p.RcloneBinary != "" || p.ConfigPath != "" {
		t.Errorf("defaults = %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &Preferences{
		DarkMode:   true,
		MountBase:  "/srv/mnt",
		ConfigPath: "/etc/rclone/rclone.conf",
	}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, prefsFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("corrupt file loaded without error")
	}
}

func TestSetDarkModePreservesOtherFields(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, &Preferences{MountBase: "/srv/mnt"}); err != nil {
		t.Fatal(err)
	}

	if err := SetDarkMode(dir, true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}

	p, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !p.DarkMode {
		t.Error("dark mode not persisted")
	}
	if p.MountBase != "/srv/mnt" {
		t.Errorf("MountBase = %q, clobbered by theme save", p.MountBase)
	}
}

func TestSetMountBaseClear(t *testing.T) {
	dir := t.TempDir()
	if err := SetMountBase(dir, "/srv/mnt"); err != nil {
		t.Fatal(err)
	}
	if err := SetMountBase(dir, ""); err != nil {
		t.Fatal(err)
	}
	p, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.MountBase != "" {
		t.Errorf("MountBase = %q, want cleared", p.MountBase)
	}
}
