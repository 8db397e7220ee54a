// Package remotes reads and writes the rclone config file: one INI
// section per remote, keys are lower-case option names, at minimum
// including `type`. The store owns the on-disk representation; all
// mutations are whole-file read-modify-write cycles guarded by a file
// lock and finished with an atomic rename.
package remotes

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"gopkg.in/ini.v1"
)

var (
	// ErrStoreAbsent distinguishes "no config file yet" from an empty
	// one, so callers can show different messaging.
	ErrStoreAbsent = errors.New("rclone config file does not exist")

	// ErrNotFound reports a missing remote section.
	ErrNotFound = errors.New("remote not found")

	// ErrConflict reports a name collision on create.
	ErrConflict = errors.New("remote already exists")
)

// UnknownType is reported for sections without a type key or whose type
// has no registered handler.
const UnknownType = "Unknown"

// Entry is one named section of the config file.
type Entry struct {
	Name   string
	Type   string            // value of the `type` key, or UnknownType
	Fields map[string]string // every key of the section, including type
	Keys   []string          // key names in file order
}

// Store manages the config file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store bound to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location.
func (s *Store) Path() string { return s.path }

// DefaultPath returns rclone's conventional config location, honoring
// the RCLONE_CONFIG environment variable.
func DefaultPath() string {
	if p := os.Getenv("RCLONE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "rclone.conf"
	}
	return filepath.Join(home, ".config", "rclone", "rclone.conf")
}

// ReadAll returns every remote in file order. A missing file yields
// ErrStoreAbsent, not an empty list.
func (s *Store) ReadAll() ([]Entry, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		entries = append(entries, entryFromSection(sec))
	}
	return entries, nil
}

// ReadOne returns the named remote, or ErrNotFound. A missing file is
// reported as ErrStoreAbsent.
func (s *Store) ReadOne(name string) (*Entry, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	sec := findSection(f, name)
	if sec == nil {
		return nil, ErrNotFound
	}
	e := entryFromSection(sec)
	return &e, nil
}

// WriteSection creates the named section with the given fields. When the
// section already exists the write fails with ErrConflict unless
// allowOverwrite is set, in which case every existing key is replaced.
// The file is left untouched on any failure.
func (s *Store) WriteSection(name string, fields map[string]string, allowOverwrite bool) error {
	return s.mutate(func(f *ini.File) error {
		if sec := findSection(f, name); sec != nil {
			if !allowOverwrite {
				return ErrConflict
			}
			f.DeleteSection(sec.Name())
		}
		return setSection(f, name, fields, nil)
	})
}

// RemoveSection deletes the named section, failing with ErrNotFound if
// it is absent.
func (s *Store) RemoveSection(name string) error {
	return s.mutate(func(f *ini.File) error {
		sec := findSection(f, name)
		if sec == nil {
			return ErrNotFound
		}
		f.DeleteSection(sec.Name())
		return nil
	})
}

// UpdateFields rewrites an existing section for an edit: every key not
// named in preserveKeys (matched case-insensitively, conventionally just
// "type") is removed, then fields are set. Preserved keys keep their
// stored value verbatim even when fields names them.
func (s *Store) UpdateFields(name string, fields map[string]string, preserveKeys []string) error {
	preserve := make(map[string]bool, len(preserveKeys))
	for _, k := range preserveKeys {
		preserve[strings.ToLower(k)] = true
	}

	return s.mutate(func(f *ini.File) error {
		sec := findSection(f, name)
		if sec == nil {
			return ErrNotFound
		}

		kept := make(map[string]string)
		for _, key := range sec.Keys() {
			if preserve[strings.ToLower(key.Name())] {
				kept[strings.ToLower(key.Name())] = key.Value()
			}
		}

		f.DeleteSection(sec.Name())
		return setSection(f, name, fields, kept)
	})
}

// load parses the file, translating a missing file into ErrStoreAbsent.
func (s *Store) load() (*ini.File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStoreAbsent
		}
		return nil, err
	}
	return ini.Load(data)
}

// mutate runs one read-modify-write cycle under the file lock. A missing
// file is treated as empty so the first write creates it.
func (s *Store) mutate(fn func(f *ini.File) error) error {
	return s.withLock(func() error {
		f, err := s.load()
		if errors.Is(err, ErrStoreAbsent) {
			f, err = ini.Empty(), nil
		}
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
		return s.save(f)
	})
}

// save writes the whole file atomically: temp file in the same dir, then
// rename. The config can hold credentials, so it gets 0600.
func (s *Store) save(f *ini.File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "rclone-*.conf.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// withLock serializes the read-modify-write window against other
// processes using flock on a sidecar lock file.
func (s *Store) withLock(fn func() error) error {
	lockPath := s.path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	lf, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer lf.Close()

	if err := syscall.Flock(int(lf.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(lf.Fd()), syscall.LOCK_UN)

	return fn()
}

// findSection matches section names case-sensitively first, exactly the
// way rclone resolves remote names.
func findSection(f *ini.File, name string) *ini.Section {
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		if sec.Name() == name {
			return sec
		}
	}
	return nil
}

// setSection writes fields (plus preserved values, which win) into a
// fresh section. Key names are lower-cased; `type` is written first and
// the rest in sorted order so rewrites are deterministic.
func setSection(f *ini.File, name string, fields map[string]string, preserved map[string]string) error {
	sec, err := f.NewSection(name)
	if err != nil {
		return err
	}

	merged := make(map[string]string, len(fields)+len(preserved))
	for k, v := range fields {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range preserved {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		if k != "type" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := merged["type"]; ok {
		keys = append([]string{"type"}, keys...)
	}

	for _, k := range keys {
		if _, err := sec.NewKey(k, merged[k]); err != nil {
			return err
		}
	}
	return nil
}

func entryFromSection(sec *ini.Section) Entry {
	e := Entry{
		Name:   sec.Name(),
		Type:   UnknownType,
		Fields: make(map[string]string, len(sec.Keys())),
	}
	for _, key := range sec.Keys() {
		e.Keys = append(e.Keys, key.Name())
		e.Fields[key.Name()] = key.Value()
		if strings.EqualFold(key.Name(), "type") && key.Value() != "" {
			e.Type = key.Value()
		}
	}
	return e
}
