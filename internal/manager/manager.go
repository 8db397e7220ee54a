// Package manager orchestrates the remote-configuration lifecycle:
// create, edit, delete and status listing over the config store, the
// plugin registry and the external mount and cron collaborators. The
// manager holds no persistent state of its own.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/marcus/rcm/internal/plugin"
	"github.com/marcus/rcm/internal/rclone"
	"github.com/marcus/rcm/internal/remotes"
)

// Mounter answers mount-state queries. Satisfied by *mount.Controller.
type Mounter interface {
	Dir(name string) string
	IsMounted(path string) bool
}

// Scheduler answers autostart queries. Satisfied by *cron.Scheduler.
type Scheduler interface {
	HasEntry(name string) bool
}

// RemoteStatus joins a stored remote with its live mount and autostart
// state. Derived on every listing, never persisted.
type RemoteStatus struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	MountPath string `json:"mount_path"`
	Mounted   bool   `json:"mounted"`
	Autostart bool   `json:"autostart"`
	Editable  bool   `json:"editable"`
}

// Options tune a create or edit operation.
type Options struct {
	Overwrite bool // replace an existing section on create
	SkipProbe bool // skip the advisory connectivity test
	Force     bool // save even when the advisory probe fails
}

// Manager coordinates lifecycle operations. Operations on the same
// remote name are serialized by a per-name lock so two concurrent edits
// cannot produce a lost update on the whole-file rewrite.
type Manager struct {
	store     *remotes.Store
	registry  *plugin.Registry
	mounter   Mounter
	scheduler Scheduler

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a manager over the given collaborators.
func New(store *remotes.Store, registry *plugin.Registry, mounter Mounter, scheduler Scheduler) *Manager {
	return &Manager{
		store:     store,
		registry:  registry,
		mounter:   mounter,
		scheduler: scheduler,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Store exposes the underlying config store.
func (m *Manager) Store() *remotes.Store { return m.store }

// Registry exposes the plugin registry.
func (m *Manager) Registry() *plugin.Registry { return m.registry }

// Create validates, optionally probes, serializes and persists a new
// remote. A failed probe blocks the save unless opts.Force is set; the
// caller owns the save-anyway confirmation.
func (m *Manager) Create(ctx context.Context, typeName, name string, values map[string]string, opts Options) (err error) {
	defer m.contain("create", &err)
	unlock := m.lock(name)
	defer unlock()

	if err := validName(name); err != nil {
		return err
	}

	p, ok := m.registry.Lookup(typeName)
	if !ok {
		return &UnknownTypeError{TypeName: typeName}
	}

	if res := p.Validate(values); !res.OK {
		return &ValidationError{Message: res.Message}
	}

	if _, err := m.store.ReadOne(name); err == nil {
		if !opts.Overwrite {
			return &ConflictError{Name: name}
		}
	} else if !errors.Is(err, remotes.ErrNotFound) && !errors.Is(err, remotes.ErrStoreAbsent) {
		return &ConfigIOError{Err: err}
	}

	if !opts.SkipProbe {
		if res := p.Probe(ctx, values); !res.OK && !opts.Force {
			return &ProbeFailedError{Message: res.Message}
		}
	}

	if err := m.store.WriteSection(name, p.PersistedFormat(values), opts.Overwrite); err != nil {
		return storeError(name, err)
	}
	return nil
}

// Edit replaces an existing remote's fields. Name and type are immutable:
// the type is taken from the stored entry and preserved verbatim, every
// stale key outside the preserve set is dropped.
func (m *Manager) Edit(ctx context.Context, name string, values map[string]string, opts Options) (err error) {
	defer m.contain("edit", &err)
	unlock := m.lock(name)
	defer unlock()

	entry, err := m.store.ReadOne(name)
	if err != nil {
		return storeError(name, err)
	}

	p, ok := m.registry.Lookup(entry.Type)
	if !ok {
		return &UnknownTypeError{TypeName: entry.Type}
	}

	if res := p.Validate(values); !res.OK {
		return &ValidationError{Message: res.Message}
	}

	if !opts.SkipProbe {
		if res := p.Probe(ctx, values); !res.OK && !opts.Force {
			return &ProbeFailedError{Message: res.Message}
		}
	}

	if err := m.store.UpdateFields(name, p.PersistedFormat(values), []string{"type"}); err != nil {
		return storeError(name, err)
	}
	return nil
}

// Delete removes the remote's section. It never unmounts or touches cron
// state; those are independent, user-initiated actions.
func (m *Manager) Delete(name string) (err error) {
	defer m.contain("delete", &err)
	unlock := m.lock(name)
	defer unlock()

	if err := m.store.RemoveSection(name); err != nil {
		return storeError(name, err)
	}
	return nil
}

// List joins every stored remote with live mount and autostart state,
// sorted case-insensitively by name. A missing config file propagates
// remotes.ErrStoreAbsent so callers can distinguish it from "no remotes".
func (m *Manager) List(ctx context.Context) ([]RemoteStatus, error) {
	entries, err := m.store.ReadAll()
	if err != nil {
		if errors.Is(err, remotes.ErrStoreAbsent) {
			return nil, err
		}
		return nil, &ConfigIOError{Err: err}
	}

	statuses := make([]RemoteStatus, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		dir := m.mounter.Dir(e.Name)
		_, editable := m.registry.Lookup(e.Type)
		statuses = append(statuses, RemoteStatus{
			Name:      e.Name,
			Type:      e.Type,
			MountPath: dir,
			Mounted:   m.mounter.IsMounted(dir),
			Autostart: m.scheduler.HasEntry(e.Name),
			Editable:  editable,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return strings.ToLower(statuses[i].Name) < strings.ToLower(statuses[j].Name)
	})
	return statuses, nil
}

// Probe runs a connectivity test against a saved remote using the stored
// configuration. Works for remotes without a registered handler too.
func (m *Manager) Probe(ctx context.Context, name string) plugin.Result {
	if _, err := m.store.ReadOne(name); err != nil {
		return plugin.Result{OK: false, Message: storeError(name, err).Error()}
	}
	ok, msg := rclone.ProbeRemote(ctx, m.store.Path(), name, 30*time.Second)
	return plugin.Result{OK: ok, Message: msg}
}

// lock serializes lifecycle operations per remote name.
func (m *Manager) lock(name string) func() {
	m.mu.Lock()
	l, ok := m.locks[name]
	if !ok {
		l = &sync.Mutex{}
		m.locks[name] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// contain converts an unexpected panic into an ExternalToolError so a
// failed subprocess or malformed config never crashes the caller.
func (m *Manager) contain(op string, errp *error) {
	if r := recover(); r != nil {
		*errp = &ExternalToolError{Op: op, Message: fmt.Sprint(r)}
	}
}

// storeError maps store sentinels into the lifecycle error taxonomy.
func storeError(name string, err error) error {
	switch {
	case errors.Is(err, remotes.ErrNotFound), errors.Is(err, remotes.ErrStoreAbsent):
		return &NotFoundError{Name: name}
	case errors.Is(err, remotes.ErrConflict):
		return &ConflictError{Name: name}
	default:
		return &ConfigIOError{Err: err}
	}
}

// validName rejects names the config format or rclone's remote syntax
// cannot represent.
func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: "Remote name is required"}
	}
	if strings.ContainsAny(name, ":/]\n") {
		return &ValidationError{Message: "Remote name must not contain ':', '/' or ']'"}
	}
	return nil
}
