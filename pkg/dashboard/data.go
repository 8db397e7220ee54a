package dashboard

import (
	"context"
	"errors"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/prefs"
	"github.com/marcus/rcm/internal/remotes"
)

// remotesMsg carries a refreshed remote list.
type remotesMsg struct {
	rows        []manager.RemoteStatus
	storeAbsent bool
	err         error
}

// opDoneMsg carries the outcome of a mount/unmount/probe/delete/cron op.
type opDoneMsg struct {
	ok      bool
	message string
	refresh bool
}

// saveDoneMsg carries the outcome of a create/edit, with enough context
// to re-submit after an explicit confirmation.
type saveDoneMsg struct {
	err         error
	conflict    bool
	probeFailed bool
	pending     pendingSave
	successText string
}

type themeSavedMsg struct{}

// fetchRemotes lists remotes with live status off the UI loop.
func (m Model) fetchRemotes() tea.Cmd {
	mgr := m.Manager
	return func() tea.Msg {
		rows, err := mgr.List(context.Background())
		if errors.Is(err, remotes.ErrStoreAbsent) {
			return remotesMsg{storeAbsent: true}
		}
		return remotesMsg{rows: rows, err: err}
	}
}

func (m Model) mountRemote(name string) tea.Cmd {
	mgr, mounter := m.Manager, m.Mounter
	return func() tea.Msg {
		dir, err := mounter.EnsureDir(name)
		if err != nil {
			return opDoneMsg{ok: false, message: err.Error()}
		}

		// The original flow refuses to mount a remote that fails its
		// connection test.
		if res := mgr.Probe(context.Background(), name); !res.OK {
			return opDoneMsg{ok: false, message: "Cannot mount " + name + ": " + res.Message}
		}

		if _, err := mounter.Mount(context.Background(), name, dir); err != nil {
			return opDoneMsg{ok: false, message: err.Error()}
		}
		return opDoneMsg{ok: true, message: "Mounted " + name + " at " + dir, refresh: true}
	}
}

func (m Model) unmountRemote(name string) tea.Cmd {
	mounter := m.Mounter
	return func() tea.Msg {
		dir := mounter.Dir(name)
		if !mounter.IsMounted(dir) {
			return opDoneMsg{ok: true, message: name + " is not mounted", refresh: true}
		}
		if err := mounter.Unmount(dir); err != nil {
			return opDoneMsg{ok: false, message: err.Error()}
		}
		return opDoneMsg{ok: true, message: "Unmounted " + name, refresh: true}
	}
}

func (m Model) probeRemote(name string) tea.Cmd {
	mgr := m.Manager
	return func() tea.Msg {
		res := mgr.Probe(context.Background(), name)
		return opDoneMsg{ok: res.OK, message: name + ": " + res.Message}
	}
}

func (m Model) deleteRemote(name string) tea.Cmd {
	mgr := m.Manager
	return func() tea.Msg {
		if err := mgr.Delete(name); err != nil {
			return opDoneMsg{ok: false, message: err.Error()}
		}
		return opDoneMsg{ok: true, message: "Deleted " + name, refresh: true}
	}
}

func (m Model) toggleAutostart(name string, enable bool) tea.Cmd {
	mounter, sched := m.Mounter, m.Sched
	return func() tea.Msg {
		if enable {
			dir, err := mounter.EnsureDir(name)
			if err != nil {
				return opDoneMsg{ok: false, message: err.Error()}
			}
			if err := sched.AddEntry(name, dir); err != nil {
				return opDoneMsg{ok: false, message: err.Error()}
			}
			return opDoneMsg{ok: true, message: "Added " + name + " to crontab for auto-mount", refresh: true}
		}
		if err := sched.RemoveEntry(name); err != nil {
			return opDoneMsg{ok: false, message: err.Error()}
		}
		return opDoneMsg{ok: true, message: "Removed " + name + " from crontab", refresh: true}
	}
}

// saveRemote submits a create or edit to the lifecycle manager.
func (m Model) saveRemote(p pendingSave) tea.Cmd {
	mgr := m.Manager
	return func() tea.Msg {
		var err error
		var successText string
		if p.mode == formModeCreate {
			err = mgr.Create(context.Background(), p.typeName, p.name, p.values, p.opts)
			successText = "Created remote " + p.name
		} else {
			err = mgr.Edit(context.Background(), p.name, p.values, p.opts)
			successText = "Updated remote " + p.name
		}

		msg := saveDoneMsg{err: err, pending: p, successText: successText}
		var conflict *manager.ConflictError
		var probe *manager.ProbeFailedError
		switch {
		case errors.As(err, &conflict):
			msg.conflict = true
		case errors.As(err, &probe):
			msg.probeFailed = true
		}
		return msg
	}
}

func (m Model) openFolder(dir string) tea.Cmd {
	return func() tea.Msg {
		if err := exec.Command("xdg-open", dir).Run(); err == nil {
			return opDoneMsg{ok: true, message: "Opened " + dir}
		}
		if err := exec.Command("gio", "open", dir).Run(); err == nil {
			return opDoneMsg{ok: true, message: "Opened " + dir}
		}
		return opDoneMsg{ok: false, message: "Could not open " + dir}
	}
}

func (m Model) saveTheme(dark bool) tea.Cmd {
	dir := m.PrefsDir
	return func() tea.Msg {
		// Theme persistence is best-effort; a failure only costs the
		// preference, not the session.
		_ = prefs.SetDarkMode(dir, dark)
		return themeSavedMsg{}
	}
}
