// Package dashboard is the interactive face of rcm: a live remote list
// with mount state, plus modals for configuring, probing, mounting and
// scheduling remotes. All blocking work runs in background commands;
// results come back as messages, never by mutating the model from
// another goroutine.
package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/rcm/internal/cron"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/mount"
	"github.com/marcus/rcm/internal/prefs"
)

// statusKind colors the status bar message.
type statusKind int

const (
	statusNormal statusKind = iota
	statusSuccess
	statusError
	statusWarning
)

// modalKind identifies which modal, if any, is open.
type modalKind int

const (
	modalNone modalKind = iota
	modalForm          // remote create/edit form
	modalConfirmDelete
	modalConfirmSave // probe failed / name conflict, explicit go-ahead
	modalHelp
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	Manager  *manager.Manager
	Mounter  *mount.Controller
	Sched    *cron.Scheduler
	PrefsDir string

	Width  int
	Height int

	Rows         []manager.RemoteStatus
	Cursor       int
	SelectedName string // preserved across refreshes

	StoreAbsent bool
	Loading     bool
	Busy        bool // a mount/probe/save is in flight
	Spinner     spinner.Model

	Status     string
	StatusKind statusKind

	Modal modalKind

	// Form modal
	Form *formState

	// Delete confirmation
	ConfirmName string

	// Save confirmation (conflict or failed probe)
	Pending       *pendingSave
	PendingPrompt string

	Dark   bool
	styles styles
}

// pendingSave carries a create/edit payload across a confirmation modal.
type pendingSave struct {
	mode     formMode
	typeName string
	name     string
	values   map[string]string
	opts     manager.Options
}

// New builds the dashboard model.
func New(mgr *manager.Manager, mounter *mount.Controller, sched *cron.Scheduler, prefsDir string, p *prefs.Preferences) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		Manager:  mgr,
		Mounter:  mounter,
		Sched:    sched,
		PrefsDir: prefsDir,
		Spinner:  sp,
		Dark:     p.DarkMode,
		Loading:  true,
		Status:   "Loading remotes...",
	}
	m.styles = newStyles(m.Dark)
	return m
}

// Init starts the first refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchRemotes(), m.Spinner.Tick)
}

// Update routes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case remotesMsg:
		return m.handleRemotes(msg)

	case opDoneMsg:
		return m.handleOpDone(msg)

	case saveDoneMsg:
		return m.handleSaveDone(msg)

	case themeSavedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.Modal == modalForm {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.Modal == modalForm {
		return m.updateForm(msg)
	}
	return m, nil
}

// handleKey handles keys outside the form modal.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			name := m.ConfirmName
			m.Modal = modalNone
			m.ConfirmName = ""
			return m.startOp("Deleting "+name+"...", m.deleteRemote(name))
		default:
			m.Modal = modalNone
			m.ConfirmName = ""
			return m, nil
		}

	case modalConfirmSave:
		switch msg.String() {
		case "y", "Y", "enter":
			pending := m.Pending
			m.Modal = modalNone
			m.Pending = nil
			return m.startOp("Saving "+pending.name+"...", m.saveRemote(*pending))
		default:
			m.Modal = modalNone
			m.Pending = nil
			m.setStatus("Save aborted", statusWarning)
			return m, nil
		}

	case modalHelp:
		m.Modal = modalNone
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			m.rememberSelection()
		}
		return m, nil

	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
			m.rememberSelection()
		}
		return m, nil

	case "r":
		m.Loading = true
		m.setStatus("Refreshing...", statusNormal)
		return m, m.fetchRemotes()

	case "m":
		if row, ok := m.selected(); ok && !row.Mounted && !m.Busy {
			return m.startOp("Mounting "+row.Name+"...", m.mountRemote(row.Name))
		}
		return m, nil

	case "u":
		if row, ok := m.selected(); ok && row.Mounted && !m.Busy {
			return m.startOp("Unmounting "+row.Name+"...", m.unmountRemote(row.Name))
		}
		return m, nil

	case "t":
		if row, ok := m.selected(); ok && !m.Busy {
			return m.startOp("Testing connection to "+row.Name+"...", m.probeRemote(row.Name))
		}
		return m, nil

	case "a":
		if row, ok := m.selected(); ok && !m.Busy {
			verb := "Enabling"
			if row.Autostart {
				verb = "Disabling"
			}
			return m.startOp(verb+" autostart for "+row.Name+"...", m.toggleAutostart(row.Name, !row.Autostart))
		}
		return m, nil

	case "o":
		if row, ok := m.selected(); ok && row.Mounted {
			return m, m.openFolder(row.MountPath)
		}
		return m, nil

	case "n":
		if !m.Busy {
			return m.openCreateForm()
		}
		return m, nil

	case "e":
		if row, ok := m.selected(); ok && !m.Busy {
			return m.openEditForm(row.Name)
		}
		return m, nil

	case "d":
		if row, ok := m.selected(); ok && !m.Busy {
			m.Modal = modalConfirmDelete
			m.ConfirmName = row.Name
		}
		return m, nil

	case "T":
		m.Dark = !m.Dark
		m.styles = newStyles(m.Dark)
		return m, m.saveTheme(m.Dark)

	case "?":
		m.Modal = modalHelp
		return m, nil
	}

	return m, nil
}

func (m *Model) setStatus(text string, kind statusKind) {
	m.Status = text
	m.StatusKind = kind
}

// startOp marks the model busy and launches a background command.
func (m Model) startOp(status string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.Busy = true
	m.setStatus(status, statusNormal)
	return m, tea.Batch(cmd, m.Spinner.Tick)
}

func (m Model) selected() (manager.RemoteStatus, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return manager.RemoteStatus{}, false
	}
	return m.Rows[m.Cursor], true
}

func (m *Model) rememberSelection() {
	if m.Cursor >= 0 && m.Cursor < len(m.Rows) {
		m.SelectedName = m.Rows[m.Cursor].Name
	}
}

// handleRemotes applies a refresh result, keeping the previous selection
// where possible.
func (m Model) handleRemotes(msg remotesMsg) (tea.Model, tea.Cmd) {
	m.Loading = false
	m.StoreAbsent = msg.storeAbsent

	if msg.err != nil && !msg.storeAbsent {
		m.setStatus("Error reading config: "+msg.err.Error(), statusError)
		return m, nil
	}

	m.Rows = msg.rows
	if m.StoreAbsent {
		m.setStatus("No rclone config found", statusWarning)
	} else if m.Status == "Loading remotes..." || m.Status == "Refreshing..." {
		m.setStatus(pluralRemotes(len(m.Rows)), statusSuccess)
	}

	m.Cursor = 0
	for i, row := range m.Rows {
		if row.Name == m.SelectedName {
			m.Cursor = i
			break
		}
	}
	return m, nil
}

// handleOpDone applies the result of a mount/unmount/probe/delete/cron
// operation and refreshes the list.
func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.ok {
		m.setStatus(msg.message, statusSuccess)
	} else {
		m.setStatus(msg.message, statusError)
	}
	if msg.refresh {
		m.Loading = true
		return m, m.fetchRemotes()
	}
	return m, nil
}

// handleSaveDone applies a create/edit result. Conflicts and failed
// probes open the explicit go-ahead modal instead of failing silently.
func (m Model) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	m.Busy = false

	switch {
	case msg.err == nil:
		m.setStatus(msg.successText, statusSuccess)
		m.Loading = true
		return m, m.fetchRemotes()

	case msg.conflict:
		pending := msg.pending
		pending.opts.Overwrite = true
		m.Pending = &pending
		m.PendingPrompt = "Remote \"" + pending.name + "\" already exists. Overwrite?"
		m.Modal = modalConfirmSave
		return m, nil

	case msg.probeFailed:
		pending := msg.pending
		pending.opts.Force = true
		m.Pending = &pending
		m.PendingPrompt = "Connection test failed: " + msg.err.Error() + ". Save anyway?"
		m.Modal = modalConfirmSave
		return m, nil

	default:
		m.setStatus(msg.err.Error(), statusError)
		return m, nil
	}
}

func pluralRemotes(n int) string {
	if n == 1 {
		return "Loaded 1 remote"
	}
	return fmt.Sprintf("Loaded %d remotes", n)
}
