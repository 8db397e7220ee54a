package dashboard

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/prefs"
)

func testModel(t *testing.T, rows []manager.RemoteStatus) Model {
	t.Helper()
	m := New(nil, nil, nil, t.TempDir(), &prefs.Preferences{})
	m.Loading = false
	m.Status = ""
	m.Rows = rows
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func threeRows() []manager.RemoteStatus {
	return []manager.RemoteStatus{
		{Name: "apple", Type: "sftp", Editable: true},
		{Name: "legacy", Type: "s3"},
		{Name: "zebra", Type: "ftp", Mounted: true, Editable: true},
	}
}

func TestCursorNavigation(t *testing.T) {
	m := testModel(t, threeRows())

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	if m.Cursor != 1 || m.SelectedName != "legacy" {
		t.Errorf("after j: cursor=%d selected=%q", m.Cursor, m.SelectedName)
	}

	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	if m.Cursor != 2 {
		t.Errorf("cursor ran past the last row: %d", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	if m.Cursor != 1 {
		t.Errorf("after k: cursor=%d", m.Cursor)
	}
}

func TestRefreshPreservesSelectionByName(t *testing.T) {
	m := testModel(t, threeRows())
	m.Cursor = 2
	m.SelectedName = "zebra"

	// A refresh that inserts a row above the selection must follow the
	// name, not the index.
	next, _ := m.Update(remotesMsg{rows: []manager.RemoteStatus{
		{Name: "apple"},
		{Name: "banana"},
		{Name: "legacy"},
		{Name: "zebra"},
	}})
	m = next.(Model)
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}

	// A vanished selection falls back to the top.
	next, _ = m.Update(remotesMsg{rows: []manager.RemoteStatus{{Name: "apple"}}})
	m = next.(Model)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after selection vanished", m.Cursor)
	}
}

func TestStoreAbsentStatus(t *testing.T) {
	m := testModel(t, nil)

	next, _ := m.Update(remotesMsg{storeAbsent: true})
	m = next.(Model)
	if !m.StoreAbsent {
		t.Error("StoreAbsent not set")
	}
	if m.StatusKind != statusWarning {
		t.Errorf("StatusKind = %v, want warning", m.StatusKind)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := testModel(t, threeRows())

	next, _ := m.Update(keyMsg("d"))
	m = next.(Model)
	if m.Modal != modalConfirmDelete || m.ConfirmName != "apple" {
		t.Fatalf("modal=%v confirm=%q", m.Modal, m.ConfirmName)
	}

	// Any key but yes dismisses without deleting.
	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)
	if m.Modal != modalNone || m.ConfirmName != "" {
		t.Errorf("dismiss left modal=%v confirm=%q", m.Modal, m.ConfirmName)
	}
}

func TestSaveDoneConflictOpensConfirm(t *testing.T) {
	m := testModel(t, nil)

	pending := pendingSave{
		mode:     formModeCreate,
		typeName: "sftp",
		name:     "work",
		values:   map[string]string{"host": "example.com"},
	}
	next, _ := m.Update(saveDoneMsg{
		err:      &manager.ConflictError{Name: "work"},
		conflict: true,
		pending:  pending,
	})
	m = next.(Model)

	if m.Modal != modalConfirmSave {
		t.Fatalf("modal = %v", m.Modal)
	}
	if m.Pending == nil || !m.Pending.opts.Overwrite {
		t.Error("pending retry not armed with Overwrite")
	}
	if m.Pending.opts.Force {
		t.Error("conflict retry must not force past a failed probe")
	}
}

func TestSaveDoneProbeFailedOpensConfirm(t *testing.T) {
	m := testModel(t, nil)

	next, _ := m.Update(saveDoneMsg{
		err:         &manager.ProbeFailedError{Message: "Connection failed: no route to host"},
		probeFailed: true,
		pending:     pendingSave{mode: formModeCreate, typeName: "sftp", name: "work"},
	})
	m = next.(Model)

	if m.Modal != modalConfirmSave {
		t.Fatalf("modal = %v", m.Modal)
	}
	if m.Pending == nil || !m.Pending.opts.Force {
		t.Error("pending retry not armed with Force")
	}
}

func TestSaveDoneOtherErrorSetsStatus(t *testing.T) {
	m := testModel(t, nil)

	next, _ := m.Update(saveDoneMsg{err: errors.New("config file error: disk full")})
	m = next.(Model)
	if m.Modal != modalNone {
		t.Errorf("plain error opened a modal: %v", m.Modal)
	}
	if m.StatusKind != statusError {
		t.Errorf("StatusKind = %v", m.StatusKind)
	}
}

func TestBusyBlocksOperations(t *testing.T) {
	m := testModel(t, threeRows())
	m.Busy = true

	next, cmd := m.Update(keyMsg("m"))
	m = next.(Model)
	if cmd != nil {
		t.Error("mount started while busy")
	}
	if m.Status != "" {
		t.Errorf("status = %q", m.Status)
	}

	// The form and delete keys honor the same gate: no second operation
	// can be queued while one is in flight.
	for _, key := range []string{"n", "e", "d"} {
		next, cmd = m.Update(keyMsg(key))
		m = next.(Model)
		if cmd != nil {
			t.Errorf("key %q started work while busy", key)
		}
		if m.Modal != modalNone {
			t.Errorf("key %q opened modal %v while busy", key, m.Modal)
		}
		if m.Form != nil {
			t.Errorf("key %q opened a form while busy", key)
		}
	}
}
