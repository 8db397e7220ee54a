package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/rcm/internal/plugin"
	"github.com/marcus/rcm/internal/remotes"
)

// fakePlugin is a handler with a scriptable probe outcome.
type fakePlugin struct {
	typeName string
	probeOK  bool
}

func (p *fakePlugin) TypeName() string    { return p.typeName }
func (p *fakePlugin) Description() string { return "test remote type" }
func (p *fakePlugin) Notes() string       { return "" }

func (p *fakePlugin) AdvancedFields() []plugin.Field { return nil }

func (p *fakePlugin) Fields() []plugin.Field {
	return []plugin.Field{
		{Name: "host", Label: "Host", Kind: plugin.KindText, Required: true},
		{Name: "pass", Label: "Password", Kind: plugin.KindSecret},
	}
}

func (p *fakePlugin) Validate(cfg map[string]string) plugin.Result {
	if msgs := plugin.ValidateFields(p.Fields(), cfg); len(msgs) > 0 {
		return plugin.Result{OK: false, Message: strings.Join(msgs, "; ")}
	}
	return plugin.Result{OK: true, Message: "Configuration appears valid"}
}

func (p *fakePlugin) Probe(ctx context.Context, cfg map[string]string) plugin.Result {
	if p.probeOK {
		return plugin.Result{OK: true, Message: "Connection successful"}
	}
	return plugin.Result{OK: false, Message: "Connection failed: dial tcp: no route to host"}
}

func (p *fakePlugin) PersistedFormat(cfg map[string]string) map[string]string {
	return plugin.PersistedFormat(p.typeName, cfg)
}

type fakeMounter struct {
	base    string
	mounted map[string]bool
}

func (m *fakeMounter) Dir(name string) string     { return filepath.Join(m.base, name) }
func (m *fakeMounter) IsMounted(path string) bool { return m.mounted[path] }

type fakeScheduler struct {
	entries map[string]bool
}

func (s *fakeScheduler) HasEntry(name string) bool { return s.entries[name] }

// testManager wires a manager over a temp config file and one fake
// plugin type called "fake".
func testManager(t *testing.T, probeOK bool) (*Manager, *fakeMounter, *fakeScheduler) {
	t.Helper()

	store := remotes.NewStore(filepath.Join(t.TempDir(), "rclone.conf"))
	reg := plugin.NewRegistry()
	reg.Register(func() (plugin.Plugin, error) {
		return &fakePlugin{typeName: "Fake", probeOK: probeOK}, nil
	})
	if errs := reg.Discover(); len(errs) != 0 {
		t.Fatalf("discover: %v", errs)
	}

	mounter := &fakeMounter{base: "/home/sam/mnt", mounted: make(map[string]bool)}
	sched := &fakeScheduler{entries: make(map[string]bool)}
	return New(store, reg, mounter, sched), mounter, sched
}

func TestCreateAndRead(t *testing.T) {
	m, _, _ := testManager(t, true)
	ctx := context.Background()

	err := m.Create(ctx, "fake", "work", map[string]string{"host": "example.com"}, Options{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	e, err := m.Store().ReadOne("work")
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	if e.Fields["type"] != "fake" {
		t.Errorf("type = %q, want lowercase fake", e.Fields["type"])
	}
	if e.Fields["host"] != "example.com" {
		t.Errorf("host = %q", e.Fields["host"])
	}
}

func TestCreateValidationFailureWritesNothing(t *testing.T) {
	m, _, _ := testManager(t, true)

	err := m.Create(context.Background(), "fake", "work", map[string]string{}, Options{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(verr.Message, "Host is required") {
		t.Errorf("message = %q", verr.Message)
	}

	if _, err := os.Stat(m.Store().Path()); !os.IsNotExist(err) {
		t.Error("rejected create touched the config file")
	}
}

func TestCreateUnknownType(t *testing.T) {
	m, _, _ := testManager(t, true)
	err := m.Create(context.Background(), "dropbox", "work", map[string]string{"host": "x"}, Options{})
	var uerr *UnknownTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UnknownTypeError", err)
	}
}

func TestCreateBadName(t *testing.T) {
	m, _, _ := testManager(t, true)
	for _, name := range []string{"", "   ", "a:b", "a/b", "a]b"} {
		err := m.Create(context.Background(), "fake", name, map[string]string{"host": "x"}, Options{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("name %q: err = %v, want ValidationError", name, err)
		}
	}
}

func TestCreateConflictAndOverwrite(t *testing.T) {
	m, _, _ := testManager(t, true)
	ctx := context.Background()

	if err := m.Create(ctx, "fake", "work", map[string]string{"host": "a"}, Options{}); err != nil {
		t.Fatal(err)
	}

	err := m.Create(ctx, "fake", "work", map[string]string{"host": "b"}, Options{})
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}

	e, err := m.Store().ReadOne("work")
	if err != nil {
		t.Fatal(err)
	}
	if e.Fields["host"] != "a" {
		t.Errorf("rejected create replaced fields: host = %q", e.Fields["host"])
	}

	if err := m.Create(ctx, "fake", "work", map[string]string{"host": "b"}, Options{Overwrite: true}); err != nil {
		t.Fatalf("overwrite create: %v", err)
	}
	e, _ = m.Store().ReadOne("work")
	if e.Fields["host"] != "b" {
		t.Errorf("overwrite not applied: host = %q", e.Fields["host"])
	}
}

func TestCreateProbeAdvisory(t *testing.T) {
	m, _, _ := testManager(t, false)
	ctx := context.Background()
	values := map[string]string{"host": "example.com"}

	err := m.Create(ctx, "fake", "work", values, Options{})
	var perr *ProbeFailedError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProbeFailedError", err)
	}
	if _, err := m.Store().ReadOne("work"); err == nil {
		t.Error("failed probe still persisted the remote")
	}

	// Force saves anyway; SkipProbe never runs the probe at all.
	if err := m.Create(ctx, "fake", "work", values, Options{Force: true}); err != nil {
		t.Fatalf("forced create: %v", err)
	}
	if err := m.Create(ctx, "fake", "other", values, Options{SkipProbe: true}); err != nil {
		t.Fatalf("no-probe create: %v", err)
	}
}

func TestEditPreservesTypeAndDropsStaleKeys(t *testing.T) {
	m, _, _ := testManager(t, true)
	ctx := context.Background()

	err := m.Create(ctx, "fake", "work", map[string]string{"host": "a", "pass": "secret"}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Edit(ctx, "work", map[string]string{"host": "b"}, Options{}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	e, err := m.Store().ReadOne("work")
	if err != nil {
		t.Fatal(err)
	}
	if e.Fields["type"] != "fake" {
		t.Errorf("type = %q", e.Fields["type"])
	}
	if e.Fields["host"] != "b" {
		t.Errorf("host = %q", e.Fields["host"])
	}
	if _, ok := e.Fields["pass"]; ok {
		t.Error("cleared pass key survived the edit")
	}
}

func TestEditMissingRemote(t *testing.T) {
	m, _, _ := testManager(t, true)
	err := m.Edit(context.Background(), "ghost", map[string]string{"host": "x"}, Options{})
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestDelete(t *testing.T) {
	m, _, _ := testManager(t, true)
	ctx := context.Background()

	if err := m.Create(ctx, "fake", "work", map[string]string{"host": "a"}, Options{}); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete("work"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Store().ReadOne("work"); !errors.Is(err, remotes.ErrNotFound) {
		t.Errorf("remote survived delete: err = %v", err)
	}

	var nerr *NotFoundError
	if err := m.Delete("work"); !errors.As(err, &nerr) {
		t.Errorf("second delete: err = %v, want NotFoundError", err)
	}
}

func TestListStatusJoin(t *testing.T) {
	m, mounter, sched := testManager(t, true)
	ctx := context.Background()

	for _, name := range []string{"Zebra", "apple"} {
		if err := m.Create(ctx, "fake", name, map[string]string{"host": "x"}, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	// A section written by another tool, with a type we have no handler
	// for, still shows up in the listing.
	err := m.Store().WriteSection("legacy", map[string]string{"type": "s3", "bucket": "b"}, false)
	if err != nil {
		t.Fatal(err)
	}

	mounter.mounted[mounter.Dir("apple")] = true
	sched.entries["Zebra"] = true

	statuses, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("len = %d: %+v", len(statuses), statuses)
	}

	// Case-insensitive name order.
	gotNames := []string{statuses[0].Name, statuses[1].Name, statuses[2].Name}
	wantNames := []string{"apple", "legacy", "Zebra"}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("order = %v, want %v", gotNames, wantNames)
		}
	}

	byName := make(map[string]RemoteStatus, len(statuses))
	for _, st := range statuses {
		byName[st.Name] = st
	}
	if !byName["apple"].Mounted || byName["Zebra"].Mounted {
		t.Errorf("mounted flags wrong: %+v", statuses)
	}
	if !byName["Zebra"].Autostart || byName["apple"].Autostart {
		t.Errorf("autostart flags wrong: %+v", statuses)
	}
	if byName["legacy"].Editable {
		t.Error("unknown type reported editable")
	}
	if !byName["apple"].Editable {
		t.Error("handled type reported uneditable")
	}
	if byName["apple"].MountPath != mounter.Dir("apple") {
		t.Errorf("MountPath = %q", byName["apple"].MountPath)
	}
}

func TestListStoreAbsent(t *testing.T) {
	m, _, _ := testManager(t, true)
	if _, err := m.List(context.Background()); !errors.Is(err, remotes.ErrStoreAbsent) {
		t.Errorf("err = %v, want ErrStoreAbsent", err)
	}
}
