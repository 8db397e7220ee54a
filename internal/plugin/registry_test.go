package plugin

import (
	"errors"
	"reflect"
	"testing"
)

func stub(typeName, description string) Factory {
	return func() (Plugin, error) {
		return &base{typeName: typeName, description: description}, nil
	}
}

func TestRegistryDiscover(t *testing.T) {
	r := NewRegistry()
	r.Register(stub("SFTP", "first"))
	r.Register(stub("FTP", "second"))

	if errs := r.Discover(); len(errs) != 0 {
		t.Fatalf("discover errors: %v", errs)
	}

	if got := r.Available(); !reflect.DeepEqual(got, []string{"FTP", "SFTP"}) {
		t.Errorf("Available() = %v", got)
	}

	p, ok := r.Lookup("sftp")
	if !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if p.TypeName() != "SFTP" {
		t.Errorf("TypeName = %q", p.TypeName())
	}

	// Exact matching only: no substring or prefix guessing.
	if _, ok := r.Lookup("sft"); ok {
		t.Error("prefix lookup succeeded")
	}
	if _, ok := r.Lookup("sftp2"); ok {
		t.Error("superstring lookup succeeded")
	}
}

func TestRegistryDiscoverIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register(stub("Local", ""))
	r.Discover()
	first := r.Available()
	r.Discover()
	if got := r.Available(); !reflect.DeepEqual(got, first) {
		t.Errorf("second Discover changed the set: %v != %v", got, first)
	}
}

func TestRegistrySkipsFailingFactory(t *testing.T) {
	r := NewRegistry()
	r.Register(func() (Plugin, error) { return nil, errors.New("boom") })
	r.Register(stub("FTP", ""))

	errs := r.Discover()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if _, ok := r.Lookup("ftp"); !ok {
		t.Error("healthy plugin lost to a failing sibling")
	}
}

func TestRegistryDuplicateLastWins(t *testing.T) {
	r := NewRegistry()
	r.Register(stub("SFTP", "old"))
	r.Register(stub("SFTP", "new"))
	r.Discover()

	p, ok := r.Lookup("SFTP")
	if !ok {
		t.Fatal("lookup failed")
	}
	if p.Description() != "new" {
		t.Errorf("Description = %q, want the later registration", p.Description())
	}
	if got := r.Available(); len(got) != 1 {
		t.Errorf("duplicate type listed twice: %v", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"SFTP", "FTP", "WebDAV", "Local"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("builtin %s not registered", name)
		}
	}
}
