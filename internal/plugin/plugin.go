// Package plugin defines the remote-type handlers: the field schema,
// validation, connectivity probe, and config-section serialization for
// each kind of remote the external transfer tool supports.
package plugin

import (
	"context"
	"strings"

	"github.com/marcus/rcm/internal/rclone"
)

// Result is the outcome of a validate or probe operation.
type Result struct {
	OK      bool
	Message string
}

// Plugin handles one remote type. Implementations are instantiated once
// at registry load time and must be stateless: every operation is a pure
// function of its input configuration except Probe, which shells out.
type Plugin interface {
	// TypeName is the stable identifier matched (case-insensitively,
	// exactly) against the `type` key of stored sections. Changing it
	// orphans existing entries.
	TypeName() string
	Description() string
	Notes() string

	// Fields returns the primary form fields; AdvancedFields the ones
	// shown under a collapsed section.
	Fields() []Field
	AdvancedFields() []Field

	// Validate checks cfg without any I/O. Multiple failures are joined
	// with "; " in declared field order.
	Validate(cfg map[string]string) Result

	// Probe attempts a lightweight listing against a transient config.
	// All transport and timeout failures come back as a non-OK Result,
	// never as a panic or error.
	Probe(ctx context.Context, cfg map[string]string) Result

	// PersistedFormat maps form values to the exact key/value pairs
	// written into the config section: `type` is always present, keys
	// with empty values are dropped, everything else passes through.
	PersistedFormat(cfg map[string]string) map[string]string
}

// PersistedFormat is the shared serialization used by the builtins.
func PersistedFormat(typeName string, cfg map[string]string) map[string]string {
	out := map[string]string{"type": strings.ToLower(typeName)}
	for k, v := range cfg {
		if k == "type" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// base implements Plugin for declaratively-defined remote types.
type base struct {
	typeName    string
	description string
	notes       string
	fields      []Field
	advanced    []Field

	// extra validation beyond what the descriptors express
	validate func(cfg map[string]string) []string
}

func (b *base) TypeName() string        { return b.typeName }
func (b *base) Description() string     { return b.description }
func (b *base) Notes() string           { return b.notes }
func (b *base) Fields() []Field         { return b.fields }
func (b *base) AdvancedFields() []Field { return b.advanced }

func (b *base) Validate(cfg map[string]string) Result {
	msgs := ValidateFields(b.fields, cfg)
	msgs = append(msgs, ValidateFields(b.advanced, cfg)...)
	if b.validate != nil {
		msgs = append(msgs, b.validate(cfg)...)
	}
	if len(msgs) > 0 {
		return Result{OK: false, Message: strings.Join(msgs, "; ")}
	}
	return Result{OK: true, Message: "Configuration appears valid"}
}

func (b *base) Probe(ctx context.Context, cfg map[string]string) Result {
	ok, msg := rclone.ProbeTransient(ctx, b.PersistedFormat(cfg), rclone.DefaultProbeTimeout)
	return Result{OK: ok, Message: msg}
}

func (b *base) PersistedFormat(cfg map[string]string) map[string]string {
	return PersistedFormat(b.typeName, cfg)
}
