package plugin

import (
	"fmt"
	"strconv"
)

// Kind identifies the input widget and parsing rules for a Field.
type Kind string

const (
	KindText     Kind = "text"
	KindSecret   Kind = "secret"
	KindFilePath Kind = "file"
	KindChoice   Kind = "choice"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
)

// Field describes one configurable input of a remote type. Fields are
// declared once by a plugin and never mutated afterwards.
type Field struct {
	Name        string // key written into the config section
	Label       string // user-facing label
	Kind        Kind
	Required    bool
	Default     string   // applied at the form layer only, never injected on save
	Choices     []string // KindChoice only
	FileFilter  string   // KindFilePath only, e.g. "*.pem *.key"
	Description string
	Min, Max    int // KindInt range check, enforced when Max > 0
}

// ValidateFields checks cfg against the declared descriptors and returns
// one message per failing field, in declared field order.
func ValidateFields(fields []Field, cfg map[string]string) []string {
	var msgs []string
	for _, f := range fields {
		value := cfg[f.Name]
		if value == "" {
			if f.Required {
				msgs = append(msgs, f.Label+" is required")
			}
			continue
		}

		switch f.Kind {
		case KindInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				msgs = append(msgs, f.Label+" must be a number")
				continue
			}
			if f.Max > 0 && (n < f.Min || n > f.Max) {
				msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d", f.Label, f.Min, f.Max))
			}
		case KindFloat:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				msgs = append(msgs, f.Label+" must be a number")
			}
		case KindBool:
			if value != "true" && value != "false" {
				msgs = append(msgs, f.Label+" must be true or false")
			}
		case KindChoice:
			// A choice field with no declared choices has no valid value.
			if len(f.Choices) == 0 {
				msgs = append(msgs, f.Label+" has no valid options")
				continue
			}
			found := false
			for _, c := range f.Choices {
				if c == value {
					found = true
					break
				}
			}
			if !found {
				msgs = append(msgs, f.Label+" must be one of the listed options")
			}
		}
	}
	return msgs
}
