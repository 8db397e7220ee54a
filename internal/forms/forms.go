// Package forms builds huh forms from plugin field descriptors, so every
// remote type gets its configuration UI from its declared schema.
package forms

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/marcus/rcm/internal/plugin"
)

// Values holds the strings bound into a form, keyed by field name.
type Values struct {
	bound map[string]*string
}

// Map returns the entered values, dropping untouched empties.
func (v *Values) Map() map[string]string {
	out := make(map[string]string, len(v.bound))
	for name, ptr := range v.bound {
		if *ptr != "" {
			out[name] = *ptr
		}
	}
	return out
}

// Build constructs a form for the plugin's fields. Existing values
// pre-fill the inputs (edit); otherwise field defaults do (create).
// Defaults live only at this layer; an untouched default that the user
// clears is simply not persisted.
func Build(p plugin.Plugin, title string, existing map[string]string) (*huh.Form, *Values) {
	values := &Values{bound: make(map[string]*string)}

	primary := buildGroup(p.Fields(), values, existing).Title(title)
	groups := []*huh.Group{primary}

	if adv := p.AdvancedFields(); len(adv) > 0 {
		groups = append(groups, buildGroup(adv, values, existing).Title(title+" (Advanced)"))
	}

	return huh.NewForm(groups...), values
}

func buildGroup(fields []plugin.Field, values *Values, existing map[string]string) *huh.Group {
	var items []huh.Field
	for _, f := range fields {
		value := new(string)
		if existing != nil {
			*value = existing[f.Name]
		} else {
			*value = f.Default
		}
		values.bound[f.Name] = value
		items = append(items, buildField(f, value))
	}
	return huh.NewGroup(items...)
}

func buildField(f plugin.Field, value *string) huh.Field {
	switch f.Kind {
	case plugin.KindChoice:
		opts := make([]huh.Option[string], 0, len(f.Choices)+1)
		if !f.Required {
			opts = append(opts, huh.NewOption("(none)", ""))
		}
		for _, c := range f.Choices {
			opts = append(opts, huh.NewOption(c, c))
		}
		return huh.NewSelect[string]().
			Title(f.Label).
			Description(f.Description).
			Options(opts...).
			Value(value)

	case plugin.KindBool:
		return huh.NewSelect[string]().
			Title(f.Label).
			Description(f.Description).
			Options(
				huh.NewOption("(unset)", ""),
				huh.NewOption("Yes", "true"),
				huh.NewOption("No", "false"),
			).
			Value(value)

	case plugin.KindSecret:
		return huh.NewInput().
			Title(f.Label).
			Description(f.Description).
			EchoMode(huh.EchoModePassword).
			Value(value).
			Validate(validator(f))

	case plugin.KindFilePath:
		desc := f.Description
		if f.FileFilter != "" {
			desc = fmt.Sprintf("%s (%s)", desc, f.FileFilter)
		}
		return huh.NewInput().
			Title(f.Label).
			Description(desc).
			Value(value).
			Validate(validator(f))

	default:
		input := huh.NewInput().
			Title(f.Label).
			Description(f.Description).
			Value(value).
			Validate(validator(f))
		if f.Default != "" {
			input = input.Placeholder(f.Default)
		}
		return input
	}
}

// validator enforces one field's descriptor rules inline, mirroring the
// plugin's aggregate Validate.
func validator(f plugin.Field) func(string) error {
	return func(s string) error {
		if s == "" {
			if f.Required {
				return errors.New(f.Label + " is required")
			}
			return nil
		}
		switch f.Kind {
		case plugin.KindInt:
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.New(f.Label + " must be a number")
			}
			if f.Max > 0 && (n < f.Min || n > f.Max) {
				return fmt.Errorf("%s must be between %d and %d", f.Label, f.Min, f.Max)
			}
		case plugin.KindFloat:
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return errors.New(f.Label + " must be a number")
			}
		}
		return nil
	}
}
