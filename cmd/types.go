package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/plugin"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:     "types [type]",
	Short:   "List available remote types and their fields",
	GroupID: "remotes",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		if len(args) == 0 {
			if jsonOut {
				return output.JSON(a.Registry.Available())
			}
			for _, name := range a.Registry.Available() {
				p, _ := a.Registry.Lookup(name)
				fmt.Printf("%-10s %s\n", strings.ToLower(name), p.Description())
			}
			return nil
		}

		p, ok := a.Registry.Lookup(args[0])
		if !ok {
			err := fmt.Errorf("unknown remote type %q", args[0])
			if jsonOut {
				output.JSONError(output.ErrCodeUnknownType, err.Error())
				return err
			}
			output.Error("%v", err)
			return err
		}

		if jsonOut {
			return output.JSON(map[string]interface{}{
				"type":            p.TypeName(),
				"description":     p.Description(),
				"fields":          fieldSummaries(p.Fields()),
				"advanced_fields": fieldSummaries(p.AdvancedFields()),
			})
		}

		doc := "# " + p.TypeName() + "\n\n" + p.Description() + "\n"
		if notes := p.Notes(); notes != "" {
			doc += "\n" + notes + "\n"
		}
		if rendered, err := output.RenderMarkdown(doc); err == nil && rendered != "" {
			fmt.Println(rendered)
		} else {
			fmt.Println(doc)
		}

		fmt.Println()
		printFields("Fields", p.Fields())
		printFields("Advanced fields", p.AdvancedFields())
		return nil
	},
}

func printFields(heading string, fields []plugin.Field) {
	if len(fields) == 0 {
		return
	}
	output.Info("%s:", heading)
	for _, f := range fields {
		required := ""
		if f.Required {
			required = " (required)"
		}
		def := ""
		if f.Default != "" {
			def = fmt.Sprintf(" [default: %s]", f.Default)
		}
		fmt.Printf("  %-20s %-8s%s%s\n", f.Name, f.Kind, required, def)
		if f.Description != "" {
			output.Subtle("    %s", f.Description)
		}
	}
}

type fieldSummary struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Default  string   `json:"default,omitempty"`
	Choices  []string `json:"choices,omitempty"`
}

func fieldSummaries(fields []plugin.Field) []fieldSummary {
	out := make([]fieldSummary, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldSummary{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     string(f.Kind),
			Required: f.Required,
			Default:  f.Default,
			Choices:  f.Choices,
		})
	}
	return out
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
