package cmd

import (
	"context"
	"fmt"

	"github.com/marcus/rcm/internal/forms"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <name>",
	Short:   "Edit an existing remote",
	GroupID: "remotes",
	Long: `Edit a remote's configuration. The remote's name and type cannot be
changed; every other field is replaced by the new values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a := newApp()

		entry, err := a.Store.ReadOne(name)
		if err != nil {
			return report(&manager.NotFoundError{Name: name})
		}
		p, ok := a.Registry.Lookup(entry.Type)
		if !ok {
			return report(&manager.UnknownTypeError{TypeName: entry.Type})
		}

		setFlags, _ := cmd.Flags().GetStringArray("set")
		force, _ := cmd.Flags().GetBool("force")
		noProbe, _ := cmd.Flags().GetBool("no-probe")

		var values map[string]string
		if len(setFlags) > 0 {
			values, err = parseSetFlags(setFlags)
			if err != nil {
				return report(err)
			}
		} else {
			form, bound := forms.Build(p, fmt.Sprintf("Edit Remote: %s (%s)", name, p.TypeName()), entry.Fields)
			if err := form.Run(); err != nil {
				return report(fmt.Errorf("cancelled: %w", err))
			}
			values = bound.Map()
		}

		opts := manager.Options{SkipProbe: noProbe, Force: force}
		if err := saveRemote(cmd.Context(), a, name, values, opts, func(ctx context.Context, o manager.Options) error {
			return a.Manager.Edit(ctx, name, values, o)
		}); err != nil {
			return err
		}

		if jsonOut {
			return output.JSON(map[string]string{"updated": name})
		}
		output.Success("Updated remote %s", name)
		return nil
	},
}

func init() {
	editCmd.Flags().StringArray("set", nil, "field value as key=value (repeatable)")
	editCmd.Flags().Bool("force", false, "save even if the connection test fails")
	editCmd.Flags().Bool("no-probe", false, "skip the connection test")
	rootCmd.AddCommand(editCmd)
}
