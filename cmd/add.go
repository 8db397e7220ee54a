package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcus/rcm/internal/forms"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <type> <name>",
	Short:   "Create a new remote",
	GroupID: "remotes",
	Long: `Create a new remote of the given type.

Field values can be supplied with repeated --set key=value flags; without
any --set the command opens an interactive form built from the type's
field schema. Connectivity is tested before saving unless --no-probe is
given; a failed test asks for confirmation rather than blocking the save.`,
	Example: `  rcm add sftp myhost --set host=example.com --set user=bob
  rcm add webdav cloud`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, name := args[0], args[1]
		a := newApp()

		p, ok := a.Registry.Lookup(typeName)
		if !ok {
			err := fmt.Errorf("unknown remote type %q (available: %v)", typeName, a.Registry.Available())
			if jsonOut {
				output.JSONError(output.ErrCodeUnknownType, err.Error())
				return err
			}
			output.Error("%v", err)
			return err
		}

		setFlags, _ := cmd.Flags().GetStringArray("set")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		force, _ := cmd.Flags().GetBool("force")
		noProbe, _ := cmd.Flags().GetBool("no-probe")

		var values map[string]string
		if len(setFlags) > 0 {
			var err error
			values, err = parseSetFlags(setFlags)
			if err != nil {
				return report(err)
			}
		} else {
			form, bound := forms.Build(p, "New Remote: "+name, nil)
			if err := form.Run(); err != nil {
				return report(fmt.Errorf("cancelled: %w", err))
			}
			values = bound.Map()
		}

		opts := manager.Options{Overwrite: overwrite, SkipProbe: noProbe, Force: force}
		if err := saveRemote(cmd.Context(), a, name, values, opts, func(ctx context.Context, o manager.Options) error {
			return a.Manager.Create(ctx, typeName, name, values, o)
		}); err != nil {
			return err
		}

		if jsonOut {
			return output.JSON(map[string]string{"created": name, "type": p.TypeName()})
		}
		output.Success("Created remote %s (%s)", name, p.TypeName())
		return nil
	},
}

// saveRemote runs a create or edit closure, walking the user through the
// explicit confirmations the conflict and probe failures require.
func saveRemote(ctx context.Context, a *app, name string, values map[string]string, opts manager.Options, save func(context.Context, manager.Options) error) error {
	err := save(ctx, opts)

	var conflict *manager.ConflictError
	if errors.As(err, &conflict) {
		if !confirm(fmt.Sprintf("Remote %q already exists. Overwrite?", name)) {
			return report(err)
		}
		opts.Overwrite = true
		err = save(ctx, opts)
	}

	var probe *manager.ProbeFailedError
	if errors.As(err, &probe) {
		output.Warning("Connection test failed: %s", probe.Message)
		if !confirm("Save anyway?") {
			return report(err)
		}
		opts.Force = true
		err = save(ctx, opts)
	}

	if err != nil {
		return report(err)
	}
	return nil
}

func init() {
	addCmd.Flags().StringArray("set", nil, "field value as key=value (repeatable)")
	addCmd.Flags().Bool("overwrite", false, "replace an existing remote with the same name")
	addCmd.Flags().Bool("force", false, "save even if the connection test fails")
	addCmd.Flags().Bool("no-probe", false, "skip the connection test")
	rootCmd.AddCommand(addCmd)
}
