package cmd

import (
	"fmt"

	"github.com/marcus/rcm/internal/output"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a remote from the config",
	GroupID: "remotes",
	Long: `Delete a remote's config section. Mounts and crontab entries are left
alone; unmount and disable autostart separately if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a := newApp()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Delete remote %q?", name)) {
			output.Info("Aborted")
			return nil
		}

		if err := a.Manager.Delete(name); err != nil {
			return report(err)
		}

		if jsonOut {
			return output.JSON(map[string]string{"deleted": name})
		}
		output.Success("Deleted remote %s", name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
