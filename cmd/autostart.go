package cmd

import (
	"errors"

	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/remotes"
	"github.com/spf13/cobra"
)

var autostartCmd = &cobra.Command{
	Use:     "autostart <name>",
	Short:   "Show or change a remote's mount-at-startup crontab entry",
	GroupID: "mounts",
	Long: `Without flags, shows whether the remote has an @reboot crontab entry.
--enable adds one, --disable removes it. The entry re-mounts the remote
at its conventional directory on startup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a := newApp()

		if _, err := a.Store.ReadOne(name); err != nil {
			if errors.Is(err, remotes.ErrNotFound) || errors.Is(err, remotes.ErrStoreAbsent) {
				return report(&manager.NotFoundError{Name: name})
			}
			return report(err)
		}

		enable, _ := cmd.Flags().GetBool("enable")
		disable, _ := cmd.Flags().GetBool("disable")

		switch {
		case enable && disable:
			return report(errors.New("--enable and --disable are mutually exclusive"))

		case enable:
			dir, err := a.Mounter.EnsureDir(name)
			if err != nil {
				return report(err)
			}
			if err := a.Sched.AddEntry(name, dir); err != nil {
				return report(&manager.ExternalToolError{Op: "autostart", Message: err.Error()})
			}
			if jsonOut {
				return output.JSON(map[string]interface{}{"remote": name, "autostart": true})
			}
			output.Success("Added %s to crontab for auto-mount", name)

		case disable:
			if err := a.Sched.RemoveEntry(name); err != nil {
				return report(&manager.ExternalToolError{Op: "autostart", Message: err.Error()})
			}
			if jsonOut {
				return output.JSON(map[string]interface{}{"remote": name, "autostart": false})
			}
			output.Success("Removed %s from crontab", name)

		default:
			has := a.Sched.HasEntry(name)
			if jsonOut {
				return output.JSON(map[string]interface{}{"remote": name, "autostart": has})
			}
			if has {
				output.Info("%s is mounted at startup", name)
			} else {
				output.Info("%s is not mounted at startup", name)
			}
		}
		return nil
	},
}

func init() {
	autostartCmd.Flags().Bool("enable", false, "add the @reboot crontab entry")
	autostartCmd.Flags().Bool("disable", false, "remove the @reboot crontab entry")
	rootCmd.AddCommand(autostartCmd)
}
