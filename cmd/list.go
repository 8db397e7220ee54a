package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/remotes"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List remotes with mount and autostart state",
	GroupID: "remotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		statuses, err := a.Manager.List(cmd.Context())
		if err != nil {
			// A fresh machine has no config yet; that is not a failure.
			if errors.Is(err, remotes.ErrStoreAbsent) {
				if jsonOut {
					output.JSONError(output.ErrCodeNotFound, "no rclone config found")
					return nil
				}
				output.Warning("No rclone config found at %s", a.Store.Path())
				output.Subtle("Create a remote with: rcm add <type> <name>")
				return nil
			}
			return report(err)
		}

		if jsonOut {
			return output.JSON(statuses)
		}

		if len(statuses) == 0 {
			output.Info("No remotes configured")
			output.Subtle("Create one with: rcm add <type> <name>")
			return nil
		}

		header := lipgloss.NewStyle().Bold(true)
		fmt.Printf("%s\n", header.Render(fmt.Sprintf("%-20s %-10s %-8s %-10s %s", "REMOTE", "TYPE", "MOUNTED", "AUTOSTART", "MOUNT POINT")))
		for _, s := range statuses {
			name := s.Name
			if !s.Editable {
				name += " *"
			}
			fmt.Printf("%-20s %-10s %-8s %-10s %s\n",
				name,
				strings.ToLower(s.Type),
				output.FormatMounted(s.Mounted),
				output.FormatAutostart(s.Autostart),
				s.MountPath)
		}
		if hasUneditable(statuses) {
			output.Subtle("* no handler for this remote type; listed but not editable here")
		}
		return nil
	},
}

func hasUneditable(statuses []manager.RemoteStatus) bool {
	for _, s := range statuses {
		if !s.Editable {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(listCmd)
}
