package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/rcm/pkg/dashboard"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:     "dash",
	Aliases: []string{"ui", "monitor"},
	Short:   "Interactive dashboard for managing remotes",
	GroupID: "remotes",
	Long: `Launch the interactive dashboard: a live remote list with mount and
autostart state, per-type configuration forms, and one-key mount,
unmount, connection test, and autostart toggles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		model := dashboard.New(a.Manager, a.Mounter, a.Sched, a.PrefsDir, a.Prefs)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
