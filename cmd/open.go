package cmd

import (
	"fmt"
	"os/exec"

	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:     "open <name>",
	Short:   "Open a mounted remote in the file browser",
	GroupID: "mounts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a := newApp()

		dir := a.Mounter.Dir(name)
		if !a.Mounter.IsMounted(dir) {
			return report(fmt.Errorf("%s is not mounted", name))
		}

		if err := openFolder(dir); err != nil {
			return report(&manager.ExternalToolError{Op: "open", Message: err.Error()})
		}
		output.Info("Opened %s", dir)
		return nil
	},
}

// openFolder hands the directory to the desktop, trying xdg-open first
// and gio as the fallback.
func openFolder(dir string) error {
	if err := exec.Command("xdg-open", dir).Run(); err == nil {
		return nil
	}
	if err := exec.Command("gio", "open", dir).Run(); err == nil {
		return nil
	}
	return fmt.Errorf("could not open folder: %s", dir)
}

func init() {
	rootCmd.AddCommand(openCmd)
}
