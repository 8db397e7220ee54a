package cmd

import (
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:     "check <name>",
	Short:   "Test connectivity to a saved remote",
	GroupID: "remotes",
	Long: `Run a lightweight listing against the remote to verify the stored
configuration still works. Bounded at 30 seconds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a := newApp()

		res := a.Manager.Probe(cmd.Context(), name)
		if jsonOut {
			return output.JSON(map[string]interface{}{"remote": name, "ok": res.OK, "message": res.Message})
		}
		if !res.OK {
			return report(&manager.ExternalToolError{Op: "check", Message: res.Message})
		}
		output.Success("%s: %s", name, res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
