package cmd

import (
	"errors"

	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/remotes"
	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:     "mount <name>",
	Short:   "Mount a remote under the mount base",
	GroupID: "mounts",
	Long: `Mount a remote at its conventional directory (<mount base>/<name>,
default ~/mnt/<name>). The connection is tested first; the mount process
keeps running after rcm exits.`,
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

		dir, err := a.Mounter.EnsureDir(name)
		if err != nil {
			return report(err)
		}

		if a.Mounter.IsMounted(dir) {
			output.Info("%s is already mounted at %s", name, dir)
			return nil
		}

		skipProbe, _ := cmd.Flags().GetBool("no-probe")
		if !skipProbe {
			if res := a.Manager.Probe(cmd.Context(), name); !res.OK {
				return report(&manager.ExternalToolError{Op: "mount", Message: "connection test failed: " + res.Message})
			}
		}

		if _, err := a.Mounter.Mount(cmd.Context(), name, dir); err != nil {
			return report(&manager.ExternalToolError{Op: "mount", Message: err.Error()})
		}

		if jsonOut {
			return output.JSON(map[string]string{"mounted": name, "path": dir})
		}
		output.Success("Mounted %s at %s", name, dir)
		return nil
	},
}

var unmountCmd = &cobra.Command{
	Use:     "unmount <name>",
	Aliases: []string{"umount"},
	Short:   "Unmount a remote",
	GroupID: "mounts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a := newApp()

		dir := a.Mounter.Dir(name)
		if !a.Mounter.IsMounted(dir) {
			output.Info("%s is not mounted", name)
			return nil
		}

		if err := a.Mounter.Unmount(dir); err != nil {
			return report(&manager.ExternalToolError{Op: "unmount", Message: err.Error()})
		}

		if jsonOut {
			return output.JSON(map[string]string{"unmounted": name})
		}
		output.Success("Unmounted %s", name)
		return nil
	},
}

func init() {
	mountCmd.Flags().Bool("no-probe", false, "skip the connection test before mounting")
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(unmountCmd)
}
