package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/rclone"
	"github.com/spf13/cobra"
)

var systemCmd = &cobra.Command{
	Use:     "system",
	Short:   "Report the state of the external tools rcm depends on",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		type check struct {
			Name   string `json:"name"`
			OK     bool   `json:"ok"`
			Detail string `json:"detail"`
		}
		var checks []check

		if rclone.Available() {
			ver, err := rclone.Version(cmd.Context())
			if err != nil {
				ver = err.Error()
			}
			checks = append(checks, check{"rclone", true, ver})
		} else {
			checks = append(checks, check{"rclone", false, rclone.Binary + " not found on PATH"})
		}

		if _, err := os.Stat(a.Store.Path()); err == nil {
			checks = append(checks, check{"config", true, a.Store.Path()})
		} else {
			checks = append(checks, check{"config", false, "no config at " + a.Store.Path()})
		}

		for _, tool := range []string{"mountpoint", "fusermount", "crontab", "xdg-open"} {
			if _, err := exec.LookPath(tool); err == nil {
				checks = append(checks, check{tool, true, "available"})
			} else {
				checks = append(checks, check{tool, false, "not found on PATH"})
			}
		}

		if jsonOut {
			return output.JSON(checks)
		}
		for _, c := range checks {
			mark := "ok"
			if !c.OK {
				mark = "missing"
			}
			fmt.Printf("%-12s %-8s %s\n", c.Name, mark, c.Detail)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(systemCmd)
}
