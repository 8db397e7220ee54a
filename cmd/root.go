package cmd

import (
	"os"

	"github.com/marcus/rcm/internal/cron"
	"github.com/marcus/rcm/internal/manager"
	"github.com/marcus/rcm/internal/mount"
	"github.com/marcus/rcm/internal/output"
	"github.com/marcus/rcm/internal/plugin"
	"github.com/marcus/rcm/internal/prefs"
	"github.com/marcus/rcm/internal/rclone"
	"github.com/marcus/rcm/internal/remotes"
	"github.com/spf13/cobra"
)

var (
	version    string
	configFlag string
	jsonOut    bool
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "rcm",
	Short: "Manage rclone remotes: configure, mount, and schedule them",
	Long: `rcm - a terminal manager for rclone remotes.

Lists the remotes of your rclone config with live mount state, adds and
edits them through per-type configuration forms, mounts them under ~/mnt,
and wires @reboot crontab entries so they come back after a restart.`,
	// Errors are printed by report() in the active output mode.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "rclone config file (default: rclone's own location)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "machine-readable JSON output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "remotes", Title: "Remote Commands:"},
		&cobra.Group{ID: "mounts", Title: "Mount Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

// app bundles the wired collaborators for one command invocation.
type app struct {
	Prefs    *prefs.Preferences
	PrefsDir string
	Store    *remotes.Store
	Registry *plugin.Registry
	Mounter  *mount.Controller
	Sched    *cron.Scheduler
	Manager  *manager.Manager
}

// newApp loads preferences, resolves the config path and binary
// overrides, and wires the lifecycle manager.
func newApp() *app {
	prefsDir := prefs.DefaultDir()
	p, err := prefs.Load(prefsDir)
	if err != nil {
		output.Warning("could not read preferences: %v", err)
		p = &prefs.Preferences{}
	}

	if p.RcloneBinary != "" {
		rclone.Binary = p.RcloneBinary
	}

	configPath := configFlag
	if configPath == "" {
		configPath = p.ConfigPath
	}
	if configPath == "" {
		configPath = remotes.DefaultPath()
	}

	mountBase := p.MountBase
	if mountBase == "" {
		mountBase = mount.DefaultBase()
	}

	registry := plugin.NewRegistry()
	plugin.RegisterBuiltins(registry)
	for _, err := range registry.Discover() {
		output.Warning("%v", err)
	}

	store := remotes.NewStore(configPath)
	mounter := &mount.Controller{Base: mountBase, ConfigPath: configPath}
	sched := &cron.Scheduler{}

	return &app{
		Prefs:    p,
		PrefsDir: prefsDir,
		Store:    store,
		Registry: registry,
		Mounter:  mounter,
		Sched:    sched,
		Manager:  manager.New(store, registry, mounter, sched),
	}
}
