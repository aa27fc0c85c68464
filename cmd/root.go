package cmd

import (
	"time"

	"github.com/msalah0e/cmdstats/internal/config"
	"github.com/msalah0e/cmdstats/internal/history"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.4.0"

var (
	cfg     *config.Config
	dataDir string
	noColor bool

	// now is the reference time for --days filtering.
	now = time.Now
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdstats",
		Short: "cmdstats — shell command usage statistics",
		Long: ui.Brand.Sprint("cmdstats") + " — track the shell commands you run and see which ones you use most\n" +
			ui.Subtle.Sprint("Log each command from your prompt hook, then ask for stats, top, search or export"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if noColor || !cfg.UI.Color {
				ui.DisableColor()
			}
		},
	}

	root.SetVersionTemplate("cmdstats {{ .Version }}\n")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding commands.json (default from config)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		logCmd(),
		statsCmd(),
		topCmd(),
		searchCmd(),
		exportCmd(),
		configCmd(),
		completionCmd(),
	)
	return root
}

var rootCmd = newRootCmd()

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func currentConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

// openStore returns the store handle for this invocation.
func openStore() *history.Store {
	c := currentConfig()
	dir := dataDir
	if dir == "" {
		dir = c.DataDir()
	}
	return history.Open(dir, history.Options{
		MaxRecords:  c.Store.MaxRecords,
		Ignore:      c.Log.Ignore,
		IgnoreSpace: c.Log.IgnoreSpace,
	})
}
