package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/cmdstats/internal/config"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ui.Banner(out, "configuration")

			configFile := config.Path()
			exists := ui.Subtle.Sprint("(defaults, file not created)")
			if _, err := os.Stat(configFile); err == nil {
				exists = ""
			}
			fmt.Fprintf(out, "  Config file:  %s %s\n", configFile, exists)
			fmt.Fprintf(out, "  History file: %s\n\n", openStore().Path())

			return toml.NewEncoder(out).Encode(currentConfig())
		},
	}

	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.EnsureExists(); err != nil {
				return fmt.Errorf("config init: %w", err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "%s Config at %s\n", ui.StatusIcon(true), config.ConfigDir())
			return nil
		},
	}
}
