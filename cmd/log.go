package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msalah0e/cmdstats/internal/history"
	"github.com/spf13/cobra"
)

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <history-line>",
		Short: "Record a command from your shell history",
		Long: `Record one command. Pass the raw line from your shell history; a leading
history number is stripped.

  cmdstats log "$(history 1)"      # from PROMPT_COMMAND
  cmdstats log git status          # words are joined with spaces`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := openStore().Append(strings.Join(args, " "))
			if errors.Is(err, history.ErrIgnored) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("log: %w", err)
			}
			return nil
		},
	}

	// Everything after the first argument belongs to the logged command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
