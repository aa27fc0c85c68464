package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/cmdstats/internal/export"
	"github.com/msalah0e/cmdstats/internal/report"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var flags reportFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ranked usage report",
		Long: `Write the full ranked report (command, count, last used) in a
machine-readable format. JSON is the default.

  cmdstats export > usage.json
  cmdstats export --format csv --output usage.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flags.validate(cmd, "json")
			if err != nil {
				return err
			}

			records := flags.filter(cmd, loadRecords(cmd))
			rows := report.Ranked(report.AggregateBy(records, flags.keyFunc()))

			if output == "" {
				return export.WriteRows(cmd.OutOrStdout(), rows, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := export.WriteRows(f, rows, format); err != nil {
				f.Close()
				return fmt.Errorf("export: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "%s Exported %d commands to %s\n", ui.StatusIcon(true), len(rows), output)
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
