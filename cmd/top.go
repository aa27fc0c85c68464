package cmd

import (
	"fmt"
	"strconv"

	"github.com/msalah0e/cmdstats/internal/export"
	"github.com/msalah0e/cmdstats/internal/report"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

func topCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "top [N]",
		Short: "Show the N most used commands",
		Long: `Rank commands by how often they were used. Ties go to the command used
most recently, then alphabetically.

  cmdstats top                     # top 10 (report.top in config)
  cmdstats top 5 --days 30
  cmdstats top 3 --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := currentConfig().Report.Top
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return &report.ValidationError{Field: "N", Value: args[0], Reason: "must be a positive integer"}
				}
				n = v
			}
			if n <= 0 {
				return &report.ValidationError{Field: "N", Value: strconv.Itoa(n), Reason: "must be a positive integer"}
			}
			format, err := flags.validate(cmd, currentConfig().Report.Format)
			if err != nil {
				return err
			}

			records := flags.filter(cmd, loadRecords(cmd))
			rows, err := report.TopN(report.AggregateBy(records, flags.keyFunc()), n)
			if err != nil {
				return err
			}

			if format != export.Text {
				return export.WriteRows(cmd.OutOrStdout(), rows, format)
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, fmt.Sprintf("top %d commands (%s)", n, flags.period(cmd)))
			if len(rows) == 0 {
				fmt.Fprintln(out, "  No commands recorded yet.")
				return nil
			}
			rankedTable(cmd, rows, len(records))
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}
