package cmd

import (
	"fmt"

	"github.com/msalah0e/cmdstats/internal/export"
	"github.com/msalah0e/cmdstats/internal/report"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var flags reportFlags
	var limit int

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"st"},
		Short:   "Show command usage statistics",
		Long: `Show how often each command was used and when it was last run.

  cmdstats stats                   # all time
  cmdstats stats --days 7          # last week
  cmdstats stats --base            # group "git status" and "git log" under git
  cmdstats stats --format json     # full ranked report as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flags.validate(cmd, currentConfig().Report.Format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = currentConfig().Report.Limit
			}
			if limit <= 0 {
				return &report.ValidationError{Field: "limit", Value: fmt.Sprint(limit), Reason: "must be a positive integer"}
			}

			records := flags.filter(cmd, loadRecords(cmd))
			rep := report.AggregateBy(records, flags.keyFunc())
			rows := report.Ranked(rep)

			if format != export.Text {
				return export.WriteRows(cmd.OutOrStdout(), rows, format)
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, "command usage statistics")

			summary := report.Summarize(records, rep)
			if summary.Total == 0 {
				fmt.Fprintf(out, "  No commands recorded (%s).\n", flags.period(cmd))
				ui.Subtle.Fprintln(out, "  Add `cmdstats log \"$(history 1)\"` to your prompt hook to start tracking.")
				return nil
			}

			unique := "Unique commands:"
			if flags.base {
				unique = "Unique base commands:"
			}
			fmt.Fprintf(out, "  %-22s %s\n", "Period:", flags.period(cmd))
			fmt.Fprintf(out, "  %-22s %d\n", "Total commands:", summary.Total)
			fmt.Fprintf(out, "  %-22s %d\n", unique, summary.Distinct)
			fmt.Fprintf(out, "  %-22s %s ago\n", "Last used:", formatAgo(now().Sub(summary.LastUsed)))
			fmt.Fprintln(out)

			shown := rows
			if len(shown) > limit {
				shown = shown[:limit]
			}
			rankedTable(cmd, shown, summary.Total)
			if hidden := len(rows) - len(shown); hidden > 0 {
				ui.Subtle.Fprintf(out, "\n  ... and %d more (use --limit to show more)\n", hidden)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Rows shown in the text view")
	return cmd
}
