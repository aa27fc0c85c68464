package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/msalah0e/cmdstats/internal/export"
	"github.com/msalah0e/cmdstats/internal/history"
	"github.com/msalah0e/cmdstats/internal/report"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:     "search <query>",
		Aliases: []string{"s", "find"},
		Short:   "Search logged commands",
		Long: `List every logged command containing the query, ignoring case, oldest first.
With --base, matches are grouped by base command instead.

  cmdstats search docker
  cmdstats search git --base
  cmdstats search "git push" --days 7 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := flags.validate(cmd, currentConfig().Report.Format)
			if err != nil {
				return err
			}

			query := args[0]
			matches := report.Search(flags.filter(cmd, loadRecords(cmd)), query)

			if format != export.Text {
				if flags.base {
					return export.WriteRows(cmd.OutOrStdout(), report.Ranked(report.AggregateBy(matches, report.ByBase)), format)
				}
				return export.WriteRecords(cmd.OutOrStdout(), matches, format)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "  No commands found matching %q\n", query)
				return nil
			}

			ui.Banner(out, fmt.Sprintf("commands matching %q", query))
			if flags.base {
				groupedMatches(out, matches)
				return nil
			}
			var rows [][]string
			for _, r := range matches {
				rows = append(rows, []string{formatWhen(r.Timestamp), ui.Truncate(r.Command, 60)})
			}
			ui.Table(out, []string{"Time", "Command"}, rows)

			distinct := len(report.Aggregate(matches))
			fmt.Fprintf(out, "\n  %d matches · %d distinct commands\n", len(matches), distinct)
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

// maxGroupCommands caps the full commands listed under each base command.
const maxGroupCommands = 5

// groupedMatches prints matches grouped by base command, busiest group first,
// each followed by its distinct full commands in sorted order.
func groupedMatches(w io.Writer, matches []history.Record) {
	unique := make(map[string]map[string]bool)
	for _, r := range matches {
		base := history.BaseCommand(r.Command)
		if unique[base] == nil {
			unique[base] = make(map[string]bool)
		}
		unique[base][r.Command] = true
	}

	for _, g := range report.Ranked(report.AggregateBy(matches, report.ByBase)) {
		fmt.Fprintf(w, "\n  %s %s\n", ui.Brand.Sprint(g.Command), ui.Subtle.Sprintf("(%d occurrences)", g.Count))

		cmds := make([]string, 0, len(unique[g.Command]))
		for c := range unique[g.Command] {
			cmds = append(cmds, c)
		}
		sort.Strings(cmds)
		for i, c := range cmds {
			if i == maxGroupCommands {
				fmt.Fprintf(w, "    ... and %d more\n", len(cmds)-maxGroupCommands)
				break
			}
			fmt.Fprintf(w, "    %s\n", ui.Truncate(c, 60))
		}
	}

	fmt.Fprintf(w, "\n  %d matches · %d base commands\n", len(matches), len(unique))
}
