package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/msalah0e/cmdstats/internal/export"
	"github.com/msalah0e/cmdstats/internal/history"
	"github.com/msalah0e/cmdstats/internal/report"
	"github.com/msalah0e/cmdstats/internal/ui"
	"github.com/spf13/cobra"
)

// reportFlags are the flags shared by the read-only commands.
type reportFlags struct {
	days   int
	format string
	base   bool
}

func (f *reportFlags) register(cmd *cobra.Command, withBase bool) {
	cmd.Flags().IntVar(&f.days, "days", 0, "Only count commands from the last N days (0 = today)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: text, json or csv")
	if withBase {
		cmd.Flags().BoolVar(&f.base, "base", false, "Group by base command (first word) instead of the full command")
	}
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletionFunc)
}

// validate checks the flags before anything is read or printed.
func (f *reportFlags) validate(cmd *cobra.Command, fallback string) (export.Format, error) {
	name := f.format
	if name == "" {
		name = fallback
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return 0, err
	}
	if cmd.Flags().Changed("days") && f.days < 0 {
		return 0, &report.ValidationError{Field: "days", Value: strconv.Itoa(f.days), Reason: "must not be negative"}
	}
	return format, nil
}

func (f *reportFlags) filter(cmd *cobra.Command, records []history.Record) []history.Record {
	if !cmd.Flags().Changed("days") {
		return records
	}
	return report.FilterByDays(records, f.days, now())
}

func (f *reportFlags) keyFunc() report.KeyFunc {
	if f.base {
		return report.ByBase
	}
	return report.ByCommand
}

func (f *reportFlags) period(cmd *cobra.Command) string {
	switch {
	case !cmd.Flags().Changed("days"):
		return "all time"
	case f.days == 0:
		return "today"
	case f.days == 1:
		return "last day"
	}
	return fmt.Sprintf("last %d days", f.days)
}

// loadRecords reads the store for a report. An unreadable store is reported
// as a warning and treated as empty history.
func loadRecords(cmd *cobra.Command) []history.Record {
	records, err := openStore().Load()
	if err != nil {
		ui.Warn.Fprintf(cmd.ErrOrStderr(), "%s history unreadable, showing no data: %v\n", ui.WarnIcon(), err)
		return nil
	}
	return records
}

// rankedTable prints rows as the human-readable table used by stats and top.
func rankedTable(cmd *cobra.Command, rows []report.Row, total int) {
	headers := []string{"#", "Command", "Count", "Share", "Last used"}
	var table [][]string
	for i, r := range rows {
		table = append(table, []string{
			strconv.Itoa(i + 1),
			ui.Truncate(r.Command, 40),
			strconv.Itoa(r.Count),
			fmt.Sprintf("%.1f%%", r.Share(total)),
			formatWhen(r.LastUsed),
		})
	}
	ui.Table(cmd.OutOrStdout(), headers, table)
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatAgo(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dd", int(d.Hours())/24)
}

func formatCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return export.Formats, cobra.ShellCompDirectiveNoFileComp
}
