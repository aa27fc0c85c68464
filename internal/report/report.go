// Package report turns logged command records into usage statistics.
// Every function here is pure: the reference time for date filtering is
// passed in by the caller.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/msalah0e/cmdstats/internal/history"
)

// Usage is the aggregate for one distinct command.
type Usage struct {
	Count    int
	LastUsed time.Time
}

// Report maps a grouping key (normally the command text) to its usage.
type Report map[string]Usage

// Row is one ranked report entry.
type Row struct {
	Command  string    `json:"command"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}

// Share returns the row's percentage of total.
func (r Row) Share(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(r.Count) / float64(total) * 100
}

// KeyFunc derives the grouping key of a record.
type KeyFunc func(history.Record) string

// ByCommand groups by exact command text.
func ByCommand(r history.Record) string {
	return r.Command
}

// ByBase groups by the first word of the command.
func ByBase(r history.Record) string {
	return history.BaseCommand(r.Command)
}

// FilterByDays keeps records stamped between the cutoff and now, both
// inclusive. For days > 0 the cutoff is now minus days*24h, so a record
// exactly days old is kept. For days == 0 the cutoff is the start of now's
// calendar day.
func FilterByDays(records []history.Record, days int, now time.Time) []history.Record {
	var cutoff time.Time
	if days > 0 {
		cutoff = now.Add(-time.Duration(days) * 24 * time.Hour)
	} else {
		y, m, d := now.Date()
		cutoff = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}

	var kept []history.Record
	for _, r := range records {
		if r.Timestamp.Before(cutoff) || r.Timestamp.After(now) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Aggregate groups records by exact command text.
func Aggregate(records []history.Record) Report {
	return AggregateBy(records, ByCommand)
}

// AggregateBy groups records by key, counting them and tracking the
// latest timestamp per group.
func AggregateBy(records []history.Record, key KeyFunc) Report {
	rep := make(Report)
	for _, r := range records {
		k := key(r)
		u := rep[k]
		u.Count++
		if r.Timestamp.After(u.LastUsed) {
			u.LastUsed = r.Timestamp
		}
		rep[k] = u
	}
	return rep
}

// Ranked returns every report entry ordered by count descending, then most
// recent use, then command text.
func Ranked(rep Report) []Row {
	rows := make([]Row, 0, len(rep))
	for cmd, u := range rep {
		rows = append(rows, Row{Command: cmd, Count: u.Count, LastUsed: u.LastUsed})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		return a.Command < b.Command
	})
	return rows
}

// TopN returns at most n entries of the ranked report.
func TopN(rep Report, n int) ([]Row, error) {
	if n <= 0 {
		return nil, &ValidationError{Field: "n", Reason: "must be a positive integer"}
	}
	rows := Ranked(rep)
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// Search returns records whose command contains query, ignoring case, in
// their original order. An empty query matches nothing.
func Search(records []history.Record, query string) []history.Record {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var matches []history.Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Command), q) {
			matches = append(matches, r)
		}
	}
	return matches
}

// Summary holds the totals shown above a stats table.
type Summary struct {
	Total    int
	Distinct int
	LastUsed time.Time
}

// Summarize computes the header totals for a filtered record set.
func Summarize(records []history.Record, rep Report) Summary {
	s := Summary{Total: len(records), Distinct: len(rep)}
	for _, u := range rep {
		if u.LastUsed.After(s.LastUsed) {
			s.LastUsed = u.LastUsed
		}
	}
	return s
}
