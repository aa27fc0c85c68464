// Package export serializes reports and search results.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/msalah0e/cmdstats/internal/history"
	"github.com/msalah0e/cmdstats/internal/report"
)

// Format is an output format.
type Format int

const (
	Text Format = iota
	JSON
	CSV
)

// Formats lists the accepted --format values.
var Formats = []string{"text", "json", "csv"}

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case CSV:
		return "csv"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	}
	return 0, &report.ValidationError{
		Field:  "format",
		Value:  s,
		Reason: "must be one of " + strings.Join(Formats, ", "),
	}
}

// textEscaper keeps each text entry on one line. Backslash is escaped too, so
// the output can be unescaped back to the exact command.
var textEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

func stamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// WriteRows writes report rows in the given format, in the order given.
func WriteRows(w io.Writer, rows []report.Row, f Format) error {
	switch f {
	case Text:
		if _, err := fmt.Fprintln(w, "COUNT  LAST USED  COMMAND"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%d  %s  %s\n", r.Count, stamp(r.LastUsed), textEscaper.Replace(r.Command)); err != nil {
				return err
			}
		}
		return nil
	case JSON:
		if rows == nil {
			rows = []report.Row{}
		}
		return writeJSON(w, rows)
	case CSV:
		cw := csv.NewWriter(w)
		cw.Write([]string{"command", "count", "last_used"})
		for _, r := range rows {
			cw.Write([]string{r.Command, strconv.Itoa(r.Count), stamp(r.LastUsed)})
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("export: unsupported format %v", f)
}

// WriteRecords writes raw records in the given format, in the order given.
func WriteRecords(w io.Writer, records []history.Record, f Format) error {
	switch f {
	case Text:
		if _, err := fmt.Fprintln(w, "TIMESTAMP  COMMAND"); err != nil {
			return err
		}
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "%s  %s\n", stamp(r.Timestamp), textEscaper.Replace(r.Command)); err != nil {
				return err
			}
		}
		return nil
	case JSON:
		if records == nil {
			records = []history.Record{}
		}
		return writeJSON(w, records)
	case CSV:
		cw := csv.NewWriter(w)
		cw.Write([]string{"command", "timestamp"})
		for _, r := range records {
			cw.Write([]string{r.Command, stamp(r.Timestamp)})
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("export: unsupported format %v", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
