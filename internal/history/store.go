package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// FileName is the name of the JSON store inside the data directory.
	FileName = "commands.json"
	// LockFileName guards read-modify-write cycles across processes.
	LockFileName = "commands.json.lock"
)

// legacyLayout matches naive ISO-8601 timestamps written without a zone.
const legacyLayout = "2006-01-02T15:04:05.999999"

// indexPattern matches the "  123  " prefix of `history` output. Bash marks
// edited entries with a trailing '*'.
var indexPattern = regexp.MustCompile(`^\s*\d+\*?\s+`)

// Record is one logged command occurrence.
type Record struct {
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// UnmarshalJSON accepts RFC 3339 timestamps as well as zone-less ones,
// which are read in local time. Unknown fields are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Command   string `json:"command"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
	if err != nil {
		ts, err = time.ParseInLocation(legacyLayout, raw.Timestamp, time.Local)
		if err != nil {
			return err
		}
	}
	r.Command = raw.Command
	r.Timestamp = ts
	return nil
}

// Options configures a Store.
type Options struct {
	MaxRecords  int      // 0 keeps everything
	Ignore      []string // base commands that are never logged
	IgnoreSpace bool     // skip index-less lines starting with a space
}

// Store is a handle on the persisted command collection.
type Store struct {
	path        string
	lockPath    string
	maxRecords  int
	ignore      map[string]bool
	ignoreSpace bool
	now         func() time.Time
}

// Open returns a Store backed by the files inside dir. Nothing is read or
// created until the first Load or Append.
func Open(dir string, opts Options) *Store {
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = true
	}
	return &Store{
		path:        filepath.Join(dir, FileName),
		lockPath:    filepath.Join(dir, LockFileName),
		maxRecords:  opts.MaxRecords,
		ignore:      ignore,
		ignoreSpace: opts.IgnoreSpace,
		now:         time.Now,
	}
}

// Path returns the location of the JSON store.
func (s *Store) Path() string {
	return s.path
}

// SetClock replaces the clock used to stamp new records.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// ParseLine extracts the command text from a raw history line, dropping a
// leading history index and surrounding whitespace.
func ParseLine(raw string) (string, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return "", &ParseError{Line: raw, Reason: "empty line"}
	}
	cmd := strings.TrimSpace(indexPattern.ReplaceAllString(line, ""))
	if cmd == "" {
		return "", &ParseError{Line: raw, Reason: "no command after history index"}
	}
	return cmd, nil
}

// BaseCommand returns the first word of a command.
func BaseCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return command
	}
	return fields[0]
}

// Append parses raw, stamps it with the current time and persists it.
// The whole cycle runs under an exclusive lock on the sidecar lock file.
func (s *Store) Append(raw string) (Record, error) {
	cmd, err := ParseLine(raw)
	if err != nil {
		return Record{}, err
	}
	if s.ignored(raw, cmd) {
		return Record{}, ErrIgnored
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Record{}, &StorageError{Op: "create", Path: dir, Err: err}
	}

	unlock := s.lock()
	defer unlock()

	records, err := s.Load()
	if err != nil {
		return Record{}, err
	}

	rec := Record{Command: cmd, Timestamp: s.now()}
	records = append(records, rec)
	if s.maxRecords > 0 && len(records) > s.maxRecords {
		records = records[len(records)-s.maxRecords:]
	}

	if err := s.write(records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Load reads the full collection in insertion order. A missing or empty
// store yields no records.
func (s *Store) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &StorageError{Op: "decode", Path: s.path, Err: err}
	}
	return records, nil
}

func (s *Store) ignored(raw, cmd string) bool {
	if s.ignoreSpace && strings.HasPrefix(raw, " ") && !indexPattern.MatchString(raw) {
		return true
	}
	return s.ignore[BaseCommand(cmd)]
}

// lock takes the cross-process write lock. If the lock file can't be used
// the caller proceeds unlocked.
func (s *Store) lock() func() {
	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return func() {}
	}
	if err := flockExclusive(f); err != nil {
		f.Close()
		return func() {}
	}
	return func() {
		_ = funlock(f)
		f.Close()
	}
}

// write replaces the store atomically via a temp file in the same directory.
func (s *Store) write(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".commands-*.json")
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "replace", Path: s.path, Err: err}
	}
	return nil
}
