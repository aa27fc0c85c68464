package history

import (
	"errors"
	"fmt"
)

// ErrIgnored is returned by Append when the command matches the ignore
// settings. Nothing is written.
var ErrIgnored = errors.New("command ignored")

// ParseError reports a history line that holds no command.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse history line %q: %s", e.Line, e.Reason)
}

// StorageError reports an unreadable, corrupt or unwritable store.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
