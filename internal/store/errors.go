package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no stored task has the requested id.
var ErrNotFound = errors.New("task not found")

// ValidationError reports a missing or malformed field on create/update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CorruptRecordError reports a line in the data file that failed to parse.
// The operation that hit it is aborted; corrupt records are never dropped
// silently.
type CorruptRecordError struct {
	Line    int
	Content string
	Err     error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record at line %d: %v", e.Line, e.Err)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Err
}
