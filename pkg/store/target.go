package store

import (
	"fmt"
)

// Target is where a record buffer lives between sessions. Implementations
// read and write the whole buffer at once; there is no partial I/O.
type Target interface {
	// ReadAll returns the stored bytes, or an empty slice when nothing has
	// been stored yet
	ReadAll() ([]byte, error)
	// WriteAll replaces the stored bytes with data
	WriteAll(data []byte) error
	// String names the target in logs
	String() string
}

// IOError is returned when a target cannot be read or written
type IOError struct {
	Op     string // "read" or "write"
	Target string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
