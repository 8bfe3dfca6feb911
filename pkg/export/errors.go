package export

import (
	"fmt"
)

// FormatError is returned when an imported value cannot be parsed for its
// field. Index is the element position in a ";"-separated list, or -1 for
// scalar fields.
type FormatError struct {
	Field string
	Index int
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("field %q: cannot parse %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("field %q element %d: cannot parse %q: %v", e.Field, e.Index, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
