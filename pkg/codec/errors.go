package codec

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
)

// FieldError describes a failed accessor call on a named field.
// Err is one of the package sentinels and can be matched with errors.Is.
type FieldError struct {
	Op    string      // accessor, e.g. "SetInt32"
	Field string      // requested field name
	Type  StorageType // declared type; zero when the field is unknown
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrUnknownField) {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q (%s): %v", e.Op, e.Field, e.Type, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
