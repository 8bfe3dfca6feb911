// Package codec provides the fixed-schema record layout and typed accessors
// for binsave.
//
// A record is a flat byte buffer described by an ordered list of fields.
// Each field has a name, a storage type and an element count. The schema is
// not stored with the data: the same field list must be supplied every time
// a buffer is opened.
//
// # Layout
//
// Fields are packed back to back in declaration order with no padding:
//
//	offset[0] = 0
//	offset[i] = offset[i-1] + count[i-1] * width(type[i-1])
//
// For example, fields of byte lengths 1, 3 and 2 sit at offsets 0, 1 and 4
// and the record is 6 bytes long.
//
// # Storage Types
//
//   - byte: one raw byte per element
//   - bool: one byte per element, 0xFF for true and 0x00 for false; only an
//     exact 0xFF reads back as true
//   - bools8: eight booleans per byte, first boolean in bit 7; count is the
//     number of bytes
//   - int8 .. int64: little-endian two's complement, 1 to 8 bytes, sign
//     extended on read from bit 7 of the most significant stored byte
//   - uint8 .. uint56: little-endian, 1 to 7 bytes, zero extended on read
//   - char_ascii: one byte per character, masked to 7 bits
//   - char_wide: one little-endian 16-bit UTF-16 code unit per character
//
// # Usage
//
//	schema := codec.MustCompile(
//	    codec.F("flags", codec.BoolPacked8, 1),
//	    codec.F("level", codec.Int16, 1),
//	    codec.F("name", codec.CharASCII, 8),
//	)
//
//	rec := codec.NewRecord(schema)
//	if err := rec.SetInt32("level", -12); err != nil {
//	    return err
//	}
//	name, err := rec.String("name")
//
// # Error Handling
//
// Accessors return a *FieldError wrapping ErrUnknownField, ErrTypeMismatch
// or ErrInvalidArgument. These are programming errors: the schema is fixed
// for the lifetime of a record, so they never go away on retry.
//
// Stores that do not fit a field are not errors. The leading part of the
// input is written, and a Truncation is recorded, logged and passed to the
// handler installed with WithTruncationHandler. A record keeps the 64 most
// recent truncations until TakeTruncations drains them. Integer stores drop
// high order bytes silently; that is the width contract of the field.
//
// String decodes wide fields with UTF-16 rules, so a surrogate without its
// partner reads back as U+FFFD. Units and SetUnits work on the raw code
// units instead.
//
// # Thread Safety
//
// A Record is owned by a single goroutine. Callers that share one must
// serialize access themselves.
package codec
