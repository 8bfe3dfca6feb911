package codec

import (
	"fmt"

	"go.uber.org/zap"
)

// Truncation reports a store whose input did not fit the field.
// The write still happened with the leading Capacity elements.
type Truncation struct {
	Field    string
	Offset   int
	Given    int // elements offered by the caller
	Capacity int // elements the field holds
}

func (t Truncation) String() string {
	return fmt.Sprintf("%s@%d: %d elements truncated to %d", t.Field, t.Offset, t.Given, t.Capacity)
}

// maxTruncations bounds the events a Record keeps between TakeTruncations calls
const maxTruncations = 64

// Option configures a Record
type Option func(*Record)

// WithTruncationHandler registers fn to be called for every truncated store
func WithTruncationHandler(fn func(Truncation)) Option {
	return func(r *Record) {
		r.onTruncate = fn
	}
}

// Record owns a flat byte buffer laid out by a Schema and exposes typed
// accessors keyed by field name. A Record is not safe for concurrent use.
type Record struct {
	schema      *Schema
	buf         []byte
	onTruncate  func(Truncation)
	truncations []Truncation
}

// NewRecord creates a zeroed record for schema
func NewRecord(schema *Schema, opts ...Option) *Record {
	r := &Record{
		schema: schema,
		buf:    make([]byte, schema.Size()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadRecord creates a record whose buffer starts as a copy of raw.
// A short raw leaves the remaining bytes zeroed; bytes past the schema size
// are ignored.
func LoadRecord(schema *Schema, raw []byte, opts ...Option) *Record {
	r := NewRecord(schema, opts...)
	copy(r.buf, raw)
	return r
}

// Schema returns the layout the record was created with
func (r *Record) Schema() *Schema {
	return r.schema
}

// Size returns the buffer length in bytes
func (r *Record) Size() int {
	return len(r.buf)
}

// Raw returns a copy of the whole buffer, ready to persist
func (r *Record) Raw() []byte {
	out := make([]byte, len(r.buf))
	copy(out, r.buf)
	return out
}

// Truncations returns the truncations reported since the last
// TakeTruncations call. Only the most recent 64 are kept.
func (r *Record) Truncations() []Truncation {
	out := make([]Truncation, len(r.truncations))
	copy(out, r.truncations)
	return out
}

// TakeTruncations returns the pending truncations and forgets them
func (r *Record) TakeTruncations() []Truncation {
	out := r.truncations
	r.truncations = nil
	return out
}

// Load replaces the buffer with raw the way LoadRecord does
func (r *Record) Load(raw []byte) {
	n := copy(r.buf, raw)
	clear(r.buf[n:])
}

// resolve looks up name and checks its declared type against accept
func (r *Record) resolve(op, name string, accept func(StorageType) bool) (Slot, error) {
	slot, ok := r.schema.Lookup(name)
	if !ok {
		return Slot{}, &FieldError{Op: op, Field: name, Err: ErrUnknownField}
	}
	if !accept(slot.Type) {
		return Slot{}, &FieldError{Op: op, Field: name, Type: slot.Type, Err: ErrTypeMismatch}
	}
	return slot, nil
}

func (r *Record) bytesOf(slot Slot) []byte {
	return r.buf[slot.Offset:slot.End()]
}

// store copies data into slot, zero-filling what data does not cover.
// given and capacity are element counts used for truncation reporting.
func (r *Record) store(slot Slot, data []byte, given, capacity int) {
	dst := r.bytesOf(slot)
	n := copy(dst, data)
	clear(dst[n:])

	if given > capacity {
		r.truncated(Truncation{
			Field:    slot.Name,
			Offset:   slot.Offset,
			Given:    given,
			Capacity: capacity,
		})
	}
}

func (r *Record) truncated(t Truncation) {
	if len(r.truncations) == maxTruncations {
		n := copy(r.truncations, r.truncations[1:])
		r.truncations = r.truncations[:n]
	}
	r.truncations = append(r.truncations, t)
	Logger().Warn("value truncated to field capacity",
		zap.String("field", t.Field),
		zap.Int("offset", t.Offset),
		zap.Int("given", t.Given),
		zap.Int("capacity", t.Capacity))
	if r.onTruncate != nil {
		r.onTruncate(t)
	}
}

// Clear zeroes every byte of the named field
func (r *Record) Clear(name string) error {
	slot, err := r.resolve("Clear", name, StorageType.Valid)
	if err != nil {
		return err
	}
	clear(r.bytesOf(slot))
	return nil
}

func isByte(t StorageType) bool       { return t == Byte }
func isSingleBool(t StorageType) bool { return t == Bool }
func isWide(t StorageType) bool       { return t == CharWide }
func isNarrowInt(t StorageType) bool  { return t.IsSigned() && t.Width() <= 4 }

// Byte returns the first byte of a Byte field
func (r *Record) Byte(name string) (byte, error) {
	slot, err := r.resolve("Byte", name, isByte)
	if err != nil {
		return 0, err
	}
	return r.buf[slot.Offset], nil
}

// Bytes returns a copy of a Byte field
func (r *Record) Bytes(name string) ([]byte, error) {
	slot, err := r.resolve("Bytes", name, isByte)
	if err != nil {
		return nil, err
	}
	out := make([]byte, slot.Length)
	copy(out, r.bytesOf(slot))
	return out, nil
}

// SetByte stores v as the field's only value; remaining bytes are zeroed
func (r *Record) SetByte(name string, v byte) error {
	return r.setBytes("SetByte", name, []byte{v})
}

// SetBytes stores data into a Byte field, zero-filling or truncating to fit
func (r *Record) SetBytes(name string, data []byte) error {
	return r.setBytes("SetBytes", name, data)
}

func (r *Record) setBytes(op, name string, data []byte) error {
	slot, err := r.resolve(op, name, isByte)
	if err != nil {
		return err
	}
	r.store(slot, data, len(data), slot.Count)
	return nil
}

// Bool returns the first value of a Bool field
func (r *Record) Bool(name string) (bool, error) {
	slot, err := r.resolve("Bool", name, isSingleBool)
	if err != nil {
		return false, err
	}
	return DecodeBool(r.buf[slot.Offset]), nil
}

// Bools returns every boolean of a Bool or BoolPacked8 field
func (r *Record) Bools(name string) ([]bool, error) {
	slot, err := r.resolve("Bools", name, StorageType.IsBool)
	if err != nil {
		return nil, err
	}

	src := r.bytesOf(slot)
	if slot.Type == BoolPacked8 {
		return UnpackBools(src), nil
	}

	out := make([]bool, len(src))
	for i, b := range src {
		out[i] = DecodeBool(b)
	}
	return out, nil
}

// SetBool stores v as the field's only value. On a BoolPacked8 field this
// fails because packed stores need a multiple of 8 booleans.
func (r *Record) SetBool(name string, v bool) error {
	return r.setBools("SetBool", name, []bool{v})
}

// SetBools stores bools into a Bool or BoolPacked8 field
func (r *Record) SetBools(name string, bools []bool) error {
	return r.setBools("SetBools", name, bools)
}

func (r *Record) setBools(op, name string, bools []bool) error {
	slot, err := r.resolve(op, name, StorageType.IsBool)
	if err != nil {
		return err
	}

	if slot.Type == BoolPacked8 {
		packed, err := PackBools(bools)
		if err != nil {
			return &FieldError{Op: op, Field: name, Type: slot.Type, Err: err}
		}
		r.store(slot, packed, len(bools), slot.Elements())
		return nil
	}

	data := make([]byte, len(bools))
	for i, v := range bools {
		data[i] = EncodeBool(v)
	}
	r.store(slot, data, len(bools), slot.Count)
	return nil
}

// Int32 reads a signed field of at most 4 bytes
func (r *Record) Int32(name string) (int32, error) {
	slot, err := r.resolve("Int32", name, isNarrowInt)
	if err != nil {
		return 0, err
	}
	return DecodeInt32(r.buf[slot.Offset:], slot.Type.Width()), nil
}

// Int64 reads a signed field of any width
func (r *Record) Int64(name string) (int64, error) {
	slot, err := r.resolve("Int64", name, StorageType.IsSigned)
	if err != nil {
		return 0, err
	}
	return DecodeInt(r.buf[slot.Offset:], slot.Type.Width()), nil
}

// SetInt32 stores v into a signed field of at most 4 bytes.
// Bytes beyond the field width are dropped without notice.
func (r *Record) SetInt32(name string, v int32) error {
	slot, err := r.resolve("SetInt32", name, isNarrowInt)
	if err != nil {
		return err
	}
	PutInt(r.buf[slot.Offset:], int64(v), slot.Type.Width())
	return nil
}

// SetInt64 stores v into a signed field of any width.
// Bytes beyond the field width are dropped without notice.
func (r *Record) SetInt64(name string, v int64) error {
	slot, err := r.resolve("SetInt64", name, StorageType.IsSigned)
	if err != nil {
		return err
	}
	PutInt(r.buf[slot.Offset:], v, slot.Type.Width())
	return nil
}

// Uint reads an unsigned field. The result is never negative since
// unsigned fields are at most 7 bytes wide.
func (r *Record) Uint(name string) (int64, error) {
	slot, err := r.resolve("Uint", name, StorageType.IsUnsigned)
	if err != nil {
		return 0, err
	}
	return int64(DecodeUint(r.buf[slot.Offset:], slot.Type.Width())), nil
}

// SetUint stores a non-negative v into an unsigned field.
// Bytes beyond the field width are dropped without notice.
func (r *Record) SetUint(name string, v int64) error {
	slot, err := r.resolve("SetUint", name, StorageType.IsUnsigned)
	if err != nil {
		return err
	}
	if v < 0 {
		return &FieldError{
			Op:    "SetUint",
			Field: name,
			Type:  slot.Type,
			Err:   fmt.Errorf("%w: negative value %d", ErrInvalidArgument, v),
		}
	}
	PutUint(r.buf[slot.Offset:], uint64(v), slot.Type.Width())
	return nil
}

// Char reads the first character of a character field
func (r *Record) Char(name string) (rune, error) {
	slot, err := r.resolve("Char", name, StorageType.IsChar)
	if err != nil {
		return 0, err
	}
	if slot.Type == CharASCII {
		return DecodeASCII(r.buf[slot.Offset]), nil
	}
	return rune(DecodeWide(r.buf[slot.Offset:])), nil
}

// SetChar stores c as the first character of a character field and leaves
// the others untouched. ASCII fields keep the low 7 bits of c; wide fields
// reject characters outside the 16-bit range.
func (r *Record) SetChar(name string, c rune) error {
	slot, err := r.resolve("SetChar", name, StorageType.IsChar)
	if err != nil {
		return err
	}

	if slot.Type == CharASCII {
		r.buf[slot.Offset] = EncodeASCII(c)
		return nil
	}

	if c < 0 || c > 0xFFFF {
		return &FieldError{
			Op:    "SetChar",
			Field: name,
			Type:  slot.Type,
			Err:   fmt.Errorf("%w: %U does not fit one 16-bit code unit", ErrInvalidArgument, c),
		}
	}
	PutWide(r.buf[slot.Offset:], uint16(c))
	return nil
}

// String decodes a character field. ASCII fields drop every NUL; wide
// fields keep zero padding as trailing NUL characters.
func (r *Record) String(name string) (string, error) {
	slot, err := r.resolve("String", name, StorageType.IsChar)
	if err != nil {
		return "", err
	}
	if slot.Type == CharASCII {
		return ASCIIString(r.bytesOf(slot)), nil
	}
	return WideString(r.bytesOf(slot)), nil
}

// SetString stores s into a character field, zero-filling unused slots and
// truncating characters that do not fit
func (r *Record) SetString(name string, s string) error {
	slot, err := r.resolve("SetString", name, StorageType.IsChar)
	if err != nil {
		return err
	}

	if slot.Type == CharASCII {
		data := ASCIIBytes(s)
		r.store(slot, data, len(data), slot.Count)
		return nil
	}

	units := WideUnits(s)
	r.store(slot, WideBytes(units), len(units), slot.Count)
	return nil
}

// Units reads a wide character field as raw UTF-16 code units. Unlike
// String it keeps surrogates that have no partner.
func (r *Record) Units(name string) ([]uint16, error) {
	slot, err := r.resolve("Units", name, isWide)
	if err != nil {
		return nil, err
	}
	return DecodeWideUnits(r.bytesOf(slot)), nil
}

// SetUnits stores raw code units into a wide character field,
// zero-filling unused slots and truncating units that do not fit
func (r *Record) SetUnits(name string, units []uint16) error {
	slot, err := r.resolve("SetUnits", name, isWide)
	if err != nil {
		return err
	}
	r.store(slot, WideBytes(units), len(units), slot.Count)
	return nil
}
