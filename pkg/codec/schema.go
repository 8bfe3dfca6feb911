package codec

import "fmt"

// Field declares one named, typed, fixed-length slot of a record
type Field struct {
	Name  string      `yaml:"name" json:"name"`
	Type  StorageType `yaml:"type" json:"type"`
	Count int         `yaml:"count" json:"count"` // number of elements, not bytes
}

// F is shorthand for a Field literal
func F(name string, typ StorageType, count int) Field {
	return Field{Name: name, Type: typ, Count: count}
}

// ByteLength returns the number of bytes the field occupies
func (f Field) ByteLength() int {
	return f.Count * f.Type.Width()
}

// Elements returns how many values the field holds.
// A BoolPacked8 field of Count n holds 8n booleans.
func (f Field) Elements() int {
	if f.Type == BoolPacked8 {
		return f.Count * 8
	}
	return f.Count
}

// Slot is a field resolved to its position in the record buffer
type Slot struct {
	Field
	Offset int // byte offset of the first element
	Length int // byte length
}

// End returns the offset one past the last byte of the slot
func (s Slot) End() int {
	return s.Offset + s.Length
}

// Schema is a compiled, immutable record layout
type Schema struct {
	slots []Slot
	size  int
}

// Compile computes the byte layout for fields in declaration order.
// Fields are packed contiguously with no padding. Duplicate names are
// accepted; Lookup resolves to the first declaration.
func Compile(fields []Field) (*Schema, error) {
	s := &Schema{slots: make([]Slot, 0, len(fields))}

	offset := 0
	for i, f := range fields {
		if !f.Type.Valid() {
			return nil, fmt.Errorf("field %d (%q): %w: invalid storage type %d", i, f.Name, ErrInvalidArgument, uint8(f.Type))
		}
		if f.Count < 1 {
			return nil, fmt.Errorf("field %d (%q): %w: count must be at least 1, got %d", i, f.Name, ErrInvalidArgument, f.Count)
		}

		length := f.ByteLength()
		s.slots = append(s.slots, Slot{Field: f, Offset: offset, Length: length})
		offset += length
	}
	s.size = offset

	return s, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(fields ...Field) *Schema {
	s, err := Compile(fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the first slot declared with name
func (s *Schema) Lookup(name string) (Slot, bool) {
	for _, slot := range s.slots {
		if slot.Name == name {
			return slot, true
		}
	}
	return Slot{}, false
}

// Size returns the total record size in bytes
func (s *Schema) Size() int {
	return s.size
}

// Len returns the number of declared fields
func (s *Schema) Len() int {
	return len(s.slots)
}

// Slots returns a copy of the compiled slots in declaration order
func (s *Schema) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Fields returns the declared fields in order
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.slots))
	for i, slot := range s.slots {
		out[i] = slot.Field
	}
	return out
}
