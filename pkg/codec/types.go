package codec

import (
	"fmt"
	"strings"
)

// StorageType is the on-disk representation of a field element
type StorageType uint8

const (
	Byte StorageType = iota
	Bool
	BoolPacked8
	Int8
	Int16
	Int24
	Int32
	Int40
	Int48
	Int56
	Int64
	Uint8
	Uint16
	Uint24
	Uint32
	Uint40
	Uint48
	Uint56
	CharASCII
	CharWide

	numStorageTypes
)

type typeInfo struct {
	name  string
	width int
}

// typeTable maps each storage type to its name and element width in bytes.
var typeTable = [numStorageTypes]typeInfo{
	Byte:        {"byte", 1},
	Bool:        {"bool", 1},
	BoolPacked8: {"bools8", 1},
	Int8:        {"int8", 1},
	Int16:       {"int16", 2},
	Int24:       {"int24", 3},
	Int32:       {"int32", 4},
	Int40:       {"int40", 5},
	Int48:       {"int48", 6},
	Int56:       {"int56", 7},
	Int64:       {"int64", 8},
	Uint8:       {"uint8", 1},
	Uint16:      {"uint16", 2},
	Uint24:      {"uint24", 3},
	Uint32:      {"uint32", 4},
	Uint40:      {"uint40", 5},
	Uint48:      {"uint48", 6},
	Uint56:      {"uint56", 7},
	CharASCII:   {"char_ascii", 1},
	CharWide:    {"char_wide", 2},
}

// Valid reports whether t is one of the declared storage types
func (t StorageType) Valid() bool {
	return t < numStorageTypes
}

// Width returns the number of bytes one element of t occupies.
// BoolPacked8 reports 1: a single byte carries eight booleans.
func (t StorageType) Width() int {
	if !t.Valid() {
		return 0
	}
	return typeTable[t].width
}

func (t StorageType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("StorageType(%d)", uint8(t))
	}
	return typeTable[t].name
}

// IsSigned reports whether t is a signed integer type
func (t StorageType) IsSigned() bool {
	return t >= Int8 && t <= Int64
}

// IsUnsigned reports whether t is an unsigned integer type
func (t StorageType) IsUnsigned() bool {
	return t >= Uint8 && t <= Uint56
}

// IsBool reports whether t stores booleans, packed or not
func (t StorageType) IsBool() bool {
	return t == Bool || t == BoolPacked8
}

// IsChar reports whether t stores characters
func (t StorageType) IsChar() bool {
	return t == CharASCII || t == CharWide
}

// ParseStorageType resolves a type name as written in schema files.
// Matching is case-insensitive.
func ParseStorageType(name string) (StorageType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i := range typeTable {
		if typeTable[i].name == n {
			return StorageType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown storage type %q", ErrInvalidArgument, name)
}

// MarshalText implements encoding.TextMarshaler
func (t StorageType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: invalid storage type %d", ErrInvalidArgument, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *StorageType) UnmarshalText(text []byte) error {
	parsed, err := ParseStorageType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
