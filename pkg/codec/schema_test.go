package codec

import (
	"errors"
	"testing"
)

func TestStorageType_Width(t *testing.T) {
	testCases := []struct {
		typ   StorageType
		width int
	}{
		{Byte, 1}, {Bool, 1}, {BoolPacked8, 1},
		{Int8, 1}, {Int16, 2}, {Int24, 3}, {Int32, 4},
		{Int40, 5}, {Int48, 6}, {Int56, 7}, {Int64, 8},
		{Uint8, 1}, {Uint16, 2}, {Uint24, 3}, {Uint32, 4},
		{Uint40, 5}, {Uint48, 6}, {Uint56, 7},
		{CharASCII, 1}, {CharWide, 2},
	}

	if len(testCases) != int(numStorageTypes) {
		t.Fatalf("table covers %d types, want %d", len(testCases), numStorageTypes)
	}

	for _, tc := range testCases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := tc.typ.Width(); got != tc.width {
				t.Errorf("Width() = %d, want %d", got, tc.width)
			}
		})
	}

	if got := StorageType(200).Width(); got != 0 {
		t.Errorf("invalid type width = %d, want 0", got)
	}
}

func TestParseStorageType(t *testing.T) {
	for i := StorageType(0); i < numStorageTypes; i++ {
		parsed, err := ParseStorageType(i.String())
		if err != nil {
			t.Fatalf("ParseStorageType(%q) failed: %v", i.String(), err)
		}
		if parsed != i {
			t.Errorf("ParseStorageType(%q) = %v, want %v", i.String(), parsed, i)
		}
	}

	if typ, err := ParseStorageType(" Char_ASCII "); err != nil || typ != CharASCII {
		t.Errorf("case-insensitive parse = %v, %v", typ, err)
	}

	if _, err := ParseStorageType("int128"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestStorageType_Families(t *testing.T) {
	for i := StorageType(0); i < numStorageTypes; i++ {
		families := 0
		for _, in := range []bool{i == Byte, i.IsBool(), i.IsSigned(), i.IsUnsigned(), i.IsChar()} {
			if in {
				families++
			}
		}
		if families != 1 {
			t.Errorf("%v belongs to %d families, want exactly 1", i, families)
		}
	}
}

func TestCompile_Offsets(t *testing.T) {
	schema, err := Compile([]Field{
		F("a", Byte, 1),
		F("b", Int24, 1),
		F("c", CharWide, 1),
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	wantOffsets := []int{0, 1, 4}
	wantLengths := []int{1, 3, 2}
	for i, slot := range schema.Slots() {
		if slot.Offset != wantOffsets[i] {
			t.Errorf("slot %d offset = %d, want %d", i, slot.Offset, wantOffsets[i])
		}
		if slot.Length != wantLengths[i] {
			t.Errorf("slot %d length = %d, want %d", i, slot.Length, wantLengths[i])
		}
	}

	if schema.Size() != 6 {
		t.Errorf("Size() = %d, want 6", schema.Size())
	}
	if schema.Len() != 3 {
		t.Errorf("Len() = %d, want 3", schema.Len())
	}
}

func TestCompile_ByteLengths(t *testing.T) {
	schema := MustCompile(
		F("bytes", Byte, 4),
		F("flags", BoolPacked8, 2),
		F("wide", CharWide, 3),
		F("ints", Int40, 2),
	)

	want := []struct {
		offset, length, elements int
	}{
		{0, 4, 4},
		{4, 2, 16},
		{6, 6, 3},
		{12, 10, 2},
	}

	for i, slot := range schema.Slots() {
		if slot.Offset != want[i].offset || slot.Length != want[i].length {
			t.Errorf("slot %q = (%d, %d), want (%d, %d)", slot.Name, slot.Offset, slot.Length, want[i].offset, want[i].length)
		}
		if slot.Elements() != want[i].elements {
			t.Errorf("slot %q elements = %d, want %d", slot.Name, slot.Elements(), want[i].elements)
		}
	}

	if schema.Size() != 22 {
		t.Errorf("Size() = %d, want 22", schema.Size())
	}
}

func TestCompile_Empty(t *testing.T) {
	schema, err := Compile(nil)
	if err != nil {
		t.Fatalf("Compile(nil) failed: %v", err)
	}
	if schema.Size() != 0 || schema.Len() != 0 {
		t.Errorf("empty schema has size %d and %d fields", schema.Size(), schema.Len())
	}
	if _, ok := schema.Lookup("anything"); ok {
		t.Error("lookup on empty schema should fail")
	}
}

func TestCompile_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		fields []Field
	}{
		{"zero count", []Field{F("a", Byte, 0)}},
		{"negative count", []Field{F("a", Int16, -2)}},
		{"unknown type", []Field{F("a", StorageType(99), 1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.fields)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestSchema_LookupFirstMatch(t *testing.T) {
	schema := MustCompile(
		F("dup", Int8, 1),
		F("other", Byte, 2),
		F("dup", CharWide, 4),
	)

	slot, ok := schema.Lookup("dup")
	if !ok {
		t.Fatal("expected dup to resolve")
	}
	if slot.Type != Int8 || slot.Offset != 0 {
		t.Errorf("Lookup(dup) = %v at %d, want int8 at 0", slot.Type, slot.Offset)
	}

	if schema.Size() != 1+2+8 {
		t.Errorf("duplicate still occupies space: Size() = %d, want 11", schema.Size())
	}

	if _, ok := schema.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestSchema_FieldsPreserveOrder(t *testing.T) {
	fields := []Field{F("z", Byte, 1), F("a", Bool, 2), F("m", Uint16, 1)}
	schema := MustCompile(fields...)

	got := schema.Fields()
	for i := range fields {
		if got[i] != fields[i] {
			t.Errorf("field %d = %+v, want %+v", i, got[i], fields[i])
		}
	}

	// mutating the returned slice must not touch the schema
	got[0].Name = "changed"
	if _, ok := schema.Lookup("z"); !ok {
		t.Error("Fields() leaked internal state")
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustCompile to panic")
		}
	}()
	MustCompile(F("bad", Byte, 0))
}
