// Package export renders a record as a flat set of text properties and
// parses them back.
//
// Every field becomes one key named after the field:
//
//	byte      0x55;0x1;0x0     lowercase hex, ";" separated
//	bool      true;false       one entry per boolean, packed fields unpacked
//	intN      -12              decimal, first element only
//	uintN     255              decimal, first element only
//	char_*    text             the decoded string
//
// When a schema repeats a name only the first declaration is exported.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ssargent/binsave/pkg/codec"
)

const separator = ";"

// ErrNotHex marks a byte element without a hexadecimal value
var ErrNotHex = errors.New("not a hexadecimal byte")

// Export renders every field of r in declaration order
func Export(r *codec.Record) (map[string]string, error) {
	out := make(map[string]string, r.Schema().Len())
	for _, name := range Names(r.Schema()) {
		text, err := Field(r, name)
		if err != nil {
			return nil, err
		}
		out[name] = text
	}
	return out, nil
}

// Names lists the exported keys of schema in declaration order, skipping
// repeated names
func Names(schema *codec.Schema) []string {
	seen := make(map[string]struct{}, schema.Len())
	names := make([]string, 0, schema.Len())
	for _, f := range schema.Fields() {
		if _, ok := seen[f.Name]; ok {
			continue
		}
		seen[f.Name] = struct{}{}
		names = append(names, f.Name)
	}
	return names
}

// Field renders one field as text
func Field(r *codec.Record, name string) (string, error) {
	slot, ok := r.Schema().Lookup(name)
	if !ok {
		return "", &codec.FieldError{Op: "Export", Field: name, Err: codec.ErrUnknownField}
	}

	switch typ := slot.Type; {
	case typ == codec.Byte:
		data, err := r.Bytes(name)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(data))
		for i, b := range data {
			parts[i] = fmt.Sprintf("0x%x", b)
		}
		return strings.Join(parts, separator), nil

	case typ.IsBool():
		bools, err := r.Bools(name)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(bools))
		for i, b := range bools {
			parts[i] = strconv.FormatBool(b)
		}
		return strings.Join(parts, separator), nil

	case typ.IsSigned():
		v, err := r.Int64(name)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil

	case typ.IsUnsigned():
		v, err := r.Uint(name)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil

	default:
		return r.String(name)
	}
}
