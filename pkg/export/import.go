package export

import (
	"strconv"
	"strings"

	"github.com/ssargent/binsave/pkg/codec"
)

// Import stores values into r. A field without a key is reset to zero.
// Parsing stops at the first bad value.
func Import(r *codec.Record, values map[string]string) error {
	for _, name := range Names(r.Schema()) {
		text, ok := values[name]
		if !ok {
			if err := r.Clear(name); err != nil {
				return err
			}
			continue
		}
		if err := SetField(r, name, text); err != nil {
			return err
		}
	}
	return nil
}

// SetField parses text the way Field renders it and stores the result
func SetField(r *codec.Record, name, text string) error {
	slot, ok := r.Schema().Lookup(name)
	if !ok {
		return &codec.FieldError{Op: "Import", Field: name, Err: codec.ErrUnknownField}
	}

	switch typ := slot.Type; {
	case typ == codec.Byte:
		data, err := parseBytes(name, text)
		if err != nil {
			return err
		}
		return r.SetBytes(name, data)

	case typ.IsBool():
		bools, err := parseBools(name, text)
		if err != nil {
			return err
		}
		return r.SetBools(name, bools)

	case typ.IsSigned():
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return &FormatError{Field: name, Index: -1, Value: text, Err: err}
		}
		return r.SetInt64(name, v)

	case typ.IsUnsigned():
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return &FormatError{Field: name, Index: -1, Value: text, Err: err}
		}
		return r.SetUint(name, v)

	default:
		return r.SetString(name, text)
	}
}

func split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, separator)
}

func parseBytes(name, text string) ([]byte, error) {
	parts := split(text)
	data := make([]byte, len(parts))
	for i, part := range parts {
		s := strings.TrimSpace(part)
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if s == "" {
			return nil, &FormatError{Field: name, Index: i, Value: part, Err: ErrNotHex}
		}
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return nil, &FormatError{Field: name, Index: i, Value: part, Err: err}
		}
		data[i] = byte(v)
	}
	return data, nil
}

func parseBools(name, text string) ([]bool, error) {
	parts := split(text)
	bools := make([]bool, len(parts))
	for i, part := range parts {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "true":
			bools[i] = true
		case "false":
			bools[i] = false
		default:
			return nil, &FormatError{Field: name, Index: i, Value: part, Err: strconv.ErrSyntax}
		}
	}
	return bools, nil
}
