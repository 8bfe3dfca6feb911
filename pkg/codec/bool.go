package codec

import "fmt"

const (
	boolTrue  byte = 0xFF
	boolFalse byte = 0x00
)

// EncodeBool returns the one-byte form of v
func EncodeBool(v bool) byte {
	if v {
		return boolTrue
	}
	return boolFalse
}

// DecodeBool reports whether b is the encoded true value.
// Only 0xFF is true; every other byte reads as false.
func DecodeBool(b byte) bool {
	return b == boolTrue
}

// PackBools packs bools eight per byte, first boolean in the most
// significant bit. len(bools) must be a multiple of 8.
func PackBools(bools []bool) ([]byte, error) {
	if len(bools)%8 != 0 {
		return nil, fmt.Errorf("%w: packed booleans must come in multiples of 8, got %d", ErrInvalidArgument, len(bools))
	}

	out := make([]byte, len(bools)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			if bools[i*8+j] {
				b |= 0x80 >> j
			}
		}
		out[i] = b
	}
	return out, nil
}

// UnpackBools expands each byte of src into eight booleans, most
// significant bit first
func UnpackBools(src []byte) []bool {
	out := make([]bool, len(src)*8)
	for i, b := range src {
		for j := 0; j < 8; j++ {
			out[i*8+j] = b&(0x80>>j) != 0
		}
	}
	return out
}
