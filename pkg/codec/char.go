package codec

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

const asciiMask = 0x7F

// EncodeASCII keeps the low 7 bits of r
func EncodeASCII(r rune) byte {
	return byte(r) & asciiMask
}

// DecodeASCII masks b to 7 bits
func DecodeASCII(b byte) rune {
	return rune(b & asciiMask)
}

// PutWide stores a 16-bit code unit little-endian into dst[0:2]
func PutWide(dst []byte, unit uint16) {
	binary.LittleEndian.PutUint16(dst, unit)
}

// DecodeWide reads a 16-bit little-endian code unit from src[0:2]
func DecodeWide(src []byte) uint16 {
	return binary.LittleEndian.Uint16(src)
}

// ASCIIBytes encodes s one byte per rune, each masked to 7 bits
func ASCIIBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, EncodeASCII(r))
	}
	return out
}

// ASCIIString decodes src as 7-bit characters and drops every NUL,
// wherever it occurs.
func ASCIIString(src []byte) string {
	var sb strings.Builder
	sb.Grow(len(src))
	for _, b := range src {
		if c := DecodeASCII(b); c != 0 {
			sb.WriteByte(byte(c))
		}
	}
	return sb.String()
}

// WideUnits converts s to UTF-16 code units
func WideUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// WideBytes encodes units little-endian, two bytes each
func WideBytes(units []uint16) []byte {
	out := make([]byte, len(units)*2)
	for i, u := range units {
		PutWide(out[i*2:], u)
	}
	return out
}

// DecodeWideUnits reads every 2-byte slot of src as a code unit, unchanged
func DecodeWideUnits(src []byte) []uint16 {
	units := make([]uint16, len(src)/2)
	for i := range units {
		units[i] = DecodeWide(src[i*2:])
	}
	return units
}

// WideString decodes every 2-byte slot of src as a UTF-16 code unit.
// Zero padding is kept and shows up as trailing NUL characters. A surrogate
// without its partner decodes as U+FFFD; DecodeWideUnits keeps it.
func WideString(src []byte) string {
	return string(utf16.Decode(DecodeWideUnits(src)))
}
