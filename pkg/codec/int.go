package codec

import "encoding/binary"

// PutInt stores the low width bytes of v's two's-complement form into dst,
// least significant byte first. Higher-order bytes are discarded.
// width must be in 1..8 and dst at least width bytes long.
func PutInt(dst []byte, v int64, width int) {
	PutUint(dst, uint64(v), width)
}

// PutUint stores the low width bytes of v into dst, least significant byte
// first. Higher-order bytes are discarded.
func PutUint(dst []byte, v uint64, width int) {
	_ = dst[width-1] // bounds check hint
	for k := 0; k < width; k++ {
		dst[k] = byte(v >> (8 * k))
	}
}

// DecodeInt decodes a width-byte little-endian two's-complement integer from src.
// Bytes above width are filled with 0xFF when bit 7 of src[width-1] is set,
// 0x00 otherwise.
func DecodeInt(src []byte, width int) int64 {
	var word [8]byte
	copy(word[:width], src[:width])

	var fill byte
	if src[width-1]&0x80 != 0 {
		fill = 0xFF
	}
	for k := width; k < len(word); k++ {
		word[k] = fill
	}

	return int64(binary.LittleEndian.Uint64(word[:]))
}

// DecodeInt32 decodes like DecodeInt and keeps the low 32 bits.
// For widths up to 4 this is exactly the stored value.
func DecodeInt32(src []byte, width int) int32 {
	return int32(DecodeInt(src, width))
}

// DecodeUint decodes a width-byte little-endian unsigned integer from src,
// zero-filling every byte above width.
func DecodeUint(src []byte, width int) uint64 {
	var word [8]byte
	copy(word[:width], src[:width])
	return binary.LittleEndian.Uint64(word[:])
}
