package encoder

import (
	"fmt"
)

// FormatBinary renders v as a width-bit two's-complement string, most
// significant bit first.
//
// Values that don't fit in width bits are truncated from the left, keeping
// only the low-order bits. Callers that care about range must check it
// themselves, e.g. with fitsSigned.
func FormatBinary(v int64, width int) string {
	if width <= 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", width, uint64(v)&widthMask(width))
}

func widthMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (1 << uint(width)) - 1
}

// fitsSigned reports whether v can be represented as a width-bit
// two's-complement value.
func fitsSigned(v int64, width int) bool {
	lo, hi := signedRange(width)
	return v >= lo && v <= hi
}

func signedRange(width int) (lo, hi int64) {
	return -(int64(1) << uint(width-1)), (int64(1) << uint(width-1)) - 1
}

// bitRange extracts bits top..bottom (inclusive) of v, shifted down so
// that bit "bottom" lands in bit zero.
func bitRange(v int64, top, bottom uint) uint64 {
	return (uint64(v) >> bottom) & widthMask(int(top-bottom+1))
}
