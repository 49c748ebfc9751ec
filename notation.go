package cat

import "strconv"

const (
	numberWidth = 6
	numberSep   = "  "
)

// appendLineNumber appends n right aligned to numberWidth followed by two
// spaces.
func appendLineNumber(dst []byte, n int) []byte {
	var digits [20]byte
	d := strconv.AppendInt(digits[:0], int64(n), 10)
	for i := len(d); i < numberWidth; i++ {
		dst = append(dst, ' ')
	}
	dst = append(dst, d...)
	return append(dst, numberSep...)
}

// appendCaret appends b in caret/meta notation. Bytes with the high bit set
// get an M- prefix, control bytes become ^X and DEL becomes ^?.
func appendCaret(dst []byte, b byte) []byte {
	if b >= 0x80 {
		dst = append(dst, 'M', '-')
		b &= 0x7f
	}
	switch {
	case b < 0x20:
		return append(dst, '^', '@'+b)
	case b == 0x7f:
		return append(dst, '^', '?')
	default:
		return append(dst, b)
	}
}

// isPrintable reports whether b is printable ASCII.
func isPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7f
}
