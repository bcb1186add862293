// Package bits reads and sets bits of a byte using the 1-based numbering of
// ISO/IEC 7816 tables, where bit 1 is the least significant and bit 8 the most.
package bits

// Bit returns a byte with only bit n set. Out of range positions yield 0.
func Bit(n uint) byte {
	if n < 1 || n > 8 {
		return 0
	}
	return 1 << (n - 1)
}

// IsSet reports whether bit n of b is set.
func IsSet(b byte, n uint) bool {
	return b&Bit(n) != 0
}

// GetRange extracts bits high..low of b, shifted down to bit 1.
// GetRange(0b00001100, 4, 3) returns 3.
func GetRange(b byte, high, low uint) byte {
	if high < low || high > 8 || low < 1 {
		return 0
	}
	mask := byte(1<<(high-low+1) - 1)
	return (b >> (low - 1)) & mask
}

// Set returns b with bit n set.
func Set(b byte, n uint) byte {
	return b | Bit(n)
}

// Clear returns b with bit n cleared.
func Clear(b byte, n uint) byte {
	return b &^ Bit(n)
}
