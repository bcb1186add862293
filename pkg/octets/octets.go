// Package octets provides owned byte strings for security-sensitive values.
//
// A Buffer copies its input when it is built and copies again every time its
// content is read, so no caller can ever hold a slice aliasing the stored bytes.
// Optional adds an explicit absent state on top of a Buffer.
package octets

import "bytes"

// Buffer is an immutable byte string. The zero value is empty.
type Buffer struct {
	b []byte
}

// New returns a Buffer holding a copy of b. A nil b yields an empty Buffer.
func New(b []byte) Buffer {
	return Buffer{b: clone(b)}
}

// Bytes returns a fresh copy of the content. The result is never nil.
func (o Buffer) Bytes() []byte {
	if o.b == nil {
		return []byte{}
	}
	return clone(o.b)
}

// Len returns the number of bytes held.
func (o Buffer) Len() int {
	return len(o.b)
}

// Equal reports whether both buffers hold the same bytes.
func (o Buffer) Equal(other Buffer) bool {
	return bytes.Equal(o.b, other.b)
}

// HashCode returns the content hash of the buffer. It follows the classic
// 31-based polynomial over signed bytes, starting at 1, so values stay stable
// across implementations that hash byte arrays the same way. An empty buffer
// hashes to 1 however it was built.
func (o Buffer) HashCode() int32 {
	if o.b == nil {
		return 1
	}
	return Hash(o.b)
}

// Hash computes the content hash used by Buffer.HashCode on a raw slice.
// A nil slice hashes to 0.
func Hash(b []byte) int32 {
	if b == nil {
		return 0
	}
	h := int32(1)
	for _, c := range b {
		h = 31*h + int32(int8(c))
	}
	return h
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
