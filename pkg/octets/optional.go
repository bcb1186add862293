package octets

// Optional is a Buffer that may be absent. Absence is distinct from an empty
// value. The zero value is absent.
type Optional struct {
	buf     Buffer
	present bool
}

// Some returns a present Optional holding a copy of b. A nil b is stored as
// a present, empty value.
func Some(b []byte) Optional {
	return Optional{buf: New(b), present: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// OptionalOf maps a nil slice to None and any other slice, including an empty
// one, to Some.
func OptionalOf(b []byte) Optional {
	if b == nil {
		return None()
	}
	return Some(b)
}

// IsPresent reports whether a value is held.
func (o Optional) IsPresent() bool {
	return o.present
}

// Get returns a fresh copy of the value and true, or nil and false when absent.
func (o Optional) Get() ([]byte, bool) {
	if !o.present {
		return nil, false
	}
	return o.buf.Bytes(), true
}

// Equal reports whether both are absent, or both are present with equal content.
func (o Optional) Equal(other Optional) bool {
	if o.present != other.present {
		return false
	}
	return !o.present || o.buf.Equal(other.buf)
}

// HashCode returns 0 when absent and the content hash otherwise.
func (o Optional) HashCode() int32 {
	if !o.present {
		return 0
	}
	return o.buf.HashCode()
}
