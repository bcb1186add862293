// Package pace holds the records produced by the mapping step of PACE
// (Password Authenticated Connection Establishment) with Generic Mapping.
//
// A mapping result captures the static domain parameters, the nonce sent by
// the chip (PICC), both mapping keys and the ephemeral parameters derived from
// them. Results are immutable: byte fields are copied on the way in and on the
// way out, keys and parameters are held as opaque values and never modified.
//
// Two results are equal only when they are the same variant and every field
// matches. A DH result never equals a plain one, even if all shared fields do.
package pace

import (
	"crypto"
	"fmt"

	"github.com/gregLibert/emrtd/pkg/octets"
)

// Variant tags the concrete kind of a MappingResult.
type Variant int

const (
	// GenericMapping is the base mapping result, GMMappingResult.
	GenericMapping Variant = iota + 1
	// GenericMappingDH is a mapping result carrying the DH shared secret.
	GenericMappingDH
)

func (v Variant) String() string {
	switch v {
	case GenericMapping:
		return "GM"
	case GenericMappingDH:
		return "GM-DH"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// DomainParameters are the group parameters a mapping step works in.
// *dh.Parameters and *CurveParameters implement it.
type DomainParameters interface {
	Equal(x any) bool
	HashCode() int32
}

// PublicKey is a mapping public key. *ecdh.PublicKey and *dh.PublicKey
// implement it.
type PublicKey interface {
	Equal(x crypto.PublicKey) bool
	Bytes() []byte
}

// PrivateKey is a mapping private key. *ecdh.PrivateKey and *dh.PrivateKey
// implement it.
type PrivateKey interface {
	Equal(x crypto.PrivateKey) bool
	Bytes() []byte
}

// KeyPair is the ephemeral mapping key pair generated by the reader (PCD).
type KeyPair struct {
	Private PrivateKey
	Public  PublicKey
}

// Equal reports whether both halves match.
func (kp KeyPair) Equal(other KeyPair) bool {
	return equalPrivate(kp.Private, other.Private) && equalPublic(kp.Public, other.Public)
}

// HashCode is consistent with Equal.
func (kp KeyPair) HashCode() int32 {
	h := int32(1)
	h = 31*h + hashPrivate(kp.Private)
	h = 31*h + hashPublic(kp.Public)
	return h
}

// Nil interface values compare equal only to nil and hash to 0.

func equalParams(a, b DomainParameters) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func hashParams(p DomainParameters) int32 {
	if p == nil {
		return 0
	}
	return p.HashCode()
}

func equalPublic(a, b PublicKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func hashPublic(k PublicKey) int32 {
	if k == nil {
		return 0
	}
	return octets.Hash(k.Bytes())
}

func equalPrivate(a, b PrivateKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func hashPrivate(k PrivateKey) int32 {
	if k == nil {
		return 0
	}
	return octets.Hash(k.Bytes())
}
