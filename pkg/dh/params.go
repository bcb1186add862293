// Package dh implements finite-field Diffie-Hellman over a prime modulus, as
// used by the DH flavour of the PACE Generic Mapping.
//
// Keys and parameters are immutable values. Their Bytes and Equal methods
// follow the conventions of crypto/ecdh so that both kinds of key can travel
// through the same opaque interfaces.
package dh

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/gregLibert/emrtd/pkg/octets"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	// ErrInvalidParameters is returned for domain parameters that cannot
	// describe a usable group.
	ErrInvalidParameters = errors.New("invalid DH parameters")

	// ErrInvalidPublicKey is returned for a peer value outside the group or
	// bound to other parameters.
	ErrInvalidPublicKey = errors.New("invalid DH public key")

	// ErrInvalidPrivateKey is returned for an exponent outside [2, order-1].
	ErrInvalidPrivateKey = errors.New("invalid DH private key")
)

var one = big.NewInt(1)

// Parameters are the domain parameters of a DH group: the prime modulus p,
// the generator g and, when known, the prime order q of the subgroup g
// generates. Build them with NewParameters or ParseParameters.
type Parameters struct {
	p, g, q *big.Int
}

// NewParameters validates and copies p, g and the optional q.
func NewParameters(p, g, q *big.Int) (*Parameters, error) {
	if p == nil || g == nil {
		return nil, fmt.Errorf("%w: modulus and generator are required", ErrInvalidParameters)
	}
	if p.Cmp(big.NewInt(3)) <= 0 {
		return nil, fmt.Errorf("%w: modulus too small", ErrInvalidParameters)
	}
	pMinusOne := new(big.Int).Sub(p, one)
	if g.Cmp(one) <= 0 || g.Cmp(pMinusOne) >= 0 {
		return nil, fmt.Errorf("%w: generator must be in [2, p-2]", ErrInvalidParameters)
	}
	params := &Parameters{
		p: new(big.Int).Set(p),
		g: new(big.Int).Set(g),
	}
	if q != nil {
		if q.Cmp(big.NewInt(2)) <= 0 || q.Cmp(p) >= 0 {
			return nil, fmt.Errorf("%w: subgroup order must be in [3, p-1]", ErrInvalidParameters)
		}
		params.q = new(big.Int).Set(q)
	}
	return params, nil
}

// ParseParameters decodes DER DHParameters:
//
//	DHParameters ::= SEQUENCE {
//	  p INTEGER,
//	  g INTEGER,
//	  q INTEGER OPTIONAL
//	}
func ParseParameters(der []byte) (*Parameters, error) {
	input := cryptobyte.String(der)

	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("%w: expected a single SEQUENCE", ErrInvalidParameters)
	}

	p, g := new(big.Int), new(big.Int)
	if !seq.ReadASN1Integer(p) || !seq.ReadASN1Integer(g) {
		return nil, fmt.Errorf("%w: expected INTEGER p and g", ErrInvalidParameters)
	}

	var q *big.Int
	if !seq.Empty() {
		q = new(big.Int)
		if !seq.ReadASN1Integer(q) || !seq.Empty() {
			return nil, fmt.Errorf("%w: unexpected data after g", ErrInvalidParameters)
		}
	}
	return NewParameters(p, g, q)
}

// P returns a copy of the prime modulus.
func (dp *Parameters) P() *big.Int {
	return new(big.Int).Set(dp.p)
}

// G returns a copy of the generator.
func (dp *Parameters) G() *big.Int {
	return new(big.Int).Set(dp.g)
}

// Q returns a copy of the subgroup order, or nil when it is unknown.
func (dp *Parameters) Q() *big.Int {
	if dp.q == nil {
		return nil
	}
	return new(big.Int).Set(dp.q)
}

// MarshalDER encodes the parameters as DHParameters. q is omitted when unknown.
func (dp *Parameters) MarshalDER() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(dp.p)
		b.AddASN1BigInt(dp.g)
		if dp.q != nil {
			b.AddASN1BigInt(dp.q)
		}
	})

	der, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode DHParameters: %w", err)
	}
	return der, nil
}

// Equal reports whether x is a *Parameters describing the same group.
func (dp *Parameters) Equal(x any) bool {
	other, ok := x.(*Parameters)
	if !ok || dp == nil || other == nil {
		return ok && dp == other
	}
	return dp.p.Cmp(other.p) == 0 &&
		dp.g.Cmp(other.g) == 0 &&
		equalOptional(dp.q, other.q)
}

// HashCode is consistent with Equal.
func (dp *Parameters) HashCode() int32 {
	if dp == nil {
		return 0
	}
	h := int32(1)
	for _, n := range []*big.Int{dp.p, dp.g, dp.q} {
		h = 31 * h
		if n != nil {
			h += octets.Hash(n.Bytes())
		}
	}
	return h
}

// ByteLen is the length of an encoded group element.
func (dp *Parameters) ByteLen() int {
	return (dp.p.BitLen() + 7) / 8
}

// order returns the bound private exponents stay below: q when known,
// p-1 otherwise.
func (dp *Parameters) order() *big.Int {
	if dp.q != nil {
		return dp.q
	}
	return new(big.Int).Sub(dp.p, one)
}

func (dp *Parameters) String() string {
	if dp.q == nil {
		return fmt.Sprintf("DH(%d-bit)", dp.p.BitLen())
	}
	return fmt.Sprintf("DH(%d-bit, %d-bit subgroup)", dp.p.BitLen(), dp.q.BitLen())
}

func equalOptional(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
