package dh

import (
	"crypto"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// PublicKey is a group element y = g^x mod p.
type PublicKey struct {
	params *Parameters
	y      *big.Int
}

// PrivateKey is a secret exponent x together with its public value.
type PrivateKey struct {
	params *Parameters
	x      *big.Int
	pub    *PublicKey
}

// GenerateKey draws a private exponent in [2, q-1], or [2, p-2] when the
// subgroup order is unknown.
func GenerateKey(random io.Reader, params *Parameters) (*PrivateKey, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidParameters)
	}
	if random == nil {
		random = rand.Reader
	}

	// x = 2 + rand[0, order-2)
	span := new(big.Int).Sub(params.order(), big.NewInt(2))
	x, err := rand.Int(random, span)
	if err != nil {
		return nil, fmt.Errorf("generate DH exponent: %w", err)
	}
	x.Add(x, big.NewInt(2))

	return newPrivateKey(params, x), nil
}

// NewPrivateKey builds a key from a big-endian exponent.
func NewPrivateKey(params *Parameters, x []byte) (*PrivateKey, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidParameters)
	}
	n := new(big.Int).SetBytes(x)
	if n.Cmp(one) <= 0 || n.Cmp(params.order()) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	return newPrivateKey(params, n), nil
}

func newPrivateKey(params *Parameters, x *big.Int) *PrivateKey {
	y := new(big.Int).Exp(params.g, x, params.p)
	return &PrivateKey{
		params: params,
		x:      x,
		pub:    &PublicKey{params: params, y: y},
	}
}

// NewPublicKey decodes a big-endian group element received from a peer and
// checks that it belongs to the group.
func NewPublicKey(params *Parameters, y []byte) (*PublicKey, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidParameters)
	}
	pub := &PublicKey{params: params, y: new(big.Int).SetBytes(y)}
	if err := pub.check(); err != nil {
		return nil, err
	}
	return pub, nil
}

// check rejects the trivial elements 0, 1 and p-1 and, when q is known,
// any element outside the order-q subgroup.
func (k *PublicKey) check() error {
	p := k.params.p
	if k.y.Cmp(one) <= 0 || k.y.Cmp(new(big.Int).Sub(p, one)) >= 0 {
		return fmt.Errorf("%w: value out of range", ErrInvalidPublicKey)
	}
	if q := k.params.q; q != nil {
		if new(big.Int).Exp(k.y, q, p).Cmp(one) != 0 {
			return fmt.Errorf("%w: value outside the prime order subgroup", ErrInvalidPublicKey)
		}
	}
	return nil
}

// Params returns the domain parameters the key belongs to.
func (k *PublicKey) Params() *Parameters {
	return k.params
}

// Bytes returns y big-endian, left-padded to the byte length of p.
func (k *PublicKey) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.y.FillBytes(make([]byte, k.params.ByteLen()))
}

// Equal reports whether x is a *PublicKey with the same value and parameters.
func (k *PublicKey) Equal(x crypto.PublicKey) bool {
	other, ok := x.(*PublicKey)
	if !ok || k == nil || other == nil {
		return ok && k == other
	}
	return k.y.Cmp(other.y) == 0 && k.params.Equal(other.params)
}

// Params returns the domain parameters the key belongs to.
func (k *PrivateKey) Params() *Parameters {
	return k.params
}

// PublicKey returns the public value matching k.
func (k *PrivateKey) PublicKey() *PublicKey {
	return k.pub
}

// Public returns the public half as a crypto.PublicKey.
func (k *PrivateKey) Public() crypto.PublicKey {
	return k.pub
}

// Bytes returns x big-endian, left-padded to the byte length of the order.
func (k *PrivateKey) Bytes() []byte {
	if k == nil {
		return nil
	}
	n := (k.params.order().BitLen() + 7) / 8
	return k.x.FillBytes(make([]byte, n))
}

// Equal reports whether x is a *PrivateKey with the same exponent and
// parameters.
func (k *PrivateKey) Equal(x crypto.PrivateKey) bool {
	other, ok := x.(*PrivateKey)
	if !ok || k == nil || other == nil {
		return ok && k == other
	}
	return k.x.Cmp(other.x) == 0 && k.params.Equal(other.params)
}

// SharedSecret computes peer^x mod p, left-padded to the byte length of p.
func (k *PrivateKey) SharedSecret(peer *PublicKey) ([]byte, error) {
	if peer == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidPublicKey)
	}
	if !k.params.Equal(peer.params) {
		return nil, fmt.Errorf("%w: parameters mismatch", ErrInvalidPublicKey)
	}
	if err := peer.check(); err != nil {
		return nil, err
	}

	z := new(big.Int).Exp(peer.y, k.x, k.params.p)
	return z.FillBytes(make([]byte, k.params.ByteLen())), nil
}
