package pace

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/gregLibert/emrtd/pkg/dh"
)

// ErrMapping is returned when the Generic Mapping cannot produce usable
// ephemeral parameters.
var ErrMapping = errors.New("generic mapping failed")

// MapDH performs the Generic Mapping over a DH group on the reader side.
// It agrees h with the chip's mapping key and derives the ephemeral
// generator g~ = g^s * h mod p, where s is the decrypted nonce. The chip
// computes the same parameters from its own key and the reader's public key.
func MapDH(static *dh.Parameters, piccNonce []byte, piccMappingKey *dh.PublicKey, pcdMappingKey *dh.PrivateKey) (*GMWithDHMappingResult, error) {
	if static == nil || pcdMappingKey == nil {
		return nil, fmt.Errorf("%w: parameters and reader key are required", ErrMapping)
	}
	if len(piccNonce) == 0 {
		return nil, fmt.Errorf("%w: empty nonce", ErrMapping)
	}
	if !pcdMappingKey.Params().Equal(static) {
		return nil, fmt.Errorf("%w: reader key is not on the static parameters", ErrMapping)
	}

	secret, err := pcdMappingKey.SharedSecret(piccMappingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapping, err)
	}

	s := new(big.Int).SetBytes(piccNonce)
	h := new(big.Int).SetBytes(secret)
	p := static.P()
	g := new(big.Int).Exp(static.G(), s, p)
	g.Mul(g, h).Mod(g, p)

	ephemeral, err := dh.NewParameters(p, g, static.Q())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapping, err)
	}

	return NewGMWithDHMappingResult(
		static,
		piccNonce,
		piccMappingKey,
		KeyPair{Private: pcdMappingKey, Public: pcdMappingKey.PublicKey()},
		secret,
		ephemeral,
	), nil
}
