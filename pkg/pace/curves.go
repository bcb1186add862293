package pace

import (
	"crypto/ecdh"
	"fmt"
)

// Standardized domain parameter identifiers (ICAO Doc 9303 Part 11) that name
// an elliptic curve available in crypto/ecdh. The Brainpool and P-192/P-224
// identifiers are not listed.
const (
	StandardizedP256 = 12
	StandardizedP384 = 15
	StandardizedP521 = 18
)

// CurveParameters are elliptic-curve domain parameters chosen by their
// standardized identifier.
type CurveParameters struct {
	id    int
	name  string
	curve ecdh.Curve
}

var standardizedCurves = map[int]func() *CurveParameters{
	StandardizedP256: func() *CurveParameters { return &CurveParameters{StandardizedP256, "NIST P-256", ecdh.P256()} },
	StandardizedP384: func() *CurveParameters { return &CurveParameters{StandardizedP384, "NIST P-384", ecdh.P384()} },
	StandardizedP521: func() *CurveParameters { return &CurveParameters{StandardizedP521, "NIST P-521", ecdh.P521()} },
}

// StandardizedCurve returns the curve parameters registered under id.
func StandardizedCurve(id int) (*CurveParameters, error) {
	mk, ok := standardizedCurves[id]
	if !ok {
		return nil, fmt.Errorf("unsupported standardized domain parameters %d", id)
	}
	return mk(), nil
}

// ID returns the standardized identifier.
func (c *CurveParameters) ID() int { return c.id }

// Curve returns the crypto/ecdh curve used to generate and agree keys.
func (c *CurveParameters) Curve() ecdh.Curve { return c.curve }

func (c *CurveParameters) String() string { return c.name }

// Equal reports whether x is a *CurveParameters with the same identifier.
func (c *CurveParameters) Equal(x any) bool {
	other, ok := x.(*CurveParameters)
	if !ok || c == nil || other == nil {
		return ok && c == other
	}
	return c.id == other.id
}

// HashCode is consistent with Equal.
func (c *CurveParameters) HashCode() int32 {
	if c == nil {
		return 0
	}
	return int32(c.id)
}
