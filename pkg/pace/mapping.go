package pace

import (
	"fmt"

	"github.com/gregLibert/emrtd/pkg/octets"
)

// MappingResult is the output of a Generic Mapping step. It is implemented
// only by the types of this package.
type MappingResult interface {
	Variant() Variant

	StaticParameters() DomainParameters
	PICCNonce() []byte
	PICCMappingPublicKey() PublicKey
	PCDMappingKeyPair() KeyPair
	EphemeralParameters() DomainParameters

	Equal(other MappingResult) bool
	HashCode() int32

	mapping() *mappingFields
}

// mappingFields are the fields every mapping result carries.
type mappingFields struct {
	staticParameters     DomainParameters
	piccNonce            octets.Optional
	piccMappingPublicKey PublicKey
	pcdMappingKeyPair    KeyPair
	ephemeralParameters  DomainParameters
}

func newMappingFields(
	staticParameters DomainParameters,
	piccNonce []byte,
	piccMappingPublicKey PublicKey,
	pcdMappingKeyPair KeyPair,
	ephemeralParameters DomainParameters,
) mappingFields {
	return mappingFields{
		staticParameters:     staticParameters,
		piccNonce:            octets.OptionalOf(piccNonce),
		piccMappingPublicKey: piccMappingPublicKey,
		pcdMappingKeyPair:    pcdMappingKeyPair,
		ephemeralParameters:  ephemeralParameters,
	}
}

// StaticParameters returns the parameters agreed before mapping.
func (f *mappingFields) StaticParameters() DomainParameters {
	return f.staticParameters
}

// PICCNonce returns a copy of the decrypted nonce sent by the chip, or nil
// if none was recorded.
func (f *mappingFields) PICCNonce() []byte {
	nonce, _ := f.piccNonce.Get()
	return nonce
}

// PICCMappingPublicKey returns the chip's mapping public key.
func (f *mappingFields) PICCMappingPublicKey() PublicKey {
	return f.piccMappingPublicKey
}

// PCDMappingKeyPair returns the reader's mapping key pair.
func (f *mappingFields) PCDMappingKeyPair() KeyPair {
	return f.pcdMappingKeyPair
}

// EphemeralParameters returns the parameters derived by the mapping.
func (f *mappingFields) EphemeralParameters() DomainParameters {
	return f.ephemeralParameters
}

func (f *mappingFields) equal(o *mappingFields) bool {
	if o == nil {
		return false
	}
	return equalParams(f.staticParameters, o.staticParameters) &&
		f.piccNonce.Equal(o.piccNonce) &&
		equalPublic(f.piccMappingPublicKey, o.piccMappingPublicKey) &&
		f.pcdMappingKeyPair.Equal(o.pcdMappingKeyPair) &&
		equalParams(f.ephemeralParameters, o.ephemeralParameters)
}

// hashCode walks the fields in the order equal compares them.
func (f *mappingFields) hashCode() int32 {
	h := int32(1)
	h = 31*h + hashParams(f.staticParameters)
	h = 31*h + f.piccNonce.HashCode()
	h = 31*h + hashPublic(f.piccMappingPublicKey)
	h = 31*h + f.pcdMappingKeyPair.HashCode()
	h = 31*h + hashParams(f.ephemeralParameters)
	return h
}

func (f *mappingFields) summary() string {
	nonce := "absent"
	if b, ok := f.piccNonce.Get(); ok {
		nonce = fmt.Sprintf("%d bytes", len(b))
	}
	return fmt.Sprintf("nonce=%s piccKey=%t pcdKeyPair=%t ephemeral=%t",
		nonce,
		f.piccMappingPublicKey != nil,
		f.pcdMappingKeyPair.Private != nil || f.pcdMappingKeyPair.Public != nil,
		f.ephemeralParameters != nil,
	)
}

// GMMappingResult is the result of a Generic Mapping step.
type GMMappingResult struct {
	mappingFields
}

var _ MappingResult = (*GMMappingResult)(nil)

// NewGMMappingResult records a mapping step. piccNonce is copied; keys and
// parameters are kept as given. Any field may be nil.
func NewGMMappingResult(
	staticParameters DomainParameters,
	piccNonce []byte,
	piccMappingPublicKey PublicKey,
	pcdMappingKeyPair KeyPair,
	ephemeralParameters DomainParameters,
) *GMMappingResult {
	return &GMMappingResult{
		mappingFields: newMappingFields(staticParameters, piccNonce, piccMappingPublicKey, pcdMappingKeyPair, ephemeralParameters),
	}
}

// Variant returns GenericMapping.
func (r *GMMappingResult) Variant() Variant {
	return GenericMapping
}

// Equal reports whether other is also a GenericMapping result with the same
// fields.
func (r *GMMappingResult) Equal(other MappingResult) bool {
	if other == nil || other.Variant() != GenericMapping {
		return false
	}
	return r.equal(other.mapping())
}

func (r *GMMappingResult) mapping() *mappingFields {
	if r == nil {
		return nil
	}
	return &r.mappingFields
}

// HashCode is consistent with Equal.
func (r *GMMappingResult) HashCode() int32 {
	return r.hashCode()
}

func (r *GMMappingResult) String() string {
	return fmt.Sprintf("GMMappingResult{%s}", r.summary())
}

// GMWithDHMappingResult is the result of Generic Mapping over a
// Diffie-Hellman group. It adds the shared secret derived from the two
// mapping keys, which may be absent.
type GMWithDHMappingResult struct {
	mappingFields
	sharedSecret octets.Optional
}

var _ MappingResult = (*GMWithDHMappingResult)(nil)

// NewGMWithDHMappingResult records a DH mapping step. A nil sharedSecret is
// recorded as absent; any other slice, even empty, is copied.
func NewGMWithDHMappingResult(
	staticParameters DomainParameters,
	piccNonce []byte,
	piccMappingPublicKey PublicKey,
	pcdMappingKeyPair KeyPair,
	sharedSecret []byte,
	ephemeralParameters DomainParameters,
) *GMWithDHMappingResult {
	return &GMWithDHMappingResult{
		mappingFields: newMappingFields(staticParameters, piccNonce, piccMappingPublicKey, pcdMappingKeyPair, ephemeralParameters),
		sharedSecret:  octets.OptionalOf(sharedSecret),
	}
}

// Variant returns GenericMappingDH.
func (r *GMWithDHMappingResult) Variant() Variant {
	return GenericMappingDH
}

// SharedSecret returns a copy of the shared secret and whether it is present.
func (r *GMWithDHMappingResult) SharedSecret() ([]byte, bool) {
	return r.sharedSecret.Get()
}

// Equal reports whether other is also a GenericMappingDH result with the
// same fields and the same shared secret. Absent equals absent.
func (r *GMWithDHMappingResult) Equal(other MappingResult) bool {
	if other == nil || other.Variant() != GenericMappingDH {
		return false
	}
	o, ok := other.(*GMWithDHMappingResult)
	if !ok || o == nil || !r.equal(&o.mappingFields) {
		return false
	}
	return r.sharedSecret.Equal(o.sharedSecret)
}

func (r *GMWithDHMappingResult) mapping() *mappingFields {
	if r == nil {
		return nil
	}
	return &r.mappingFields
}

// HashCode is 31 * (hash of the shared fields) + hash of the shared secret.
func (r *GMWithDHMappingResult) HashCode() int32 {
	return 31*r.hashCode() + r.sharedSecret.HashCode()
}

func (r *GMWithDHMappingResult) String() string {
	secret := "absent"
	if b, ok := r.sharedSecret.Get(); ok {
		secret = fmt.Sprintf("%d bytes", len(b))
	}
	return fmt.Sprintf("GMWithDHMappingResult{%s sharedSecret=%s}", r.summary(), secret)
}
