// Package lds holds the security records of the eMRTD Logical Data Structure.
//
// Each record is a SecurityInfo: it knows the object identifier of the
// protocol it describes and encodes itself to the DER structure defined by
// ICAO Doc 9303. Records are immutable. Byte content is copied when a record
// is built and again whenever it is read back.
package lds

import "errors"

var (
	// ErrInvalidArgument is returned when a record is built from a missing
	// required input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedProtocol is returned when decoding a SecurityInfo whose
	// protocol OID has no registered decoder.
	ErrUnsupportedProtocol = errors.New("unsupported security info protocol")

	// ErrMalformed is returned when DER input does not have the expected shape.
	ErrMalformed = errors.New("malformed security info")
)

// Object identifiers.
const (
	// OIDICAOMRTDSecurity is id-icao-mrtd-security.
	OIDICAOMRTDSecurity = "2.23.136.1.1"

	// OIDEFDIR is id-EFDIR, id-icao-mrtd-security 13.
	OIDEFDIR = OIDICAOMRTDSecurity + ".13"
)

// AIDLDS1 is the application identifier of the eMRTD LDS1 application.
const AIDLDS1 = "\xA0\x00\x00\x02\x47\x10\x01"

// SecurityInfo is one piece of document security metadata.
type SecurityInfo interface {
	// DERObject returns the DER encoding of the record.
	DERObject() ([]byte, error)

	// ObjectIdentifier returns the dotted protocol OID, for example "2.23.136.1.1.13".
	ObjectIdentifier() string

	// ProtocolOIDString returns the protocol's ASN.1 name, for example "id-EFDIR".
	ProtocolOIDString() string
}
