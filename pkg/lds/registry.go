package lds

import (
	"encoding/asn1"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// DecoderFunc builds a SecurityInfo from the DER elements that follow the
// protocol OID inside the record's SEQUENCE.
type DecoderFunc func(rest []byte) (SecurityInfo, error)

type registry struct {
	mut      sync.RWMutex
	decoders map[string]DecoderFunc
}

var securityInfos = &registry{decoders: make(map[string]DecoderFunc)}

// RegisterSecurityInfo binds a decoder to a dotted protocol OID. It errors if
// the OID is already bound.
func RegisterSecurityInfo(oid string, dec DecoderFunc) error {
	if dec == nil {
		return fmt.Errorf("%w: nil decoder for %s", ErrInvalidArgument, oid)
	}

	securityInfos.mut.Lock()
	defer securityInfos.mut.Unlock()

	if _, conflict := securityInfos.decoders[oid]; conflict {
		return fmt.Errorf("decoder for %s already registered", oid)
	}
	securityInfos.decoders[oid] = dec
	return nil
}

// RegisteredProtocols returns the sorted OIDs that DecodeSecurityInfo accepts.
func RegisteredProtocols() []string {
	securityInfos.mut.RLock()
	defer securityInfos.mut.RUnlock()

	oids := make([]string, 0, len(securityInfos.decoders))
	for oid := range securityInfos.decoders {
		oids = append(oids, oid)
	}
	sort.Strings(oids)
	return oids
}

// DecodeSecurityInfo parses one DER SecurityInfo and dispatches on its
// protocol OID.
func DecodeSecurityInfo(der []byte) (SecurityInfo, error) {
	input := cryptobyte.String(der)

	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: expected SEQUENCE", ErrMalformed)
	}
	if !input.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes after SEQUENCE", ErrMalformed, len(input))
	}

	var oid asn1.ObjectIdentifier
	if !seq.ReadASN1ObjectIdentifier(&oid) {
		return nil, fmt.Errorf("%w: expected protocol OBJECT IDENTIFIER", ErrMalformed)
	}

	securityInfos.mut.RLock()
	dec, ok := securityInfos.decoders[oid.String()]
	securityInfos.mut.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, oid)
	}
	return dec(seq)
}

func decodeEFDIRInfo(rest []byte) (SecurityInfo, error) {
	s := cryptobyte.String(rest)

	var content cryptobyte.String
	if !s.ReadASN1(&content, cbasn1.OCTET_STRING) {
		return nil, fmt.Errorf("%w: EFDIRInfo expects an OCTET STRING", ErrMalformed)
	}
	if !s.Empty() {
		return nil, fmt.Errorf("%w: unexpected data after eFDIR", ErrMalformed)
	}

	// content is never nil here, so an empty file decodes to an empty record.
	return NewEFDIRInfo([]byte(content))
}

func init() {
	if err := RegisterSecurityInfo(OIDEFDIR, decodeEFDIRInfo); err != nil {
		panic(err)
	}
}
