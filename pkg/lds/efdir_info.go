package lds

import (
	"encoding/asn1"
	"fmt"
	"strings"

	"github.com/gregLibert/emrtd/pkg/octets"
	"github.com/gregLibert/emrtd/pkg/tlv"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

//	EFDIRInfo ::= SEQUENCE {
//	  protocol OBJECT IDENTIFIER(id-EFDIR),
//	  eFDIR    OCTET STRING
//	}

var oidEFDIR = asn1.ObjectIdentifier{2, 23, 136, 1, 1, 13}

// EFDIRInfo carries a full copy of the transparent elementary file EF.DIR
// found in the Master File.
type EFDIRInfo struct {
	efDIR octets.Buffer
}

var _ SecurityInfo = (*EFDIRInfo)(nil)

// NewEFDIRInfo wraps a copy of the EF.DIR content. A nil efDIR is rejected
// with ErrInvalidArgument; an empty, non-nil one is accepted.
func NewEFDIRInfo(efDIR []byte) (*EFDIRInfo, error) {
	if efDIR == nil {
		return nil, fmt.Errorf("%w: cannot create EFDIRInfo for nil content", ErrInvalidArgument)
	}
	return &EFDIRInfo{efDIR: octets.New(efDIR)}, nil
}

// EFDIR returns a copy of the EF.DIR content.
func (i *EFDIRInfo) EFDIR() []byte {
	return i.efDIR.Bytes()
}

// DERObject encodes the record as SEQUENCE { OID, OCTET STRING }.
func (i *EFDIRInfo) DERObject() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidEFDIR)
		b.AddASN1OctetString(i.efDIR.Bytes())
	})

	der, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode EFDIRInfo: %w", err)
	}
	return der, nil
}

// ObjectIdentifier returns OIDEFDIR.
func (i *EFDIRInfo) ObjectIdentifier() string {
	return OIDEFDIR
}

// ProtocolOIDString returns "id-EFDIR".
func (i *EFDIRInfo) ProtocolOIDString() string {
	return "id-EFDIR"
}

// Equal reports whether both records wrap the same EF.DIR content.
func (i *EFDIRInfo) Equal(other *EFDIRInfo) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.efDIR.Equal(other.efDIR)
}

// Applications parses the EF.DIR content as application templates.
func (i *EFDIRInfo) Applications() ([]Application, error) {
	return ParseDirectory(i.efDIR.Bytes())
}

// HasApplication reports whether EF.DIR lists the application aid.
func (i *EFDIRInfo) HasApplication(aid []byte) (bool, error) {
	apps, err := i.Applications()
	if err != nil {
		return false, err
	}
	for _, app := range apps {
		if string(app.AID) == string(aid) {
			return true, nil
		}
	}
	return false, nil
}

// Describe generates a report of the record and the applications it lists.
func (i *EFDIRInfo) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== EF.DIR SECURITY INFO ===")
	sb.WriteString(fmt.Sprintf("\n    - Protocol: %s (%s)", i.ProtocolOIDString(), i.ObjectIdentifier()))
	sb.WriteString(fmt.Sprintf("\n    - Content: %d bytes", i.efDIR.Len()))

	apps, err := i.Applications()
	if err != nil {
		sb.WriteString(fmt.Sprintf("\n    - Applications: parsing failed: %v", err))
		return sb.String()
	}

	for n, app := range apps {
		tlv.WriteStructFields(&sb, fmt.Sprintf("App[%d]", n+1), app)
	}
	return sb.String()
}
