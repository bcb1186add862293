package lds

import (
	"bytes"
	"encoding/asn1"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gregLibert/emrtd/pkg/tlv"
)

func TestNewEFDIRInfo_Nil(t *testing.T) {
	info, err := NewEFDIRInfo(nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewEFDIRInfo(nil) error = %v, want ErrInvalidArgument", err)
	}
	if info != nil {
		t.Errorf("NewEFDIRInfo(nil) returned a record: %+v", info)
	}
}

func TestEFDIRInfo_Copies(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03}
	info, err := NewEFDIRInfo(src)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Ingress", func(t *testing.T) {
		src[0] = 0xFF
		if diff := cmp.Diff([]byte{0x01, 0x02, 0x03}, info.EFDIR()); diff != "" {
			t.Errorf("caller mutation leaked in (-want +got):\n%s", diff)
		}
	})

	t.Run("Egress", func(t *testing.T) {
		first := info.EFDIR()
		first[1] = 0xFF
		second := info.EFDIR()

		if diff := cmp.Diff([]byte{0x01, 0x02, 0x03}, second); diff != "" {
			t.Errorf("returned slice aliases storage (-want +got):\n%s", diff)
		}
		if &first[0] == &second[0] {
			t.Error("two calls returned the same backing array")
		}
	})
}

func TestEFDIRInfo_Identifiers(t *testing.T) {
	info, _ := NewEFDIRInfo([]byte{})

	if got := info.ObjectIdentifier(); got != "2.23.136.1.1.13" {
		t.Errorf("ObjectIdentifier() = %q", got)
	}
	if got := info.ProtocolOIDString(); got != "id-EFDIR" {
		t.Errorf("ProtocolOIDString() = %q", got)
	}
	if oidEFDIR.String() != OIDEFDIR {
		t.Errorf("OID constant mismatch: %s vs %s", oidEFDIR, OIDEFDIR)
	}
}

func TestEFDIRInfo_DERObject(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    []byte
	}{
		{
			name:    "Three bytes",
			content: []byte{0x01, 0x02, 0x03},
			want: tlv.Hex(
				"30 0D",                   // SEQUENCE
				"06 06 67 81 08 01 01 0D", // OID 2.23.136.1.1.13
				"04 03 01 02 03",          // OCTET STRING
			),
		},
		{
			name:    "Empty file",
			content: []byte{},
			want:    tlv.Hex("30 0A", "06 06 67 81 08 01 01 0D", "04 00"),
		},
		{
			name:    "Long form length",
			content: bytes.Repeat([]byte{0xAB}, 200),
			want: append(
				tlv.Hex("30 81 D3", "06 06 67 81 08 01 01 0D", "04 81 C8"),
				bytes.Repeat([]byte{0xAB}, 200)...,
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewEFDIRInfo(tt.content)
			if err != nil {
				t.Fatal(err)
			}

			first, err := info.DERObject()
			if err != nil {
				t.Fatalf("DERObject() error: %v", err)
			}
			second, _ := info.DERObject()

			if diff := cmp.Diff(tt.want, first); diff != "" {
				t.Errorf("DER mismatch (-want +got):\n%s", diff)
			}
			if !bytes.Equal(first, second) {
				t.Error("DERObject() is not repeatable")
			}
		})
	}
}

func TestEFDIRInfo_DERObjectDecodes(t *testing.T) {
	info, _ := NewEFDIRInfo([]byte{0x01, 0x02, 0x03})
	der, _ := info.DERObject()

	var decoded struct {
		Protocol asn1.ObjectIdentifier
		EFDIR    []byte
	}
	rest, err := asn1.Unmarshal(der, &decoded)
	if err != nil {
		t.Fatalf("asn1.Unmarshal: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("trailing bytes: %X", rest)
	}
	if !decoded.Protocol.Equal(asn1.ObjectIdentifier{2, 23, 136, 1, 1, 13}) {
		t.Errorf("protocol = %s", decoded.Protocol)
	}
	if diff := cmp.Diff([]byte{0x01, 0x02, 0x03}, decoded.EFDIR); diff != "" {
		t.Errorf("eFDIR mismatch (-want +got):\n%s", diff)
	}
}

func TestEFDIRInfo_Applications(t *testing.T) {
	content := tlv.Hex(
		"61 09 4F 07 A0000002471001",                // LDS1
		"61 0F 4F 07 A0000002472001 50 04 54455354", // travel records, label "TEST"
	)
	info, _ := NewEFDIRInfo(content)

	apps, err := info.Applications()
	if err != nil {
		t.Fatalf("Applications() error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("got %d applications, want 2", len(apps))
	}
	if !apps[0].IsLDS1() || apps[1].IsLDS1() {
		t.Errorf("IsLDS1 mismatch: %v %v", apps[0].IsLDS1(), apps[1].IsLDS1())
	}

	found, err := info.HasApplication([]byte(AIDLDS1))
	if err != nil || !found {
		t.Errorf("HasApplication(LDS1) = %v, %v", found, err)
	}

	report := strings.Split(info.Describe(), "\n")
	want := []string{
		"=== EF.DIR SECURITY INFO ===",
		"    - Protocol: id-EFDIR (2.23.136.1.1.13)",
		"    - Content: 28 bytes",
		"    - App[1].AID (4F): A0000002471001",
		"    - App[2].AID (4F): A0000002472001",
		`    - App[2].Label (50): 54455354 ("TEST")`,
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("Describe mismatch (-want +got):\n%s", diff)
	}
}

func TestEFDIRInfo_Equal(t *testing.T) {
	a, _ := NewEFDIRInfo([]byte{0x01})
	b, _ := NewEFDIRInfo([]byte{0x01})
	c, _ := NewEFDIRInfo([]byte{0x02})

	if !a.Equal(b) {
		t.Error("same content should be equal")
	}
	if a.Equal(c) {
		t.Error("different content should not be equal")
	}
	if a.Equal(nil) {
		t.Error("record should not equal nil")
	}
}
