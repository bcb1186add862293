package lds

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gregLibert/emrtd/pkg/tlv"
)

func TestDecodeSecurityInfo(t *testing.T) {
	t.Run("EFDIRInfo round trip", func(t *testing.T) {
		orig, _ := NewEFDIRInfo([]byte{0x01, 0x02, 0x03})
		der, _ := orig.DERObject()

		info, err := DecodeSecurityInfo(der)
		if err != nil {
			t.Fatalf("DecodeSecurityInfo() error: %v", err)
		}
		got, ok := info.(*EFDIRInfo)
		if !ok {
			t.Fatalf("decoded %T, want *EFDIRInfo", info)
		}
		if !got.Equal(orig) {
			t.Errorf("round trip changed content: %X", got.EFDIR())
		}
	})

	t.Run("Empty file stays present", func(t *testing.T) {
		info, err := DecodeSecurityInfo(tlv.Hex("30 0A 06 06 67 81 08 01 01 0D 04 00"))
		if err != nil {
			t.Fatal(err)
		}
		content := info.(*EFDIRInfo).EFDIR()
		if content == nil || len(content) != 0 {
			t.Errorf("EFDIR() = %#v, want empty non-nil", content)
		}
	})

	errorCases := []struct {
		name    string
		der     []byte
		wantErr error
	}{
		{
			name:    "Unknown protocol",
			der:     tlv.Hex("30 0A 06 06 67 81 08 01 01 7F 04 00"),
			wantErr: ErrUnsupportedProtocol,
		},
		{
			name:    "Trailing bytes",
			der:     tlv.Hex("30 0A 06 06 67 81 08 01 01 0D 04 00 00"),
			wantErr: ErrMalformed,
		},
		{
			name:    "Not a SEQUENCE",
			der:     tlv.Hex("04 01 00"),
			wantErr: ErrMalformed,
		},
		{
			name:    "Missing OID",
			der:     tlv.Hex("30 02 04 00"),
			wantErr: ErrMalformed,
		},
		{
			name:    "eFDIR not an OCTET STRING",
			der:     tlv.Hex("30 0B 06 06 67 81 08 01 01 0D 02 01 00"),
			wantErr: ErrMalformed,
		},
		{
			name:    "Extra element after eFDIR",
			der:     tlv.Hex("30 0C 06 06 67 81 08 01 01 0D 04 00 05 00"),
			wantErr: ErrMalformed,
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSecurityInfo(tc.der)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterSecurityInfo(t *testing.T) {
	if err := RegisterSecurityInfo(OIDEFDIR, decodeEFDIRInfo); err == nil {
		t.Error("registering id-EFDIR twice should fail")
	}
	if err := RegisterSecurityInfo("1.2.3", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil decoder error = %v", err)
	}

	if diff := cmp.Diff([]string{OIDEFDIR}, RegisteredProtocols()); diff != "" {
		t.Errorf("RegisteredProtocols mismatch (-want +got):\n%s", diff)
	}
}
