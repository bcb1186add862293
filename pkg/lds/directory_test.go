package lds

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gregLibert/emrtd/pkg/tlv"
	"github.com/moov-io/bertlv"
)

func TestParseDirectory(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []Application
		wantErr bool
	}{
		{
			name: "Empty",
			data: nil,
		},
		{
			name: "LDS1 only",
			data: tlv.Hex("61 09 4F 07 A0000002471001"),
			want: []Application{{AID: []byte(AIDLDS1)}},
		},
		{
			name: "Unknown tag kept",
			data: tlv.Hex("61 0C 4F 07 A0000002471001 99 01 01"),
			want: []Application{{
				AID:     []byte(AIDLDS1),
				Unknown: []bertlv.TLV{{Tag: "99", Value: []byte{0x01}}},
			}},
		},
		{
			name:    "Template without AID",
			data:    tlv.Hex("61 03 50 01 41"),
			wantErr: true,
		},
		{
			name:    "Truncated",
			data:    tlv.Hex("61 09 4F 07 A000"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirectory(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirectory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got, cmpTLV); diff != "" {
				t.Errorf("Mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// cmpTLV compares decoded packets on tag and value only.
var cmpTLV = cmp.Comparer(func(a, b bertlv.TLV) bool {
	return a.Tag == b.Tag && string(a.Value) == string(b.Value)
})
