package iso7816

import (
	"testing"
)

func TestNewInstruction(t *testing.T) {
	tests := []struct {
		name       string
		ins        InsCode
		wantBERTLV bool
		wantErr    bool
	}{
		{name: "MSE:Set AT", ins: INS_MANAGE_SECURITY_ENVIRONMENT},
		{name: "General Authenticate", ins: INS_GENERAL_AUTHENTICATE},
		{name: "Read Binary", ins: INS_READ_BINARY},
		{name: "Read Binary with offset data object", ins: INS_READ_BINARY_BER, wantBERTLV: true},
		{name: "Odd unnamed instruction", ins: 0x87, wantBERTLV: true},
		{name: "Reserved 6X", ins: 0x6C, wantErr: true},
		{name: "Reserved 9X", ins: 0x9F, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInstruction(tt.ins)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewInstruction(0x%02X) error = %v, wantErr %v", byte(tt.ins), err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Raw != tt.ins || got.IsBERTLV != tt.wantBERTLV {
				t.Errorf("NewInstruction(0x%02X) = %+v", byte(tt.ins), got)
			}
		})
	}
}

func TestInsCode_String(t *testing.T) {
	tests := []struct {
		ins  InsCode
		want string
	}{
		{INS_GENERAL_AUTHENTICATE, "INS_GENERAL_AUTHENTICATE"},
		{INS_GET_RESPONSE, "INS_GET_RESPONSE"},
		{0x87, "InsCode(0x87)"},
	}

	for _, tt := range tests {
		if got := tt.ins.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestInstruction_Verbose(t *testing.T) {
	tests := []struct {
		ins  InsCode
		want string
	}{
		{INS_MANAGE_SECURITY_ENVIRONMENT, "INS: 0x22 | Command: INS_MANAGE_SECURITY_ENVIRONMENT | Format: Standard"},
		{INS_READ_BINARY_BER, "INS: 0xB1 | Command: INS_READ_BINARY_BER | Format: BER-TLV"},
	}

	for _, tt := range tests {
		i, _ := NewInstruction(tt.ins)
		if got := i.Verbose(); got != tt.want {
			t.Errorf("Verbose() = %q, want %q", got, tt.want)
		}
	}
}
