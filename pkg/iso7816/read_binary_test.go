package iso7816

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gregLibert/emrtd/pkg/tlv"
)

func TestReadBinary(t *testing.T) {
	cls, _ := NewClass(0x00)

	tests := []struct {
		name     string
		build    func() (*CommandAPDU, error)
		expected []byte
		wantErr  bool
	}{
		{
			name:     "Offset 0, Le 256",
			build:    func() (*CommandAPDU, error) { return ReadBinary(cls, 0, MaxShortLe) },
			expected: tlv.Hex("00 B0 00 00 00"),
		},
		{
			name:     "Offset 0x01DF, Le 0x20",
			build:    func() (*CommandAPDU, error) { return ReadBinary(cls, 0x01DF, 0x20) },
			expected: tlv.Hex("00 B0 01 DF 20"),
		},
		{
			name:    "Offset beyond 15 bits",
			build:   func() (*CommandAPDU, error) { return ReadBinary(cls, 0x8000, 1) },
			wantErr: true,
		},
		{
			name:     "Short EF 1E (EF.COM), offset 0, Le 4",
			build:    func() (*CommandAPDU, error) { return ReadBinarySFI(cls, 0x1E, 0, 4) },
			expected: tlv.Hex("00 B0 9E 00 04"),
		},
		{
			name:    "SFI 0 is invalid",
			build:   func() (*CommandAPDU, error) { return ReadBinarySFI(cls, 0, 0, 4) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.build()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			got, err := cmd.Bytes()
			if err != nil {
				t.Fatalf("Failed to encode bytes: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadBinaryResult(t *testing.T) {
	cls, _ := NewClass(0x00)

	readTx := func(offset uint16, ne int, data []byte, sw StatusWord) Transaction {
		cmd, _ := ReadBinary(cls, offset, ne)
		return Transaction{Command: cmd, Response: &ResponseAPDU{Data: data, Status: sw}}
	}

	t.Run("Rejects non READ BINARY trace", func(t *testing.T) {
		trace := Trace{{Command: SelectMF(cls), Response: &ResponseAPDU{Status: SW_NO_ERROR}}}
		if _, err := NewReadBinaryResult(trace); err == nil {
			t.Error("Expected error for SELECT trace")
		}
		if _, err := NewReadBinaryResult(nil); err == nil {
			t.Error("Expected error for empty trace")
		}
	})

	t.Run("Full read is not end of file", func(t *testing.T) {
		res, err := NewReadBinaryResult(Trace{readTx(0, 2, []byte{0x61, 0x03}, SW_NO_ERROR)})
		if err != nil {
			t.Fatal(err)
		}
		if res.EndOfFile() {
			t.Error("EndOfFile() = true for a full read")
		}
	})

	t.Run("Short read is end of file", func(t *testing.T) {
		res, _ := NewReadBinaryResult(Trace{readTx(0x10, 8, []byte{0x01}, SW_NO_ERROR)})
		if !res.EndOfFile() {
			t.Error("EndOfFile() = false for a short read")
		}
		if res.Offset() != 0x10 {
			t.Errorf("Offset() = %d, want 16", res.Offset())
		}
	})

	t.Run("6B00 is end of file", func(t *testing.T) {
		res, _ := NewReadBinaryResult(Trace{readTx(0x20, 8, nil, SW_ERR_WRONG_P1P2)})
		if !res.EndOfFile() {
			t.Error("EndOfFile() = false for 6B00")
		}
	})

	t.Run("Describe", func(t *testing.T) {
		res, _ := NewReadBinaryResult(Trace{readTx(0, 4, []byte("ABCD"), SW_NO_ERROR)})
		report := res.Describe()
		for _, want := range []string{"READ BINARY", "Current EF", "Dump:    41424344", `"ABCD"`} {
			if !strings.Contains(report, want) {
				t.Errorf("Describe() missing %q:\n%s", want, report)
			}
		}
	})
}
