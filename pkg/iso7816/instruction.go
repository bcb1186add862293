package iso7816

import (
	"fmt"

	"github.com/gregLibert/emrtd/pkg/bits"
)

// INS byte (ISO/IEC 7816-4). Bit 1 set on an interindustry instruction means
// the data field is BER-TLV encoded (B0 READ BINARY vs B1 READ BINARY). INS
// values 6X and 9X are reserved for transport procedures and status words.

// InsCode is a typed representation of the instruction byte.
type InsCode byte

// Instruction codes used when reading the LDS and running PACE.
const (
	INS_VERIFY                      InsCode = 0x20
	INS_MANAGE_SECURITY_ENVIRONMENT InsCode = 0x22
	INS_EXTERNAL_AUTHENTICATE       InsCode = 0x82
	INS_GET_CHALLENGE               InsCode = 0x84
	INS_GENERAL_AUTHENTICATE        InsCode = 0x86
	INS_INTERNAL_AUTHENTICATE       InsCode = 0x88
	INS_SELECT                      InsCode = 0xA4
	INS_READ_BINARY                 InsCode = 0xB0
	INS_READ_BINARY_BER             InsCode = 0xB1
	INS_READ_RECORD                 InsCode = 0xB2
	INS_GET_RESPONSE                InsCode = 0xC0
	INS_GET_DATA                    InsCode = 0xCA
)

var insNames = map[InsCode]string{
	INS_VERIFY:                      "INS_VERIFY",
	INS_MANAGE_SECURITY_ENVIRONMENT: "INS_MANAGE_SECURITY_ENVIRONMENT",
	INS_EXTERNAL_AUTHENTICATE:       "INS_EXTERNAL_AUTHENTICATE",
	INS_GET_CHALLENGE:               "INS_GET_CHALLENGE",
	INS_GENERAL_AUTHENTICATE:        "INS_GENERAL_AUTHENTICATE",
	INS_INTERNAL_AUTHENTICATE:       "INS_INTERNAL_AUTHENTICATE",
	INS_SELECT:                      "INS_SELECT",
	INS_READ_BINARY:                 "INS_READ_BINARY",
	INS_READ_BINARY_BER:             "INS_READ_BINARY_BER",
	INS_READ_RECORD:                 "INS_READ_RECORD",
	INS_GET_RESPONSE:                "INS_GET_RESPONSE",
	INS_GET_DATA:                    "INS_GET_DATA",
}

func (i InsCode) String() string {
	if name, ok := insNames[i]; ok {
		return name
	}
	return fmt.Sprintf("InsCode(0x%02X)", byte(i))
}

// Instruction represents the parsed ISO 7816-4 Instruction byte (INS).
type Instruction struct {
	Raw      InsCode
	IsBERTLV bool
}

// NewInstruction validates ins and records its data-field format.
func NewInstruction(ins InsCode) (Instruction, error) {
	switch byte(ins) & 0xF0 {
	case 0x60, 0x90:
		return Instruction{}, fmt.Errorf("invalid INS 0x%02X: 6X and 9X are reserved", byte(ins))
	}

	return Instruction{
		Raw:      ins,
		IsBERTLV: bits.IsSet(byte(ins), 1),
	}, nil
}

// mustInstruction is for the package's own constants, which are all valid.
func mustInstruction(ins InsCode) Instruction {
	i, err := NewInstruction(ins)
	if err != nil {
		panic(err)
	}
	return i
}

// Verbose returns a human-readable description of the instruction.
func (i Instruction) Verbose() string {
	format := "Standard"
	if i.IsBERTLV {
		format = "BER-TLV"
	}
	return fmt.Sprintf("INS: 0x%02X | Command: %s | Format: %s", byte(i.Raw), i.Raw, format)
}
