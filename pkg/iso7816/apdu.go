package iso7816

import (
	"bytes"
	"fmt"
)

// A Command APDU is a 4-byte header (CLA INS P1 P2) optionally followed by
// Lc + data and/or Le. ISO/IEC 7816-3 distinguishes four cases depending on
// which of data and Le are present, and two length modes:
//   - short: Lc and Le on one byte (Nc <= 255, Ne <= 256, Le=00 meaning 256);
//   - extended: Lc on 00 + two bytes, Le on two bytes (00 prefixed when no Lc),
//     Le=0000 meaning 65536.
//
// A Response APDU is an optional data field followed by the SW1 SW2 trailer.

// APDU length limits.
const (
	MaxShortLc    = 255
	MaxShortLe    = 256
	MaxExtendedLc = 65535
	MaxExtendedLe = 65536
)

// CommandAPDU represents a command sent to the card.
type CommandAPDU struct {
	Class       Class
	Instruction Instruction
	P1, P2      byte
	Data        []byte
	Ne          int // Expected response length (0 means none)
}

// NewCommandAPDU creates a basic command.
func NewCommandAPDU(cla Class, ins Instruction, p1, p2 byte, data []byte, ne int) *CommandAPDU {
	return &CommandAPDU{
		Class:       cla,
		Instruction: ins,
		P1:          p1,
		P2:          p2,
		Data:        data,
		Ne:          ne,
	}
}

// Bytes encodes the command, switching to extended lengths when either Nc or
// Ne does not fit the short form.
func (c *CommandAPDU) Bytes() ([]byte, error) {
	nc, ne := len(c.Data), c.Ne
	if nc > MaxExtendedLc {
		return nil, fmt.Errorf("command data too long: %d bytes", nc)
	}
	if ne < 0 || ne > MaxExtendedLe {
		return nil, fmt.Errorf("expected length out of range: %d", ne)
	}

	cla, err := c.Class.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode Class: %w", err)
	}

	var buf bytes.Buffer
	buf.Write([]byte{cla, byte(c.Instruction.Raw), c.P1, c.P2})

	extended := nc > MaxShortLc || ne > MaxShortLe

	if nc > 0 {
		if extended {
			buf.Write([]byte{0x00, byte(nc >> 8), byte(nc)})
		} else {
			buf.WriteByte(byte(nc))
		}
		buf.Write(c.Data)
	}

	if ne > 0 {
		switch {
		case !extended:
			// 256 wraps to 00
			buf.WriteByte(byte(ne))
		default:
			if nc == 0 {
				buf.WriteByte(0x00)
			}
			// 65536 wraps to 0000
			buf.Write([]byte{byte(ne >> 8), byte(ne)})
		}
	}

	return buf.Bytes(), nil
}

// String returns a readable representation of the command meta-data.
func (c *CommandAPDU) String() string {
	return fmt.Sprintf("%s | P1: %02X, P2: %02X | Lc: %d | Le: %d",
		c.Instruction.Verbose(), c.P1, c.P2, len(c.Data), c.Ne)
}

// ResponseAPDU represents the reply from the card (R-APDU).
type ResponseAPDU struct {
	Data   []byte
	Status StatusWord
}

// ParseResponseAPDU splits a raw response into its data field and status word.
// The data field is copied so that the caller may reuse raw.
func ParseResponseAPDU(raw []byte) (*ResponseAPDU, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("response too short: length %d", len(raw))
	}

	n := len(raw) - 2
	data := make([]byte, n)
	copy(data, raw[:n])

	return &ResponseAPDU{
		Data:   data,
		Status: NewStatusWord(raw[n], raw[n+1]),
	}, nil
}

// String returns a readable representation of the response.
func (r *ResponseAPDU) String() string {
	return fmt.Sprintf("Data (%d bytes) | Status: %s", len(r.Data), r.Status.Verbose())
}
