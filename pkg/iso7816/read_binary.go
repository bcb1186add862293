package iso7816

import (
	"fmt"
	"strings"

	"github.com/gregLibert/emrtd/pkg/bits"
	"github.com/gregLibert/emrtd/pkg/tlv"
)

// READ BINARY (INS B0) reads a transparent EF.
// With P1 bit 8 clear, P1-P2 is a 15-bit offset into the current EF.
// With P1 bit 8 set, bits 5-1 of P1 name an EF by short identifier (SFI) and
// P2 is the offset, which is then limited to 255.

// MaxReadBinaryOffset is the largest offset P1-P2 can address.
const MaxReadBinaryOffset = 0x7FFF

// ReadBinary reads ne bytes of the current EF starting at offset.
func ReadBinary(cla Class, offset uint16, ne int) (*CommandAPDU, error) {
	if offset > MaxReadBinaryOffset {
		return nil, fmt.Errorf("offset 0x%04X exceeds 15 bits", offset)
	}
	p1 := bits.Clear(byte(offset>>8), 8)
	return NewCommandAPDU(cla, mustInstruction(INS_READ_BINARY), p1, byte(offset), nil, ne), nil
}

// ReadBinarySFI reads ne bytes of the EF with short identifier sfi,
// selecting it implicitly.
func ReadBinarySFI(cla Class, sfi byte, offset byte, ne int) (*CommandAPDU, error) {
	if sfi == 0 || sfi > 30 {
		return nil, fmt.Errorf("invalid SFI %d", sfi)
	}
	p1 := bits.Set(sfi, 8)
	return NewCommandAPDU(cla, mustInstruction(INS_READ_BINARY), p1, offset, nil, ne), nil
}

// ReadBinaryResult represents the outcome of a READ BINARY command execution.
type ReadBinaryResult struct {
	Trace
}

// NewReadBinaryResult wraps a trace that must start with READ BINARY.
func NewReadBinaryResult(t Trace) (*ReadBinaryResult, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("cannot create result from empty trace")
	}
	if ins := t[0].Command.Instruction.Raw; ins != INS_READ_BINARY && ins != INS_READ_BINARY_BER {
		return nil, fmt.Errorf("trace must start with READ BINARY command (got %02X)", byte(ins))
	}
	return &ReadBinaryResult{Trace: t}, nil
}

// Offset returns the offset the first command targeted.
func (r *ReadBinaryResult) Offset() int {
	cmd := r.Trace[0].Command
	if bits.IsSet(cmd.P1, 8) {
		return int(cmd.P2)
	}
	return int(cmd.P1)<<8 | int(cmd.P2)
}

// EndOfFile reports whether the card signalled that the file ended before
// the requested length: 6282, 6B00 (offset beyond the end), or a short read.
func (r *ReadBinaryResult) EndOfFile() bool {
	last := r.Last()
	switch last.Response.Status {
	case SW_WARN_EOF_REACHED, SW_ERR_WRONG_P1P2:
		return true
	case SW_NO_ERROR:
		return last.Command.Ne > 0 && len(last.Response.Data) < last.Command.Ne
	}
	return false
}

// Describe generates a report of the read operation.
func (r *ReadBinaryResult) Describe() string {
	var sb strings.Builder

	cmd := r.Trace[0].Command
	sb.WriteString("=== READ BINARY COMMAND REPORT ===\n")

	target := "Current EF"
	if bits.IsSet(cmd.P1, 8) {
		target = fmt.Sprintf("SFI %02X (%d)", bits.GetRange(cmd.P1, 5, 1), bits.GetRange(cmd.P1, 5, 1))
	}
	sb.WriteString(fmt.Sprintf("    + Target:  %s\n", target))
	sb.WriteString(fmt.Sprintf("    + Offset:  %d\n", r.Offset()))
	sb.WriteString(fmt.Sprintf("    + Le:      %d\n", cmd.Ne))

	last := r.Last()
	if len(r.Trace) > 1 {
		sb.WriteString(fmt.Sprintf("    + Steps:   %d\n", len(r.Trace)))
	}
	sb.WriteString(fmt.Sprintf("    + Result:  %s\n", last.Response.Status.Verbose()))

	if data := last.Response.Data; len(data) > 0 {
		sb.WriteString(fmt.Sprintf("    + Length:  %d bytes\n", len(data)))
		sb.WriteString(fmt.Sprintf("    + Dump:    %X\n", data))
		sb.WriteString(fmt.Sprintf("    + ASCII:   %q\n", tlv.MakeSafeASCII(data)))
	} else {
		sb.WriteString("    - No Data Received.\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
