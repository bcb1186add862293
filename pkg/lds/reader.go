package lds

import (
	"fmt"

	"github.com/gregLibert/emrtd/pkg/iso7816"
)

// FIDEFDIR is the file identifier of EF.DIR in the Master File.
const FIDEFDIR uint16 = 0x2F00

// readBlockSize is the largest READ BINARY chunk requested. It keeps
// responses within what most chips accept once secure messaging wraps them.
const readBlockSize = 0xDF

// CardReader sends one logical command to a card. *iso7816.Client satisfies it.
type CardReader interface {
	Send(cmd *iso7816.CommandAPDU) (iso7816.Trace, error)
}

// ReadEFDIR selects EF.DIR and reads it to the end.
func ReadEFDIR(c CardReader, cls iso7816.Class) (*EFDIRInfo, error) {
	content, err := ReadTransparentEF(c, cls, FIDEFDIR)
	if err != nil {
		return nil, fmt.Errorf("read EF.DIR: %w", err)
	}
	return NewEFDIRInfo(content)
}

// ReadTransparentEF selects the EF fid under the current DF and returns its
// whole content. The file ends when the card answers 6282 or 6B00, or returns
// fewer bytes than asked for.
func ReadTransparentEF(c CardReader, cls iso7816.Class, fid uint16) ([]byte, error) {
	trace, err := c.Send(iso7816.SelectEF(cls, fid))
	if err != nil {
		return nil, err
	}
	if err := trace.Err(); err != nil {
		return nil, fmt.Errorf("select %04X: %w", fid, err)
	}

	content := []byte{}
	for {
		if len(content) > iso7816.MaxReadBinaryOffset {
			return nil, fmt.Errorf("file %04X larger than %d bytes", fid, iso7816.MaxReadBinaryOffset)
		}

		cmd, err := iso7816.ReadBinary(cls, uint16(len(content)), readBlockSize)
		if err != nil {
			return nil, err
		}
		trace, err := c.Send(cmd)
		if err != nil {
			return nil, err
		}

		res, err := iso7816.NewReadBinaryResult(trace)
		if err != nil {
			return nil, err
		}

		eof := res.EndOfFile()
		if !eof {
			if err := trace.Err(); err != nil {
				return nil, fmt.Errorf("read %04X at offset %d: %w", fid, len(content), err)
			}
		}

		data := trace.Data()
		content = append(content, data...)
		if eof || len(data) == 0 {
			return content, nil
		}
	}
}
