package iso7816

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// The Client hides two T=0 transport behaviours from callers:
//   - 61XX: XX bytes are waiting, a GET RESPONSE on the same channel fetches them;
//   - 6CXX: the card wants Le=XX, the command is sent again with that Le.
//
// Send returns the whole exchange as a Trace so reports can show every step.

// Transmitter abstracts the physical card connection. *scard.Card satisfies it.
type Transmitter interface {
	Transmit(cmd []byte) ([]byte, error)
}

// Client manages the high-level communication with the card.
// It is not safe for concurrent use.
type Client struct {
	Card Transmitter
	Log  logrus.FieldLogger
}

// NewClient creates a Client that does not log.
func NewClient(card Transmitter) *Client {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Client{Card: card, Log: l}
}

// WithLogger sets the logger used to trace APDUs at debug level.
func (c *Client) WithLogger(l logrus.FieldLogger) *Client {
	c.Log = l
	return c
}

// maxAutoSteps bounds the 61XX / 6CXX follow-ups of a single Send.
const maxAutoSteps = 16

// Send transmits a command and handles protocol logic (61xx, 6Cxx).
func (c *Client) Send(cmd *CommandAPDU) (Trace, error) {
	return c.send(cmd, 0)
}

func (c *Client) send(cmd *CommandAPDU, depth int) (Trace, error) {
	if depth > maxAutoSteps {
		return nil, fmt.Errorf("too many chained responses after %d steps", depth)
	}

	rawCmd, err := cmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	rawResp, err := c.Card.Transmit(rawCmd)
	if err != nil {
		return nil, fmt.Errorf("transmission error: %w", err)
	}

	resp, err := ParseResponseAPDU(rawResp)
	if err != nil {
		return nil, err
	}

	c.logger().WithFields(logrus.Fields{
		"ins": cmd.Instruction.Raw.String(),
		"p1":  fmt.Sprintf("%02X", cmd.P1),
		"p2":  fmt.Sprintf("%02X", cmd.P2),
		"lc":  len(cmd.Data),
		"le":  cmd.Ne,
		"sw":  fmt.Sprintf("%04X", uint16(resp.Status)),
		"len": len(resp.Data),
	}).Debug("apdu")

	trace := Trace{{Command: cmd, Response: resp}}

	var next *CommandAPDU
	switch resp.Status.SW1() {
	case 0x61:
		// GET RESPONSE stays on the logical channel of the original command.
		cls := cmd.Class
		cls.IsChained = false
		next = NewCommandAPDU(cls, mustInstruction(INS_GET_RESPONSE), 0x00, 0x00, nil, lengthOrMax(resp.Status.SW2()))
	case 0x6C:
		retry := *cmd
		retry.Ne = lengthOrMax(resp.Status.SW2())
		next = &retry
	default:
		return trace, nil
	}

	sub, err := c.send(next, depth+1)
	trace = append(trace, sub...)
	return trace, err
}

// lengthOrMax maps the SW2 length hint to Ne, where 00 stands for 256.
func lengthOrMax(sw2 byte) int {
	if sw2 == 0 {
		return MaxShortLe
	}
	return int(sw2)
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
