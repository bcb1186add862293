package iso7816

import (
	"errors"
	"fmt"

	"github.com/gregLibert/emrtd/pkg/bits"
)

// CLA byte layout (ISO/IEC 7816-4, bit 8 is the most significant):
//
//	1xxx xxxx  proprietary class, kept as-is
//	000c ssll  first interindustry: chaining c, SM ss, channel ll (0-3)
//	01sc llll  further interindustry: SM s, chaining c, channel llll+4 (4-19)
//
// 0xFF is reserved and always rejected.
const (
	claProprietaryBit = 8
	claFurtherBit     = 7
	claFurtherSMBit   = 6
	claChainingBit    = 5

	maxFirstChannel = 3
	maxChannel      = 19
)

var errReservedClass = errors.New("CLA 0xFF is reserved")

// SecureMessaging is the SM indication carried by the class byte.
type SecureMessaging int

const (
	SMNone        SecureMessaging = iota // no SM, or not indicated
	SMProprietary                        // first interindustry only
	SMHeaderNoProc
	// SMHeaderAuth authenticates the command header. eMRTD commands protected
	// after PACE use it, giving CLA 0C.
	SMHeaderAuth
)

var smNames = [...]string{
	SMNone:         "none",
	SMProprietary:  "proprietary",
	SMHeaderNoProc: "ISO, header not processed",
	SMHeaderAuth:   "ISO, header authenticated",
}

func (sm SecureMessaging) String() string {
	if sm < 0 || int(sm) >= len(smNames) {
		return fmt.Sprintf("SecureMessaging(%d)", int(sm))
	}
	return smNames[sm]
}

// Class is a decoded CLA byte.
type Class struct {
	Raw             byte
	IsProprietary   bool
	IsChained       bool
	SecureMessaging SecureMessaging
	Channel         uint8 // 0-19
}

// NewClass decodes a raw CLA byte.
func NewClass(cla byte) (Class, error) {
	if cla == 0xFF {
		return Class{}, errReservedClass
	}
	if bits.IsSet(cla, claProprietaryBit) {
		return Class{Raw: cla, IsProprietary: true}, nil
	}

	c := Class{Raw: cla, IsChained: bits.IsSet(cla, claChainingBit)}
	if !bits.IsSet(cla, claFurtherBit) {
		c.SecureMessaging = SecureMessaging(bits.GetRange(cla, 4, 3))
		c.Channel = bits.GetRange(cla, 2, 1)
		return c, nil
	}

	if bits.IsSet(cla, claFurtherSMBit) {
		c.SecureMessaging = SMHeaderNoProc
	}
	c.Channel = maxFirstChannel + 1 + bits.GetRange(cla, 4, 1)
	return c, nil
}

// NewInterindustryClass builds a class from its parts. Channels 0-3 use the
// first interindustry layout, 4-19 the further one, which only knows
// SMNone and SMHeaderNoProc.
func NewInterindustryClass(isChained bool, sm SecureMessaging, channel uint8) (Class, error) {
	if channel > maxChannel {
		return Class{}, fmt.Errorf("logical channel %d exceeds %d", channel, maxChannel)
	}
	if channel > maxFirstChannel && sm != SMNone && sm != SMHeaderNoProc {
		return Class{}, fmt.Errorf("secure messaging %q unavailable on channel %d", sm, channel)
	}

	c := Class{IsChained: isChained, SecureMessaging: sm, Channel: channel}
	raw, err := c.Encode()
	if err != nil {
		return Class{}, err
	}
	c.Raw = raw
	return c, nil
}

// Encode returns the CLA byte for c. Proprietary classes encode as Raw.
func (c *Class) Encode() (byte, error) {
	switch {
	case c.IsProprietary:
		return c.Raw, nil
	case c.Channel > maxChannel:
		return 0, fmt.Errorf("logical channel %d exceeds %d", c.Channel, maxChannel)
	}

	var cla byte
	if c.IsChained {
		cla = bits.Set(cla, claChainingBit)
	}
	if c.Channel <= maxFirstChannel {
		return cla | byte(c.SecureMessaging)<<2 | c.Channel, nil
	}

	cla = bits.Set(cla, claFurtherBit)
	if c.SecureMessaging != SMNone {
		cla = bits.Set(cla, claFurtherSMBit)
	}
	return cla | (c.Channel - maxFirstChannel - 1), nil
}

// Verbose describes the class on one line, e.g.
// "CLA 0C: first interindustry, last command, SM ISO, header authenticated, channel 0".
func (c Class) Verbose() string {
	if c.IsProprietary {
		return fmt.Sprintf("CLA %02X: proprietary", c.Raw)
	}

	layout := "first interindustry"
	if c.Channel > maxFirstChannel {
		layout = "further interindustry"
	}
	chaining := "last command"
	if c.IsChained {
		chaining = "chained"
	}
	return fmt.Sprintf("CLA %02X: %s, %s, SM %s, channel %d", c.Raw, layout, chaining, c.SecureMessaging, c.Channel)
}
