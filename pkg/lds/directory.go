package lds

import (
	"fmt"

	"github.com/gregLibert/emrtd/pkg/tlv"
	"github.com/moov-io/bertlv"
)

// Application is one application template (tag '61') of EF.DIR as defined by
// ISO/IEC 7816-4. eMRTDs list at least the LDS1 application.
type Application struct {
	AID                   []byte `tlv:"4F"`
	Label                 []byte `tlv:"50" fmt:"ascii"`
	Path                  []byte `tlv:"51"`
	CommandToPerform      []byte `tlv:"52"`
	DiscretionaryData     []byte `tlv:"53"`
	DiscretionaryTemplate []byte `tlv:"73"`
	URL                   []byte `tlv:"5F50" fmt:"ascii"`

	Unknown []bertlv.TLV `tlv:",unknown"`
}

// IsLDS1 reports whether the template names the eMRTD LDS1 application.
func (a Application) IsLDS1() bool {
	return string(a.AID) == AIDLDS1
}

type directory struct {
	Applications []Application `tlv:"61"`
}

// ParseDirectory decodes EF.DIR content into its application templates.
// Empty content yields no applications. Top-level data that is not an
// application template is ignored.
func ParseDirectory(data []byte) ([]Application, error) {
	if len(data) == 0 {
		return nil, nil
	}

	packets, err := bertlv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("BER-TLV decode failed: %w", err)
	}

	var dir directory
	if err := tlv.UnmarshalFromPackets(packets, &dir); err != nil {
		return nil, fmt.Errorf("failed to map EF.DIR: %w", err)
	}

	for n, app := range dir.Applications {
		if len(app.AID) == 0 {
			return nil, fmt.Errorf("application template %d has no AID (tag 4F)", n+1)
		}
	}

	return dir.Applications, nil
}
