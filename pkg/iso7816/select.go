package iso7816

import (
	"fmt"
)

// SELECT (INS A4) makes a file or application current.
// P1 says how the target is named, P2 bits 4-3 say what the card returns and
// bits 2-1 which occurrence to pick.

// SelectionMethod defines how the file is targeted (P1).
type SelectionMethod byte

const (
	SelectByFileID          SelectionMethod = 0x00
	SelectChildDF           SelectionMethod = 0x01
	SelectEFUnderCurrentDF  SelectionMethod = 0x02
	SelectParentDF          SelectionMethod = 0x03
	SelectByDFName          SelectionMethod = 0x04 // Select by AID
	SelectPathFromMF        SelectionMethod = 0x08
	SelectPathFromCurrentDF SelectionMethod = 0x09
)

var selectionMethodNames = map[SelectionMethod]string{
	SelectByFileID:          "by file identifier",
	SelectChildDF:           "child DF",
	SelectEFUnderCurrentDF:  "EF under current DF",
	SelectParentDF:          "parent DF",
	SelectByDFName:          "by DF name",
	SelectPathFromMF:        "path from MF",
	SelectPathFromCurrentDF: "path from current DF",
}

func (s SelectionMethod) String() string {
	if name, ok := selectionMethodNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SelectionMethod(0x%02X)", byte(s))
}

// FileOccurrence defines which instance of the file to select (Bits 1-2 of P2).
type FileOccurrence byte

const (
	FirstOrOnlyOccurrence FileOccurrence = 0b0000_00_00
	LastOccurrence        FileOccurrence = 0b0000_00_01
	NextOccurrence        FileOccurrence = 0b0000_00_10
	PreviousOccurrence    FileOccurrence = 0b0000_00_11
)

// SelectionControl defines what data to return (Bits 3-4 of P2).
type SelectionControl byte

const (
	ReturnFCI    SelectionControl = 0b0000_00_00
	ReturnFCP    SelectionControl = 0b0000_01_00
	ReturnFMD    SelectionControl = 0b0000_10_00
	ReturnNoData SelectionControl = 0b0000_11_00
)

// NewSelectCommand creates a generic SELECT command.
func NewSelectCommand(
	cla Class,
	method SelectionMethod,
	occurrence FileOccurrence,
	ctrl SelectionControl,
	data []byte,
) *CommandAPDU {
	p2 := byte(ctrl) | byte(occurrence)

	// Under T=0 a case 4 command cannot carry Le; the card answers 61XX and
	// the Client fetches the data. Without data, ask for a full short Le.
	ne := 0
	if len(data) == 0 && ctrl != ReturnNoData {
		ne = MaxShortLe
	}

	return NewCommandAPDU(cla, mustInstruction(INS_SELECT), byte(method), p2, data, ne)
}

// SelectByAID selects an application by its name (AID) and asks for its FCI.
func SelectByAID(cla Class, aid []byte) *CommandAPDU {
	return NewSelectCommand(cla, SelectByDFName, FirstOrOnlyOccurrence, ReturnFCI, aid)
}

// SelectMF creates a command to select the Master File.
func SelectMF(cla Class) *CommandAPDU {
	return NewSelectCommand(cla, SelectByFileID, FirstOrOnlyOccurrence, ReturnFCI, nil)
}

// SelectEF selects an elementary file under the current DF by its 2-byte
// file identifier, without response data. This is the form eMRTD readers use.
func SelectEF(cla Class, fid uint16) *CommandAPDU {
	return NewSelectCommand(
		cla,
		SelectEFUnderCurrentDF,
		FirstOrOnlyOccurrence,
		ReturnNoData,
		[]byte{byte(fid >> 8), byte(fid)},
	)
}
