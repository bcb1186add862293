package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Hex joins hex fragments such as "00 A4 02 0C" into bytes. Whitespace is
// ignored. It panics on malformed input and is meant for fixtures.
func Hex(parts ...string) []byte {
	clean := strings.Join(strings.Fields(strings.Join(parts, " ")), "")

	data, err := hex.DecodeString(clean)
	if err != nil {
		panic(fmt.Sprintf("invalid hex fixture %q: %v", clean, err))
	}
	return data
}
