package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/gregLibert/emrtd/pkg/lds"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [hex]",
	Short: "Decode a DER SecurityInfo given in hex",
	Long:  "Decodes one DER SecurityInfo. The hex input is read from the argument, or from stdin when no argument is given. Whitespace is ignored.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&derOutput, "der", false, "Print only the DER encoding, in hex")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(raw)
	}

	der, err := hex.DecodeString(strings.Join(strings.Fields(input), ""))
	if err != nil {
		return fmt.Errorf("decoding hex: %w", err)
	}

	info, err := lds.DecodeSecurityInfo(der)
	if err != nil {
		return err
	}
	log.WithField("oid", info.ObjectIdentifier()).Debug("security info decoded")
	return printSecurityInfo(cmd, info)
}
