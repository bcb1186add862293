package cmd

import (
	"fmt"

	"github.com/gregLibert/emrtd/pkg/iso7816"
	"github.com/gregLibert/emrtd/pkg/lds"
	"github.com/spf13/cobra"
)

var derOutput bool

var efdirCmd = &cobra.Command{
	Use:   "efdir",
	Short: "Read EF.DIR from the card and print it as an EFDIRInfo",
	Args:  cobra.NoArgs,
	RunE:  runEFDIR,
}

var readersCmd = &cobra.Command{
	Use:   "readers",
	Short: "List the PC/SC readers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		readers, err := listReaders()
		if err != nil {
			return err
		}
		for i, r := range readers {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i, r)
		}
		return nil
	},
}

func init() {
	efdirCmd.Flags().BoolVar(&derOutput, "der", false, "Print only the DER encoding, in hex")
	rootCmd.AddCommand(efdirCmd, readersCmd)
}

func runEFDIR(cmd *cobra.Command, args []string) error {
	cls, err := commandClass()
	if err != nil {
		return err
	}

	s, err := connect(readerIndex)
	if err != nil {
		return err
	}
	defer s.Close()

	client := iso7816.NewClient(s.card).WithLogger(log.WithField("reader", s.reader))
	info, err := lds.ReadEFDIR(client, cls)
	if err != nil {
		return err
	}

	if found, err := info.HasApplication([]byte(lds.AIDLDS1)); err != nil {
		log.WithError(err).Warn("EF.DIR content is not a list of application templates")
	} else {
		log.WithField("lds1", found).Info("EF.DIR read")
	}
	return printSecurityInfo(cmd, info)
}

// printSecurityInfo writes the DER hex with --der, the record report otherwise.
func printSecurityInfo(cmd *cobra.Command, info lds.SecurityInfo) error {
	der, err := info.DERObject()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if derOutput {
		fmt.Fprintf(out, "%X\n", der)
		return nil
	}

	if d, ok := info.(interface{ Describe() string }); ok {
		fmt.Fprintln(out, d.Describe())
	} else {
		fmt.Fprintf(out, "%s (%s)\n", info.ProtocolOIDString(), info.ObjectIdentifier())
	}
	fmt.Fprintf(out, "    - DER: %X\n", der)
	return nil
}
