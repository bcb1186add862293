package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gregLibert/emrtd/pkg/iso7816"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	readerIndex int
	claHex      string
	verbose     bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "emrtd",
	Short: "Inspect eMRTD security records",
	Long:  "Reads EF.DIR from an e-passport through a PC/SC reader and decodes DER SecurityInfo records.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&readerIndex, "reader", "r", 0, "Index of the PC/SC reader to use")
	rootCmd.PersistentFlags().StringVar(&claHex, "cla", "00", "Class byte of the commands, in hex")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every APDU")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// commandClass parses the --cla flag.
func commandClass() (iso7816.Class, error) {
	raw, err := strconv.ParseUint(claHex, 16, 8)
	if err != nil {
		return iso7816.Class{}, fmt.Errorf("invalid --cla %q: %w", claHex, err)
	}
	return iso7816.NewClass(byte(raw))
}
