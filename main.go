package main

import (
	"os"

	"github.com/gregLibert/emrtd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
