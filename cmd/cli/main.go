package main

import (
	"fmt"
	"os"

	"github.com/de-tools/ga-atlas/pkg/runtime/terminal"
	"github.com/de-tools/ga-atlas/pkg/services/account"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Factory: account.DefaultExplorerFactory,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
