package main

import (
	"os"

	"github.com/spechtlabs/ecsview/internal/cli/cmd"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

func main() {
	cmdRoot := cmd.NewServerRootCmd()

	cmdRoot.AddCommand(serveCmd)
	cmdRoot.AddCommand(seedCmd)

	if err := cmdRoot.Execute(); err != nil {
		pretty_print.PrintError(err)
		os.Exit(1)
	}
}
