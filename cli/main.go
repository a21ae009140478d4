package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/cep78-cli/internal/cli"
	"github.com/trebuchet-org/cep78-cli/internal/cli/render"
	"github.com/trebuchet-org/cep78-cli/internal/config"
)

// Set by -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}
