// Package main is the entry point for the SomniFlow CLI.
package main

import (
	"os"

	"github.com/somniflow/somniflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
