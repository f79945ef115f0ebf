// Package main is the entry point for the periodica CLI.
package main

import (
	"os"

	"github.com/periodica-labs/periodica/internal/cli"
)

func main() {
	err := cli.Execute()
	os.Exit(cli.ExitCode(err))
}
