// Package main is the entry point for the cmdstub CLI tool.
package main

import (
	"os"

	"github.com/stubworks/cmdstub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
