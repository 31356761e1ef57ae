// Package main is the adboard command.
package main

import (
	"os"

	"github.com/leapstack-labs/adboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
