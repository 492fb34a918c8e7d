// Package main is the entry point for the outlyne CLI.
package main

import (
	"os"

	"github.com/jmylchreest/outlyne/cmd/outlyne/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
