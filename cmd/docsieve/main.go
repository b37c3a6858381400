// Package main is the entry point for the docsieve CLI.
package main

import (
	"os"

	"github.com/docsieve/docsieve/cmd/docsieve/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
