// Package main is the entry point for decctl, the command-line front of the
// decpipe execution harness. It runs external pipeline tools with timeout
// and process-tree guarantees, measures them, and inspects static archives.
package main

import (
	"os"

	"decpipe/cmd/decctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
