// Package main is the entry point for reportctl, the offline report runner.
package main

import (
	"os"

	"assetdesk/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
