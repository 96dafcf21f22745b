// ABOUTME: Entry point for the petcare CLI
// ABOUTME: Command-line and terminal UI client for the pet-care service

package main

import (
	"fmt"
	"os"

	"github.com/markalston/petcare-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
