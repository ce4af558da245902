// Command pagestatus plays page status scenarios, interactively or as a
// scripted text rendering.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/pagestatus/cmd/pagestatus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
