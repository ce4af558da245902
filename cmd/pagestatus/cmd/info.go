package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/config"
	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/templates"
)

func init() {
	RegisterCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the resolved configuration and available scenarios",
		Long: `Show the resolved project configuration.

Lists the scenario files found in the scenarios directory, whether each
one is valid, and the built-in demo scenarios.`,
		Args: cobra.NoArgs,
		RunE: runInfo,
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	module := resolved.ModulePath
	if module == "" {
		module = "-"
	}

	fmt.Fprintf(w, "Project: %s (%s)\n", resolved.Name, module)
	fmt.Fprintf(w, "Root:    %s\n", resolved.Root)
	fmt.Fprintf(w, "Window:  %gx%g\n", resolved.Width, resolved.Height)
	if resolved.Tick > 0 {
		fmt.Fprintf(w, "Tick:    %s\n", resolved.Tick)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Scenarios (%s):\n", resolved.Scenarios)
	files, err := filepath.Glob(filepath.Join(resolved.Scenarios, "*.yaml"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yaml")
		if name == strings.TrimSuffix(config.FileName, ".yaml") {
			continue
		}
		sc, err := config.LoadScenario(file)
		if err != nil {
			fmt.Fprintf(w, "  %-14s invalid  %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "  %-14s %d statuses, %d steps, %s\n", name, len(sc.Statuses), len(sc.Steps), sc.Duration())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Built-in:")
	for _, name := range templates.DemoScenarios {
		fmt.Fprintf(w, "  %s\n", name)
	}

	if _, err := os.Stat(filepath.Join(resolved.Root, config.FileName)); err != nil {
		fmt.Fprintf(w, "\nNo %s found; using defaults.\n", config.FileName)
	}
	return nil
}
