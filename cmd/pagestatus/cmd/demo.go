package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/tui"
	"github.com/go-drift/pagestatus/pkg/graphics"
)

var flagTick time.Duration

func init() {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Interactive tour of the layouts a status region can live in",
		Long: `Start an interactive demo with one pane per container type: a linear
list, a frame, a constraint layout and a coordinator. Each pane switches
one region between its statuses.

Logs are discarded unless --log-file is given, since the demo owns the
terminal.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}
	demoCmd.Flags().DurationVar(&flagTick, "tick", 0, "Advance every pane at this interval (default: demo.tick from pagestatus.yaml)")
	RegisterCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	tick := resolved.Tick
	if cmd.Flags().Changed("tick") {
		tick = flagTick
	}

	demoLogger := logger
	if flagLogFile == "" {
		demoLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return tui.Run(tui.Options{
		Size:   graphics.Size{Width: resolved.Width, Height: resolved.Height},
		Tick:   tick,
		Logger: demoLogger,
	})
}
