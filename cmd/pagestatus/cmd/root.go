// Package cmd implements the pagestatus CLI commands.
//
// Every command registers itself with the root command from an init
// function; the root resolves pagestatus.yaml and configures logging before
// any of them runs.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/config"
	"github.com/go-drift/pagestatus/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagVerbose bool
	flagDir     string
	flagLogFile string
)

var (
	resolved *config.Resolved
	logger   = slog.Default()
	logClose func() error
)

var rootCmd = &cobra.Command{
	Use:   "pagestatus",
	Short: "pagestatus - switch page regions between loading, content, empty and error",
	Long: `pagestatus plays scenarios that switch a region of a view tree between
named statuses, replacing the region's content in place.

Run "pagestatus demo" for an interactive tour, or "pagestatus render" to
print the tree after every step of a scenario file.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd.ErrOrStderr()); err != nil {
			return err
		}

		dir := flagDir
		if dir == "" {
			root, err := config.FindProjectRoot()
			if err != nil {
				return err
			}
			dir = root
		}
		cfg, err := config.Resolve(dir)
		if err != nil {
			return err
		}
		resolved = cfg
		logger.Debug("configuration resolved", "root", cfg.Root, "module", cfg.ModulePath, "scenarios", cfg.Scenarios)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logClose != nil {
			return logClose()
		}
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("pagestatus version %s (built %s)\n", Version, BuildTime))
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level, with stack traces for panics")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Project directory (default: nearest directory with pagestatus.yaml or go.mod)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a file instead of stderr")
}

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(stderr io.Writer) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}

	w := stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		logClose = f.Close
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: flagVerbose})
	return nil
}
