// Package main provides the gardenplanner binary entry point: a CLI
// that loads a catalogue, compatibility matrix and request file, runs
// one garden-layout optimization, and prints or saves the result.
//
// Grounded on C360Studio-semspec/cmd/semspec/main.go's panic-recovery
// + cobra root command + slog wiring style, and
// tphakala-birdnet-go's per-command cmd/<verb> file layout for the
// generate subcommand.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const appName = "gardenplanner"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Urban garden layout optimizer",
		Long: `gardenplanner designs an optimized urban-garden layout: given a
catalogue of candidate plant species, a species-pair compatibility
matrix, resource ceilings, and a high-level objective, it produces a
ranked set of concrete physical layouts with multi-metric quality
scores.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(logLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.AddCommand(generateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, version)
		},
	})

	return cmd
}

const version = "0.1.0"

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
