// Package main is the entry point for the dhconv CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dhconv",
	Short: "Daggerheart adversary converter",
	Long: `dhconv extracts adversary stat blocks from PDF sourcebooks and
community markdown compilations, normalizes them into a canonical form,
and writes standardized markdown, BeastVault JSON, and index files.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(normalizeCmd)
}

// setupLogging routes slog to stderr so stdout stays clean for command
// output. Quiet raises the bar to warnings.
func setupLogging(quiet bool) {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
