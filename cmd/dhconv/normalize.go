package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arrowedisgaming/dhconverter/internal/orchestrators/conversion"
)

var (
	normalizeDryRun     bool
	normalizeNoBackup   bool
	normalizeAddSources bool
	normalizeSourcesDir string
	normalizeSourceMap  string
	normalizeQuiet      bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <directory>",
	Short: "Rewrite a vault of adversary files into the standardized format",
	Long: `Normalize walks a directory of markdown adversary files and rewrites
any that deviate from the standardized format. Files already in canonical
form are left untouched. Per-file failures are reported and do not stop
the walk.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeDryRun, "dry-run", false, "report changes without writing")
	normalizeCmd.Flags().BoolVar(&normalizeNoBackup, "no-backup", false, "skip .bak copies of rewritten files")
	normalizeCmd.Flags().BoolVar(&normalizeAddSources, "add-sources", false, "attribute records missing Source lines")
	normalizeCmd.Flags().StringVar(&normalizeSourcesDir, "sources", "", "directory of source documents for attribution")
	normalizeCmd.Flags().StringVar(&normalizeSourceMap, "source-map", "", "YAML file mapping source file names to display names")
	normalizeCmd.Flags().BoolVarP(&normalizeQuiet, "quiet", "q", false, "only log warnings")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	setupLogging(normalizeQuiet)
	ctx := context.Background()

	orch, err := buildOrchestrator(normalizeSourcesDir, normalizeSourceMap)
	if err != nil {
		return err
	}

	output, err := orch.NormalizeDirectory(ctx, &conversion.NormalizeDirectoryInput{
		Dir:        args[0],
		DryRun:     normalizeDryRun,
		Backup:     !normalizeNoBackup,
		AddSources: normalizeAddSources && normalizeSourcesDir != "",
	})
	if err != nil {
		return err
	}

	for _, result := range output.Results {
		if normalizeQuiet && result.Status == conversion.StatusUnchanged {
			continue
		}
		if result.Detail != "" {
			fmt.Printf("%-10s %s (%s)\n", result.Status, result.Path, result.Detail)
		} else {
			fmt.Printf("%-10s %s\n", result.Status, result.Path)
		}
	}

	fmt.Printf("\n%d normalized, %d unchanged, %d skipped, %d failed\n",
		output.Normalized, output.Unchanged, output.Skipped, output.Failed)

	if normalizeDryRun && output.Normalized > 0 {
		fmt.Println("dry run: no files were written")
	}
	return nil
}
