package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arrowedisgaming/dhconverter/internal/attribution"
	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/orchestrators/conversion"
	"github.com/arrowedisgaming/dhconverter/internal/validation"
	"github.com/arrowedisgaming/dhconverter/internal/writers/beastvault"
	"github.com/arrowedisgaming/dhconverter/internal/writers/index"
	mdwriter "github.com/arrowedisgaming/dhconverter/internal/writers/markdown"
)

var (
	convertOutputDir  string
	convertSourcesDir string
	convertSourceMap  string
	convertList       bool
	convertReport     bool
	convertIndex      bool
	convertOverwrite  bool
	convertBeastVault string
	convertQuiet      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <source-file>",
	Short: "Convert a PDF or markdown source into standardized files",
	Long: `Convert extracts every adversary stat block from one source file
and writes one standardized markdown file per adversary. Partial parse
failures are reported and skipped; the command only fails when nothing
converts at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutputDir, "output", "o", "converted", "output directory")
	convertCmd.Flags().StringVar(&convertSourcesDir, "sources", "", "directory of source documents for attribution")
	convertCmd.Flags().StringVar(&convertSourceMap, "source-map", "", "YAML file mapping source file names to display names")
	convertCmd.Flags().BoolVar(&convertList, "list", false, "list converted adversaries without writing files")
	convertCmd.Flags().BoolVar(&convertReport, "report", false, "write a validation report")
	convertCmd.Flags().BoolVar(&convertIndex, "index", false, "write master and by-type index files")
	convertCmd.Flags().BoolVar(&convertOverwrite, "overwrite", false, "replace existing output files instead of suffixing")
	convertCmd.Flags().StringVar(&convertBeastVault, "beastvault", "", "also write a BeastVault JSON file")
	convertCmd.Flags().Lookup("beastvault").NoOptDefVal = "beastvault.json"
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "only log warnings")
}

func runConvert(cmd *cobra.Command, args []string) error {
	setupLogging(convertQuiet)
	ctx := context.Background()

	orch, err := buildOrchestrator(convertSourcesDir, convertSourceMap)
	if err != nil {
		return err
	}

	output, err := orch.ConvertSource(ctx, &conversion.ConvertSourceInput{
		Path:      args[0],
		Attribute: convertSourcesDir != "",
	})
	if err != nil {
		return err
	}

	for _, failure := range output.Failures {
		if failure.Page > 0 {
			fmt.Fprintf(os.Stderr, "warning: skipped block on page %d: %v\n", failure.Page, failure.Err)
		} else {
			fmt.Fprintf(os.Stderr, "warning: skipped block: %v\n", failure.Err)
		}
	}

	if len(output.Records) == 0 {
		return errors.EmptySourcef("no adversaries converted from %q", args[0])
	}

	if convertList {
		printList(output.Records)
		return nil
	}

	writer, err := mdwriter.NewWriter(&mdwriter.Config{
		OutputDir: convertOutputDir,
		Overwrite: convertOverwrite,
	})
	if err != nil {
		return err
	}

	for _, adv := range output.Records {
		path, err := writer.Write(adv)
		if err != nil {
			return err
		}
		if !convertQuiet {
			fmt.Printf("wrote %s\n", path)
		}
	}

	if convertBeastVault != "" {
		path := filepath.Join(convertOutputDir, convertBeastVault)
		if err := beastvault.NewWriter().WriteFile(path, output.Records); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	if convertIndex {
		if err := writeIndexes(convertOutputDir, output.Records); err != nil {
			return err
		}
	}

	if convertReport {
		path := filepath.Join(convertOutputDir, "Validation Report.md")
		report := validation.RenderReport(output.Records)
		if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
			return errors.Wrapf(err, "writing %q", path)
		}
		fmt.Printf("wrote %s\n", path)
	}

	fmt.Printf("converted %d adversaries (%d blocks skipped)\n",
		len(output.Records), len(output.Failures))
	return nil
}

// buildOrchestrator wires the PDF client and, when a sources directory is
// given, the attribution finder.
func buildOrchestrator(sourcesDir, sourceMapPath string) (*conversion.Orchestrator, error) {
	extractor := pdftext.NewClient()

	sources, err := attribution.LoadSourceMap(sourceMapPath)
	if err != nil {
		return nil, err
	}

	cfg := &conversion.Config{Extractor: extractor, Sources: sources}
	if sourcesDir != "" {
		finder, err := attribution.New(&attribution.Config{
			SourcesDir:    sourcesDir,
			Extractor:     extractor,
			SourceMapPath: sourceMapPath,
		})
		if err != nil {
			return nil, err
		}
		cfg.Finder = finder
	}

	return conversion.New(cfg)
}

func printList(records []*entities.Adversary) {
	for _, adv := range records {
		line := adv.Name
		if tierLine := adv.TierLine(); tierLine != "" {
			line += " (" + tierLine + ")"
		}
		if issues := validation.Validate(adv); len(issues) > 0 {
			line += fmt.Sprintf(" [%d issues]", len(issues))
		}
		fmt.Println(line)
	}
	fmt.Printf("%d adversaries\n", len(records))
}

func writeIndexes(dir string, records []*entities.Adversary) error {
	master := filepath.Join(dir, "Adversary Index.md")
	if err := os.WriteFile(master, []byte(index.RenderMaster(records)), 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", master)
	}
	fmt.Printf("wrote %s\n", master)

	byType := filepath.Join(dir, "Adversaries by Type.md")
	if err := os.WriteFile(byType, []byte(index.RenderByType(records)), 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", byType)
	}
	fmt.Printf("wrote %s\n", byType)
	return nil
}
