// Package conversion orchestrates the extraction pipeline: source file in,
// canonical adversary records out, plus directory normalization for vaults
// of already-converted files.
package conversion

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/attribution"
	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/parsers/block"
	mdparser "github.com/arrowedisgaming/dhconverter/internal/parsers/markdown"
	pdfparser "github.com/arrowedisgaming/dhconverter/internal/parsers/pdf"
	mdwriter "github.com/arrowedisgaming/dhconverter/internal/writers/markdown"
)

//go:generate mockgen -destination=mock/mock_service.go -package=conversionmock github.com/arrowedisgaming/dhconverter/internal/orchestrators/conversion Service

// SourceFinder resolves which source document mentions an adversary.
type SourceFinder interface {
	Find(ctx context.Context, name string) (attribution.SourceInfo, bool, error)
}

// Service is the conversion API consumed by the CLI.
type Service interface {
	ConvertSource(ctx context.Context, input *ConvertSourceInput) (*ConvertSourceOutput, error)
	NormalizeDirectory(ctx context.Context, input *NormalizeDirectoryInput) (*NormalizeDirectoryOutput, error)
}

// Config holds orchestrator dependencies.
type Config struct {
	// Extractor reads PDF sources. Required.
	Extractor pdftext.Extractor
	// Finder attributes records to source documents. Optional; when nil
	// records keep whatever Source line they parsed with.
	Finder SourceFinder
	// Sources names known source documents. Optional; defaults to the
	// built-in map.
	Sources attribution.SourceMap
}

// Validate ensures required dependencies are present.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Extractor == nil {
		vb.RequiredField("Extractor")
	}
	return vb.Build()
}

// Orchestrator implements Service.
type Orchestrator struct {
	pdfParser *pdfparser.Parser
	finder    SourceFinder
	sources   attribution.SourceMap
}

var _ Service = (*Orchestrator)(nil)

// New creates an Orchestrator with the given configuration.
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parser, err := pdfparser.New(&pdfparser.Config{Extractor: cfg.Extractor})
	if err != nil {
		return nil, err
	}

	sources := cfg.Sources
	if sources == nil {
		if sources, err = attribution.LoadSourceMap(""); err != nil {
			return nil, err
		}
	}

	return &Orchestrator{
		pdfParser: parser,
		finder:    cfg.Finder,
		sources:   sources,
	}, nil
}

// ConvertSourceInput names the source file to convert.
type ConvertSourceInput struct {
	Path string
	// Attribute runs the source finder over records that parsed without
	// a Source line.
	Attribute bool
}

// RecordFailure is one block that failed to parse. Failures are collected,
// never fatal to the document.
type RecordFailure struct {
	// Page is the 1-based source page for PDF blocks, zero otherwise.
	Page int
	Err  error
}

// ConvertSourceOutput carries the converted records and any per-block
// failures.
type ConvertSourceOutput struct {
	Records  []*entities.Adversary
	Failures []RecordFailure
}

// ConvertSource extracts, parses, and attributes every adversary block in
// one source file. The file format is chosen by extension. A document
// yielding zero blocks is an empty-source error; individual bad blocks
// only add failures.
func (o *Orchestrator) ConvertSource(ctx context.Context, input *ConvertSourceInput) (*ConvertSourceOutput, error) {
	if input == nil || input.Path == "" {
		return nil, errors.InvalidArgument("source path is required")
	}

	raws, err := o.extract(ctx, input.Path)
	if err != nil {
		return nil, err
	}

	records, failures := convertBlocks(raws)

	// PDF sourcebooks carry no Source lines; every record is stamped with
	// a name derived from the file name so the attribution always survives
	// into the rendered output.
	if strings.EqualFold(filepath.Ext(input.Path), ".pdf") {
		sourceName := o.sources.DisplayName(input.Path)
		for _, adv := range records {
			if adv.SourceName == "" {
				adv.SourceName = sourceName
			}
		}
	}

	if input.Attribute && o.finder != nil {
		if err := o.attribute(ctx, records); err != nil {
			return nil, err
		}
	}

	slog.Info("converted source",
		"path", input.Path,
		"records", len(records),
		"failures", len(failures))

	return &ConvertSourceOutput{Records: records, Failures: failures}, nil
}

func (o *Orchestrator) extract(ctx context.Context, path string) ([]block.Raw, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return o.pdfParser.ExtractBlocks(ctx, path)
	case ".md", ".markdown", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %q", path)
		}
		return mdparser.ExtractBlocks(string(data))
	default:
		return nil, errors.UnsupportedDialectf(
			"unrecognized source file type %q", filepath.Ext(path))
	}
}

// convertBlocks parses each raw block, keeping the survivors and the
// failures side by side. A parse failure in one block never affects its
// neighbors.
func convertBlocks(raws []block.Raw) ([]*entities.Adversary, []RecordFailure) {
	var records []*entities.Adversary
	var failures []RecordFailure

	for _, raw := range raws {
		adv, err := block.Parse(raw)
		if err != nil {
			failures = append(failures, RecordFailure{Page: raw.Page, Err: err})
			continue
		}
		if adv.SourcePage == 0 && raw.Page > 0 {
			adv.SourcePage = raw.Page
		}
		records = append(records, adv)
	}

	return records, failures
}

// attribute fills in Source fields for records that parsed without them.
// A name found nowhere stays unattributed.
func (o *Orchestrator) attribute(ctx context.Context, records []*entities.Adversary) error {
	for _, adv := range records {
		if adv.SourceName != "" {
			continue
		}
		info, ok, err := o.finder.Find(ctx, adv.Name)
		if err != nil {
			return errors.Wrapf(err, "attributing %q", adv.Name)
		}
		if !ok {
			continue
		}
		adv.SourceName = info.Name
		if info.Page > 0 {
			adv.SourcePage = info.Page
		}
	}
	return nil
}

// NormalizeDirectoryInput configures a vault normalization pass.
type NormalizeDirectoryInput struct {
	Dir string
	// DryRun reports what would change without writing.
	DryRun bool
	// Backup writes a .bak copy before replacing a file.
	Backup bool
	// AddSources runs attribution over records missing Source lines.
	AddSources bool
}

// FileStatus classifies one file's normalization outcome.
type FileStatus string

// Normalization outcomes
const (
	StatusNormalized FileStatus = "normalized"
	StatusUnchanged  FileStatus = "unchanged"
	StatusSkipped    FileStatus = "skipped"
	StatusFailed     FileStatus = "failed"
)

// FileResult is one file's outcome in a normalization pass.
type FileResult struct {
	Path   string
	Status FileStatus
	Detail string
}

// NormalizeDirectoryOutput summarizes a normalization pass.
type NormalizeDirectoryOutput struct {
	Results    []FileResult
	Normalized int
	Unchanged  int
	Skipped    int
	Failed     int
}

// Files that live in vaults but are never adversary records.
var skipFiles = map[string]struct{}{
	"README.md":      {},
	"index.md":       {},
	"Index.md":       {},
	"Adversaries.md": {},
}

// Directories never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	".obsidian":    {},
	"_templates":   {},
	"node_modules": {},
}

// NormalizeDirectory rewrites every adversary file under dir into the
// standardized format. Files that already match are left untouched;
// non-adversary files are skipped; a failure in one file never stops the
// walk.
func (o *Orchestrator) NormalizeDirectory(ctx context.Context, input *NormalizeDirectoryInput) (*NormalizeDirectoryOutput, error) {
	if input == nil || input.Dir == "" {
		return nil, errors.InvalidArgument("directory is required")
	}

	output := &NormalizeDirectoryOutput{}

	walkErr := filepath.WalkDir(input.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		if _, skip := skipFiles[d.Name()]; skip {
			output.add(FileResult{Path: path, Status: StatusSkipped, Detail: "reserved file name"})
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		output.add(o.normalizeFile(ctx, path, input))
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, "walking %q", input.Dir)
	}

	slog.Info("normalized directory",
		"dir", input.Dir,
		"normalized", output.Normalized,
		"unchanged", output.Unchanged,
		"skipped", output.Skipped,
		"failed", output.Failed,
		"dry_run", input.DryRun)

	return output, nil
}

func (output *NormalizeDirectoryOutput) add(result FileResult) {
	output.Results = append(output.Results, result)
	switch result.Status {
	case StatusNormalized:
		output.Normalized++
	case StatusUnchanged:
		output.Unchanged++
	case StatusSkipped:
		output.Skipped++
	case StatusFailed:
		output.Failed++
	}
}

// normalizeFile rewrites one vault file if its standardized rendering
// differs from what is on disk.
func (o *Orchestrator) normalizeFile(ctx context.Context, path string, input *NormalizeDirectoryInput) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Status: StatusFailed, Detail: err.Error()}
	}
	original := string(data)

	raws, err := mdparser.ExtractBlocks(original)
	if err != nil {
		if errors.IsUnsupportedDialect(err) || errors.IsEmptySource(err) {
			return FileResult{Path: path, Status: StatusSkipped, Detail: "not an adversary file"}
		}
		return FileResult{Path: path, Status: StatusFailed, Detail: err.Error()}
	}
	if len(raws) != 1 {
		return FileResult{Path: path, Status: StatusSkipped, Detail: "multi-record file"}
	}

	adv, err := block.Parse(raws[0])
	if err != nil {
		return FileResult{Path: path, Status: StatusFailed, Detail: err.Error()}
	}

	if input.AddSources && o.finder != nil && adv.SourceName == "" {
		if info, ok, ferr := o.finder.Find(ctx, adv.Name); ferr != nil {
			return FileResult{Path: path, Status: StatusFailed, Detail: ferr.Error()}
		} else if ok {
			adv.SourceName = info.Name
			if info.Page > 0 {
				adv.SourcePage = info.Page
			}
		}
	}

	rendered := mdwriter.Render(adv)
	if rendered == original {
		return FileResult{Path: path, Status: StatusUnchanged}
	}
	if input.DryRun {
		return FileResult{Path: path, Status: StatusNormalized, Detail: "dry run"}
	}

	if input.Backup {
		if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
			return FileResult{Path: path, Status: StatusFailed, Detail: err.Error()}
		}
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return FileResult{Path: path, Status: StatusFailed, Detail: err.Error()}
	}

	return FileResult{Path: path, Status: StatusNormalized}
}
