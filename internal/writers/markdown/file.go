package markdown

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/idgen"
)

// Writer renders records to standardized markdown files in an output
// directory. Concurrent writers targeting different records are safe;
// each file lands via a whole-file temp-and-rename replace, so readers
// never observe a partial file.
type Writer struct {
	outputDir string
	overwrite bool
	idgen     idgen.Generator
}

// Config holds Writer construction options.
type Config struct {
	// OutputDir is the destination directory, created if missing.
	OutputDir string
	// Overwrite replaces existing files instead of suffixing new names.
	Overwrite bool
	// IDGenerator names temp files during atomic writes. Optional; a
	// prefixed generator is used when nil.
	IDGenerator idgen.Generator
}

// Validate ensures required options are present.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.OutputDir == "" {
		vb.RequiredField("OutputDir")
	}
	return vb.Build()
}

// NewWriter creates a Writer with the given configuration.
func NewWriter(cfg *Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewPrefixed("tmp")
	}

	return &Writer{
		outputDir: cfg.OutputDir,
		overwrite: cfg.Overwrite,
		idgen:     gen,
	}, nil
}

// Write renders one record and writes it, returning the path written. When
// not overwriting, a name collision gets a "Name (N).md" suffix instead of
// replacing the existing file.
func (w *Writer) Write(adv *entities.Adversary) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating output directory %q", w.outputDir)
	}

	path, err := w.targetPath(adv)
	if err != nil {
		return "", err
	}

	if err := w.writeAtomic(path, []byte(Render(adv))); err != nil {
		return "", err
	}
	return path, nil
}

// targetPath picks the output path for a record, suffixing on collision
// unless overwriting.
func (w *Writer) targetPath(adv *entities.Adversary) (string, error) {
	stem := adv.SafeFilename()
	path := filepath.Join(w.outputDir, stem+".md")
	if w.overwrite {
		return path, nil
	}

	for n := 0; ; n++ {
		candidate := path
		if n > 0 {
			candidate = filepath.Join(w.outputDir, fmt.Sprintf("%s (%d).md", stem, n))
		}
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", errors.Wrapf(err, "checking output path %q", candidate)
		}
		if n >= 100 {
			return "", errors.WriteConflictf(
				"too many existing files for %q", stem)
		}
	}
}

// writeAtomic replaces path with content via a temp file and rename, so a
// crash mid-write never leaves a truncated output file.
func (w *Writer) writeAtomic(path string, content []byte) error {
	tmp := path + "." + w.idgen.Generate()
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replacing %q", path)
	}
	return nil
}
