// Package attribution locates which source document mentions each
// converted adversary, so records can carry "Source: <name>, p. <page>"
// lines even when the block itself had none.
package attribution

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/textnorm"
)

// SourceInfo is a resolved attribution. Page is 1-based and zero for
// markdown sources, which have no meaningful page numbers.
type SourceInfo struct {
	Name string
	Page int
}

// Config holds Finder dependencies.
type Config struct {
	// SourcesDir is scanned non-recursively for candidate documents.
	SourcesDir string
	// Extractor reads PDF candidates. Required when SourcesDir holds
	// any PDFs.
	Extractor pdftext.Extractor
	// SourceMapPath optionally points at a YAML display-name map.
	SourceMapPath string
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.SourcesDir == "" {
		vb.RequiredField("SourcesDir")
	}
	return vb.Build()
}

// candidate is one source document with its searchable page keys. A
// markdown candidate has exactly one pseudo-page.
type candidate struct {
	displayName string
	isPDF       bool
	pageKeys    []string
}

// Finder searches source documents for adversary names. Candidates are
// loaded lazily on first lookup and cached; a Finder is cheap to create
// even over a directory of large PDFs that are never searched.
type Finder struct {
	sourcesDir string
	extractor  pdftext.Extractor
	sourceMap  SourceMap

	loaded     bool
	candidates []candidate
}

// New creates a Finder over a directory of source documents.
func New(cfg *Config) (*Finder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sourceMap, err := LoadSourceMap(cfg.SourceMapPath)
	if err != nil {
		return nil, err
	}

	return &Finder{
		sourcesDir: cfg.SourcesDir,
		extractor:  cfg.Extractor,
		sourceMap:  sourceMap,
	}, nil
}

// Find searches every candidate document for the adversary name as a
// whole word, case-insensitive. Candidates are searched in source-map
// priority order, unranked files after them by name, and the first match
// wins: PDFs yield their 1-based page, markdown sources yield page zero.
// A name found nowhere returns ok false; that is an absent attribution,
// not an error.
func (f *Finder) Find(ctx context.Context, name string) (SourceInfo, bool, error) {
	if strings.TrimSpace(name) == "" {
		return SourceInfo{}, false, nil
	}

	if err := f.load(ctx); err != nil {
		return SourceInfo{}, false, err
	}

	needle := wholeWordPattern(textnorm.SearchKey(name))
	if needle == nil {
		return SourceInfo{}, false, nil
	}

	for _, cand := range f.candidates {
		for i, key := range cand.pageKeys {
			if !needle.MatchString(key) {
				continue
			}
			info := SourceInfo{Name: cand.displayName}
			if cand.isPDF {
				info.Page = i + 1
			}
			return info, true, nil
		}
	}
	return SourceInfo{}, false, nil
}

// load scans the sources directory once and builds page keys for every
// readable candidate. Unreadable documents are skipped with a warning; a
// missing directory is a real error.
func (f *Finder) load(ctx context.Context) error {
	if f.loaded {
		return nil
	}

	entries, err := os.ReadDir(f.sourcesDir)
	if err != nil {
		return errors.Wrapf(err, "reading sources directory %q", f.sourcesDir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	// Ranked sources are searched first so the canonical book wins when a
	// name appears in several documents; unranked files follow by name.
	sort.Slice(names, func(i, j int) bool {
		pi, pj := f.sourceMap.Priority(names[i]), f.sourceMap.Priority(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		path := filepath.Join(f.sourcesDir, name)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			cand, err := f.loadPDF(ctx, path, name)
			if err != nil {
				slog.Warn("skipping unreadable source", "path", path, "error", err)
				continue
			}
			f.candidates = append(f.candidates, cand)
		case ".md", ".txt":
			cand, err := f.loadText(path, name)
			if err != nil {
				slog.Warn("skipping unreadable source", "path", path, "error", err)
				continue
			}
			f.candidates = append(f.candidates, cand)
		}
	}

	f.loaded = true
	return nil
}

func (f *Finder) loadPDF(ctx context.Context, path, name string) (candidate, error) {
	if f.extractor == nil {
		return candidate{}, errors.InvalidArgument("no PDF extractor configured")
	}

	pages, err := f.extractor.ExtractPages(ctx, path)
	if err != nil {
		return candidate{}, err
	}

	keys := make([]string, len(pages))
	for i, page := range pages {
		var parts []string
		for _, frag := range page.Fragments {
			parts = append(parts, frag.Text)
		}
		keys[i] = textnorm.SearchKey(strings.Join(parts, " "))
	}

	return candidate{
		displayName: f.sourceMap.DisplayName(name),
		isPDF:       true,
		pageKeys:    keys,
	}, nil
}

func (f *Finder) loadText(path, name string) (candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return candidate{}, err
	}

	return candidate{
		displayName: f.sourceMap.DisplayName(name),
		pageKeys:    []string{textnorm.SearchKey(string(data))},
	}, nil
}

// wholeWordPattern anchors a search key at word boundaries so SNAKE never
// matches GLASS SNAKEBITE HANDLER's key.
func wholeWordPattern(key string) *regexp.Regexp {
	if key == "" {
		return nil
	}
	re, err := regexp.Compile(`(^|\s)` + regexp.QuoteMeta(key) + `(\s|$)`)
	if err != nil {
		return nil
	}
	return re
}
