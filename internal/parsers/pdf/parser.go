// Package pdf extracts adversary text blocks from PDF sourcebooks.
//
// The pipeline per page: linearize positioned fragments into reading
// order, normalize the text, rejoin hyphenated line breaks, drop
// duplicated column text, then segment into per-adversary blocks.
package pdf

import (
	"context"
	"log/slog"

	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/parsers/block"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/textnorm"
)

// Config holds the dependencies for a Parser.
type Config struct {
	Extractor pdftext.Extractor
}

// Validate ensures all required dependencies are present.
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

// Parser turns PDF files into raw adversary blocks.
type Parser struct {
	extractor pdftext.Extractor
}

// New creates a Parser with the given configuration.
func New(cfg *Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Parser{extractor: cfg.Extractor}, nil
}

// ExtractBlocks reads the PDF at path and returns its adversary blocks in
// page order. Each block carries the 1-based page number it starts on. A
// file yielding no blocks at all is an empty-source error.
func (p *Parser) ExtractBlocks(ctx context.Context, path string) ([]block.Raw, error) {
	pages, err := p.extractor.ExtractPages(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "extracting pages from %q", path)
	}

	var blocks []block.Raw
	for _, page := range pages {
		text := linearizePage(page)
		text = textnorm.Clean(text)
		text = textnorm.FixBrokenWords(text)
		text = textnorm.DeduplicateColumns(text)

		segments := segmentBlocks(text)
		for _, segment := range segments {
			blocks = append(blocks, block.Raw{
				Text:    segment,
				Page:    page.Number,
				Dialect: block.DialectPDF,
			})
		}
		if len(segments) > 0 {
			slog.Debug("segmented pdf page",
				"path", path,
				"page", page.Number,
				"blocks", len(segments))
		}
	}

	if len(blocks) == 0 {
		return nil, errors.EmptySourcef("no adversary blocks found in %q", path).
			WithMeta("pages", len(pages))
	}

	return blocks, nil
}
