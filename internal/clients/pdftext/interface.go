// Package pdftext wraps PDF text-layer extraction behind an interface so
// the layout pipeline can be tested with synthetic fragment data.
package pdftext

import "context"

//go:generate mockgen -destination=mock/mock_extractor.go -package=pdftextmock github.com/arrowedisgaming/dhconverter/internal/clients/pdftext Extractor

// Fragment is one positioned text run on a page. Coordinates are top-left
// origin: X grows rightward, Top grows downward from the top of the page.
type Fragment struct {
	Text string
	X    float64
	Top  float64
}

// Page is the positioned text content of a single PDF page.
type Page struct {
	// Number is 1-based for human-readable citations.
	Number    int
	Width     float64
	Height    float64
	Fragments []Fragment
}

// Extractor extracts positioned text from a PDF document. Implementations
// do not perform OCR; they consume whatever text layer the PDF provides.
type Extractor interface {
	ExtractPages(ctx context.Context, path string) ([]Page, error)
}
