package pdftext

import (
	"context"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/arrowedisgaming/dhconverter/internal/errors"
)

// Default page geometry (US letter) used when a page carries no MediaBox.
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// Client extracts positioned text using the ledongthuc/pdf text layer reader.
type Client struct{}

// NewClient creates a new PDF text extraction client.
func NewClient() *Client {
	return &Client{}
}

// ExtractPages reads every page of the document and returns its text runs
// merged into word-level fragments with top-left origin coordinates.
func (c *Client) ExtractPages(ctx context.Context, path string) (pages []Page, err error) {
	// The underlying reader panics on malformed xref tables; convert
	// that to a regular error so one bad document cannot kill a batch.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = errors.Internalf("pdf reader panic on %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open pdf %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	total := reader.NumPage()
	pages = make([]Page, 0, total)

	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "extraction canceled")
		}

		p := reader.Page(num)
		if p.V.IsNull() {
			continue
		}

		width, height := pageSize(p)
		pages = append(pages, Page{
			Number:    num,
			Width:     width,
			Height:    height,
			Fragments: mergeRuns(collectRuns(p, height)),
		})
	}

	return pages, nil
}

// rawRun is one text run straight from the content stream, already
// converted to top-left origin.
type rawRun struct {
	text     string
	x        float64
	top      float64
	width    float64
	fontSize float64
}

func (r rawRun) fragment() Fragment {
	return Fragment{Text: r.text, X: r.x, Top: r.top}
}

func collectRuns(p pdf.Page, height float64) []rawRun {
	var runs []rawRun
	for _, run := range p.Content().Text {
		if run.S == "" {
			continue
		}
		runs = append(runs, rawRun{
			text:     run.S,
			x:        run.X,
			top:      height - run.Y,
			width:    run.W,
			fontSize: run.FontSize,
		})
	}
	return runs
}

// mergeRuns joins adjacent glyph runs on the same baseline into word-level
// fragments. Content streams frequently emit one run per glyph; column
// detection needs word units, not glyphs.
func mergeRuns(runs []rawRun) []Fragment {
	if len(runs) == 0 {
		return nil
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if !sameBaseline(runs[i].top, runs[j].top) {
			return runs[i].top < runs[j].top
		}
		return runs[i].x < runs[j].x
	})

	fragments := make([]Fragment, 0, len(runs))
	current := runs[0]

	for _, run := range runs[1:] {
		if sameBaseline(current.top, run.top) && joinable(current, run) {
			current.text += run.text
			current.width = run.x + run.width - current.x
			continue
		}
		fragments = append(fragments, current.fragment())
		current = run
	}
	fragments = append(fragments, current.fragment())

	return fragments
}

// Baseline tolerance in points.
const baselineTolerance = 2.0

func sameBaseline(a, b float64) bool {
	d := a - b
	return d < baselineTolerance && d > -baselineTolerance
}

// joinable reports whether the gap between two runs is small enough to be
// word-internal kerning rather than a word or column boundary.
func joinable(cur, next rawRun) bool {
	gap := next.x - (cur.x + cur.width)
	threshold := cur.fontSize * 0.3
	if threshold <= 0 {
		threshold = 1.0
	}
	return gap <= threshold
}

func pageSize(p pdf.Page) (width, height float64) {
	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return defaultPageWidth, defaultPageHeight
	}

	llx := box.Index(0).Float64()
	lly := box.Index(1).Float64()
	urx := box.Index(2).Float64()
	ury := box.Index(3).Float64()

	width = urx - llx
	height = ury - lly
	if width <= 0 || height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return width, height
}

var _ Extractor = (*Client)(nil)
