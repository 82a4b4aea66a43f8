package pdf

import (
	"math"
	"sort"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
)

const (
	// Column gaps are only considered inside the central band of the
	// page; gutters and margins produce large gaps of their own.
	centerBandStart = 0.2
	centerBandEnd   = 0.8

	// A candidate gap narrower than this fraction of page width is
	// ordinary word spacing, not a column gutter.
	minGapFraction = 0.03

	// Fragments whose tops differ by no more than this belong to the
	// same visual line.
	lineTolerance = 5.0
)

// linearizePage converts positioned fragments to reading-order text.
// Two-column pages yield the full left column before any right-column
// text; single-column pages read top to bottom.
func linearizePage(page pdftext.Page) string {
	if len(page.Fragments) == 0 {
		return ""
	}

	split, ok := detectColumnSplit(page)
	if !ok {
		return linearizeFragments(page.Fragments)
	}

	var left, right []pdftext.Fragment
	for _, f := range page.Fragments {
		if f.X < split {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}

	leftText := linearizeFragments(left)
	rightText := linearizeFragments(right)
	switch {
	case leftText == "":
		return rightText
	case rightText == "":
		return leftText
	default:
		return leftText + "\n\n" + rightText
	}
}

// detectColumnSplit finds the x coordinate of the gutter between two
// columns, if one exists: the widest horizontal gap between distinct
// fragment start positions whose midpoint falls in the central band.
func detectColumnSplit(page pdftext.Page) (float64, bool) {
	if page.Width <= 0 {
		return 0, false
	}

	seen := make(map[int]struct{})
	var xs []float64
	for _, f := range page.Fragments {
		key := int(math.Round(f.X))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		xs = append(xs, f.X)
	}
	if len(xs) < 2 {
		return 0, false
	}
	sort.Float64s(xs)

	bandLo := page.Width * centerBandStart
	bandHi := page.Width * centerBandEnd

	var bestGap, bestMid float64
	for i := 0; i < len(xs)-1; i++ {
		gap := xs[i+1] - xs[i]
		mid := (xs[i] + xs[i+1]) / 2
		if mid < bandLo || mid > bandHi {
			continue
		}
		if gap > bestGap {
			bestGap = gap
			bestMid = mid
		}
	}

	if bestGap < page.Width*minGapFraction {
		return 0, false
	}
	return bestMid, true
}

// linearizeFragments groups fragments into visual lines by vertical
// position, orders lines top to bottom and words left to right, and
// joins words with single spaces.
func linearizeFragments(frags []pdftext.Fragment) string {
	if len(frags) == 0 {
		return ""
	}

	sorted := make([]pdftext.Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	var lines [][]pdftext.Fragment
	for _, f := range sorted {
		if n := len(lines); n > 0 {
			last := lines[n-1]
			if f.Top-last[0].Top <= lineTolerance {
				lines[n-1] = append(last, f)
				continue
			}
		}
		lines = append(lines, []pdftext.Fragment{f})
	}

	var b strings.Builder
	for i, line := range lines {
		sort.SliceStable(line, func(a, bIdx int) bool {
			return line[a].X < line[bIdx].X
		})
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, f := range line {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(f.Text))
		}
	}
	return b.String()
}
