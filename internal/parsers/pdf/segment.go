package pdf

import (
	"regexp"
	"sort"
	"strings"
)

// Adversary type keywords that anchor tier lines. Segmentation only; the
// record keeps whatever type text the block carries.
var tierLineRe = regexp.MustCompile(
	`(?i)^Tier\s+\d+\s+(?:Bruiser|Leader|Skulk|Support|Solo|Standard|Ranged|Horde|Social|Minion|Traversal|Event|Exploration)`)

var capsNameRe = regexp.MustCompile(`^[A-Z][A-Z\s,:'\-]+$`)

// Section headings that look like ALL-CAPS names but never start a block.
var reservedHeadings = map[string]struct{}{
	"FEATURES":  {},
	"ACTIONS":   {},
	"REACTIONS": {},
	"PASSIVE":   {},
	"PASSIVES":  {},
}

// segmentBlocks splits one page of linearized text into adversary blocks.
//
// A block start is found two ways: a tier line with its name on the one or
// two preceding lines (two when the name wraps and ends with a colon), or
// an ALL-CAPS line that has a tier line within the next few lines. The
// second form catches blocks whose tier line the type-keyword anchor
// missed, such as unusual type names.
func segmentBlocks(text string) []string {
	lines := strings.Split(text, "\n")

	starts := findBlockStarts(lines)
	if len(starts) == 0 {
		return nil
	}

	blocks := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		block := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func findBlockStarts(lines []string) []int {
	startSet := make(map[int]struct{})

	for i, line := range lines {
		if !tierLineRe.MatchString(strings.TrimSpace(line)) {
			continue
		}
		startSet[nameLineBefore(lines, i)] = struct{}{}
	}

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) <= 3 || !capsNameRe.MatchString(stripped) {
			continue
		}
		if _, reserved := reservedHeadings[stripped]; reserved {
			continue
		}
		if !tierLineNearby(lines, i) {
			continue
		}
		if nearExistingStart(startSet, i) {
			continue
		}
		startSet[i] = struct{}{}
	}

	starts := make([]int, 0, len(startSet))
	for i := range startSet {
		starts = append(starts, i)
	}
	sort.Ints(starts)
	return starts
}

// nameLineBefore walks back from a tier line to the start of the name,
// spanning two lines when the earlier one ends with a colon.
func nameLineBefore(lines []string, tierIdx int) int {
	if tierIdx == 0 {
		return 0
	}

	nameIdx := tierIdx
	for j := tierIdx - 1; j >= 0 && j >= tierIdx-2; j-- {
		stripped := strings.TrimSpace(lines[j])
		if stripped == "" {
			break
		}
		if nameIdx == tierIdx {
			nameIdx = j
			continue
		}
		// A second line back is part of the name only when it wraps
		// with a trailing colon.
		if strings.HasSuffix(stripped, ":") {
			nameIdx = j
		}
		break
	}
	return nameIdx
}

func tierLineNearby(lines []string, idx int) bool {
	for j := idx + 1; j < len(lines) && j <= idx+5; j++ {
		if tierLineRe.MatchString(strings.TrimSpace(lines[j])) {
			return true
		}
	}
	return false
}

func nearExistingStart(starts map[int]struct{}, idx int) bool {
	for d := -2; d <= 2; d++ {
		if _, ok := starts[idx+d]; ok {
			return true
		}
	}
	return false
}
