// Package markdown extracts adversary text blocks from markdown files.
//
// Two conventions are recognized: the standardized single-adversary file
// (one "#" title, blockquote stat lines) and community compilations that
// pack many adversaries into one file under "##" headings. Detection is by
// shape, not file name.
package markdown

import (
	"regexp"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/parsers/block"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/textnorm"
)

var (
	// Compilation section headings: "## NAME" where the name is upper
	// case. Ordinary prose headings like "## Features" stay lower case
	// and do not count.
	compilationHeadingRe = regexp.MustCompile(`^##\s+([A-Z][A-Z\s:'\-]+)\s*$`)

	titleHeadingRe = regexp.MustCompile(`^#\s+\S`)
	tierAnywhereRe = regexp.MustCompile(`(?i)\bTier\s+\d+\b`)
)

// Upper-case section headings that are structure, not adversary names.
var reservedHeadings = map[string]struct{}{
	"FEATURES":  {},
	"ACTIONS":   {},
	"REACTIONS": {},
	"PASSIVE":   {},
	"PASSIVES":  {},
}

// adversaryHeading returns the adversary name a "##" heading introduces,
// or "" when the line is not one.
func adversaryHeading(line string) string {
	m := compilationHeadingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	if _, reserved := reservedHeadings[name]; reserved {
		return ""
	}
	return name
}

// ExtractBlocks splits markdown text into raw adversary blocks and reports
// the detected dialect. Text matching neither convention is an
// unsupported-dialect error; text matching a convention but holding no
// adversary content is an empty-source error.
func ExtractBlocks(text string) ([]block.Raw, error) {
	cleaned := textnorm.Clean(text)
	if strings.TrimSpace(cleaned) == "" {
		return nil, errors.EmptySource("markdown input is empty")
	}

	lines := strings.Split(cleaned, "\n")

	if isCompilation(lines) {
		return splitCompilation(lines), nil
	}

	if !looksLikeAdversary(cleaned) {
		return nil, errors.UnsupportedDialect(
			"markdown matches no known adversary convention").
			WithMeta("first_line", firstNonEmptyLine(lines))
	}

	return []block.Raw{{
		Text:    cleaned,
		Dialect: block.DialectStandardized,
	}}, nil
}

// isCompilation reports whether the document packs multiple adversaries
// under "##" headings. A single such heading is still a compilation of
// one; standardized files never use "##" for the adversary name.
func isCompilation(lines []string) bool {
	for _, line := range lines {
		if adversaryHeading(line) != "" {
			return true
		}
	}
	return false
}

// splitCompilation cuts the document at each "## NAME" heading. The
// heading's name becomes the block's first line; preamble before the
// first heading is dropped.
func splitCompilation(lines []string) []block.Raw {
	var blocks []block.Raw
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(current, "\n"))
		current = nil
		if text != "" {
			blocks = append(blocks, block.Raw{
				Text:    text,
				Dialect: block.DialectCommunity,
			})
		}
	}

	inBlock := false
	for _, line := range lines {
		if name := adversaryHeading(line); name != "" {
			flush()
			inBlock = true
			current = append(current, name)
			continue
		}
		if inBlock {
			current = append(current, line)
		}
	}
	flush()

	return blocks
}

// looksLikeAdversary accepts a single-adversary document that carries
// either a "#" title or a tier line somewhere in the text.
func looksLikeAdversary(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if titleHeadingRe.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return tierAnywhereRe.MatchString(text)
}

func firstNonEmptyLine(lines []string) string {
	for _, line := range lines {
		if stripped := strings.TrimSpace(line); stripped != "" {
			return stripped
		}
	}
	return ""
}
