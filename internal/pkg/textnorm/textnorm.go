// Package textnorm cleans raw text extracted from PDF and markdown sources.
//
// Clean is pure and idempotent: unmappable characters pass through
// unchanged and cleaning already-clean text produces no further changes.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// Standalone page numbers and "Page N" / "N of M" artifacts left by PDF extraction.
var pageNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\s*$`),
	regexp.MustCompile(`(?i)^Page\s+\d+`),
	regexp.MustCompile(`(?i)^\d+\s+of\s+\d+`),
}

// Running headers that repeat on every page of the known source PDFs.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ADVERSARIES?\s*$`),
	regexp.MustCompile(`(?i)^DAGGERHEART\s*$`),
	regexp.MustCompile(`(?i)^SRD\s*$`),
}

// Curated ligature/soft-break repairs, plus the redundant "damage" suffix
// after an already-abbreviated damage type. Only known split digraphs are
// joined, so legitimate two-word phrases are never collapsed.
var splitWordPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`Diffi\s*culty`), "Difficulty"},
	{regexp.MustCompile(`fl\s+ail`), "flail"},
	{regexp.MustCompile(`fi\s+re\b`), "fire"},
	{regexp.MustCompile(`\bphy\s+damage\b`), "phy"},
	{regexp.MustCompile(`\bmag\s+damage\b`), "mag"},
}

var charReplacer = strings.NewReplacer(
	"–", "-", // en-dash
	"—", "-", // em-dash
	"−", "-", // unicode minus
	"“", `"`, // smart quotes
	"”", `"`,
	"‘", "'",
	"’", "'",
)

var (
	interiorSpaceRe = regexp.MustCompile(`[^\S\n]+`)
	multiNewlineRe  = regexp.MustCompile(`\n{3,}`)
	controlCharRe   = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	brokenWordRe    = regexp.MustCompile(`(\w)-\n(\w)`)
)

// Clean applies all cleaning operations to text, in order: dash and quote
// normalization, ligature-split repair, page artifact removal, and
// whitespace and control-character collapse.
//
// Hyphenated line-break rejoining is NOT part of Clean: line-break hyphens
// are an artifact of justified PDF text, so only the PDF extraction path
// applies FixBrokenWords, after Clean.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.TrimPrefix(text, "\uFEFF")
	text = charReplacer.Replace(text)
	text = controlCharRe.ReplaceAllString(text, "")
	text = RemovePageArtifacts(text)
	text = fixSplitWords(text)
	text = NormalizeWhitespace(text)

	return text
}

// RemovePageArtifacts drops standalone page numbers and repeated headers.
func RemovePageArtifacts(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if matchesAny(stripped, pageNumberPatterns) {
			continue
		}
		if matchesAny(stripped, headerPatterns) {
			continue
		}

		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, "\n")
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func fixSplitWords(text string) string {
	for _, p := range splitWordPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	return text
}

// NormalizeWhitespace collapses runs of spaces while preserving line structure.
func NormalizeWhitespace(text string) string {
	text = interiorSpaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	return multiNewlineRe.ReplaceAllString(text, "\n\n")
}

// FixBrokenWords rejoins words hyphenated across a line break. Only applies
// to word-internal hyphens from justified PDF text, not list markers.
func FixBrokenWords(text string) string {
	return brokenWordRe.ReplaceAllString(text, "$1$2")
}

// DeduplicateColumns removes duplicated text segments produced when a PDF
// text layer repeats a column. Uses a sliding window over the first half of
// the text and truncates at the first repeat found in the second half.
func DeduplicateColumns(text string) string {
	const windowSize = 100

	if len(text) < windowSize*2 {
		return text
	}

	mid := len(text) / 2
	firstHalf := text[:mid]
	secondHalf := text[mid:]

	for i := 0; i+windowSize < len(firstHalf); i += windowSize / 2 {
		segment := firstHalf[i : i+windowSize]
		if dupStart := strings.Index(secondHalf, segment); dupStart != -1 {
			return strings.TrimSpace(text[:mid+dupStart])
		}
	}

	return text
}

var (
	numberRe     = regexp.MustCompile(`\d+`)
	thresholdsRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	nonAlnumRe   = regexp.MustCompile(`[^A-Z0-9\s]`)
)

// ExtractNumber returns the first integer found in text.
func ExtractNumber(text string) (int, bool) {
	match := numberRe.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractThresholds parses "minor/major" threshold notation.
func ExtractThresholds(text string) (minor, major int, ok bool) {
	match := thresholdsRe.FindStringSubmatch(text)
	if match == nil {
		return 0, 0, false
	}
	minor, _ = strconv.Atoi(match[1])
	major, _ = strconv.Atoi(match[2])
	return minor, major, true
}

// NormalizeDamageType normalizes damage type spellings to the compact
// abbreviations used by the standardized format.
func NormalizeDamageType(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	for _, r := range damageTypeReplacements {
		text = r.re.ReplaceAllString(text, r.to)
	}

	return text
}

var damageTypeReplacements = []struct {
	re *regexp.Regexp
	to string
}{
	{regexp.MustCompile(`(?i)\bphysical\b`), "phy"},
	{regexp.MustCompile(`(?i)\bmagical\b`), "mag"},
	{regexp.MustCompile(`(?i)\bmagic\b`), "mag"},
}

// SearchKey uppercases a name and strips punctuation for fuzzy matching
// during source attribution.
func SearchKey(name string) string {
	normalized := nonAlnumRe.ReplaceAllString(strings.ToUpper(name), "")
	return strings.Join(strings.Fields(normalized), " ")
}
