// Package block turns one raw adversary text block into a canonical record.
//
// Blocks come from the PDF extractor (plain linearized text) or the
// markdown extractor (one of two markdown dialects). Every field except the
// name is optional: a missing field becomes the explicit absent value,
// never a parse error.
package block

import (
	"regexp"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/textnorm"
)

// Dialect identifies the textual convention a block was written in. It is
// a hint: the field extractors tolerate any dialect appearing, since mixed
// documents occur in practice.
type Dialect int

// Known dialects
const (
	DialectUnknown Dialect = iota
	// DialectPDF is plain text linearized from PDF page geometry.
	DialectPDF
	// DialectStandardized is the standardized markdown format: blockquote
	// stat lines and triple-emphasis feature headers.
	DialectStandardized
	// DialectCommunity is the community (Menagerie) markdown format:
	// single-emphasis feature headers and inline bold stat lines.
	DialectCommunity
)

// String returns a human-readable dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectPDF:
		return "pdf"
	case DialectStandardized:
		return "standardized"
	case DialectCommunity:
		return "community"
	default:
		return "unknown"
	}
}

// Raw is one segmented block prior to structured parsing.
type Raw struct {
	Text string
	// Page is the 1-based page the block starts on for PDF-derived
	// blocks, zero otherwise.
	Page    int
	Dialect Dialect
}

var (
	nameHeaderRe = regexp.MustCompile(`^#\s+(.+)$`)
	tierBareRe   = regexp.MustCompile(`(?i)^Tier\s+\d+`)
	allCapsRe    = regexp.MustCompile(`^[A-Z][A-Z\s,:]+$`)

	difficultyRe = regexp.MustCompile(`(?i)Difficulty[:\s]+(\d+)`)
	thresholdsRe = regexp.MustCompile(`(?i)Thresholds?[:\s]+(None|\d+\s*/\s*\d+)`)
	minorMajorRe = regexp.MustCompile(`(?i)Minor[:\s]+(\d+).*Major[:\s]+(\d+)`)
	hpRe         = regexp.MustCompile(`(?i)\bHP[:\s]+(\d+)`)
	stressRe     = regexp.MustCompile(`(?i)\bStress[:\s]+(\d+)`)
	attackLineRe = regexp.MustCompile(`(?i)^(?:ATK|Attack):\s*(.+)`)
	experienceRe = regexp.MustCompile(`(?i)^Experience[:\s]+(.+)`)

	// Environments list "Impulses" where adversaries list motives; both
	// land in the same record field.
	motivesRe = regexp.MustCompile(`(?i)(?:Motives\s*(?:&|and)\s*Tactics|Impulses):?\s*(.*)`)

	sourceLineRe   = regexp.MustCompile(`\*Source:\s*([^,*]+?)(?:,\s*p\.\s*(\d+))?\*`)
	bareSourceRe   = regexp.MustCompile(`(?i)^Source:\s*([^,]+?)(?:,\s*p\.\s*(\d+))?\s*$`)
	featuresHeadRe = regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?\*{0,3}FEATURES\*{0,3}:?\s*$`)
)

// Parse turns one raw block into a canonical record. A block that yields no
// non-empty name is a hard error for that block (CodeParseFailure); all
// other fields are optional.
func Parse(raw Raw) (*entities.Adversary, error) {
	lines := strings.Split(raw.Text, "\n")

	adv := &entities.Adversary{}
	adv.Name = extractName(lines)
	if adv.Name == "" {
		return nil, errors.ParseFailure("block has no name line").
			WithMeta("dialect", raw.Dialect.String())
	}

	featuresStart := findFeaturesStart(lines)
	body := lines
	if featuresStart >= 0 {
		body = lines[:featuresStart]
	}

	parseTier(adv, body)
	parseStats(adv, body)
	parseMotives(adv, body)
	parseDescription(adv, body, raw.Dialect)

	if featuresStart >= 0 {
		adv.Features = parseFeatures(lines[featuresStart+1:])
	}

	parseSourceLine(adv, lines)

	return adv, nil
}

// extractName returns the block's name line. A name line ending in a colon
// is merged with the following line to support multi-line names like
// "DRAGON LICH:" / "DECAY-BRINGER".
func extractName(lines []string) string {
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if m := nameHeaderRe.FindStringSubmatch(stripped); m != nil {
			stripped = strings.TrimSpace(m[1])
		}

		if strings.HasSuffix(stripped, ":") && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && !tierBareRe.MatchString(next) {
				return stripped + " " + next
			}
		}
		return stripped
	}
	return ""
}

func parseTier(adv *entities.Adversary, lines []string) {
	for _, line := range lines {
		stripped := stripMarkers(line)
		if !tierBareRe.MatchString(stripped) {
			continue
		}
		if tier, advType, ok := entities.ParseTierLine(stripped); ok {
			adv.Tier = entities.IntPtr(tier)
			adv.AdversaryType = advType
		} else {
			// "Tier N" with no type still records the tier.
			if n, ok := extractTierNumber(stripped); ok {
				adv.Tier = entities.IntPtr(n)
			}
		}
		return
	}
}

var tierNumberRe = regexp.MustCompile(`(?i)^Tier\s+(\d+)`)

func extractTierNumber(s string) (int, bool) {
	m := tierNumberRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n := 0
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return n, true
}

// parseStats extracts the recognized stat keys independently. A stats line
// with only some keys present is valid; each key is matched on its own so
// partial lines and dialect differences fall out naturally.
func parseStats(adv *entities.Adversary, lines []string) {
	for _, line := range lines {
		stripped := stripMarkers(line)
		if stripped == "" {
			continue
		}

		if adv.Difficulty == nil {
			if m := difficultyRe.FindStringSubmatch(stripped); m != nil {
				if n, ok := textnorm.ExtractNumber(m[1]); ok {
					adv.Difficulty = entities.IntPtr(n)
				}
			}
		}

		if adv.ThresholdMinor == nil && adv.ThresholdMajor == nil && !adv.ThresholdsNone {
			if m := thresholdsRe.FindStringSubmatch(stripped); m != nil {
				if strings.EqualFold(m[1], "None") {
					adv.ThresholdsNone = true
				} else if minor, major, ok := textnorm.ExtractThresholds(m[1]); ok {
					adv.ThresholdMinor = entities.IntPtr(minor)
					adv.ThresholdMajor = entities.IntPtr(major)
				}
			} else if m := minorMajorRe.FindStringSubmatch(stripped); m != nil {
				minor, _ := textnorm.ExtractNumber(m[1])
				major, _ := textnorm.ExtractNumber(m[2])
				adv.ThresholdMinor = entities.IntPtr(minor)
				adv.ThresholdMajor = entities.IntPtr(major)
			}
		}

		if adv.HP == nil {
			if m := hpRe.FindStringSubmatch(stripped); m != nil {
				if n, ok := textnorm.ExtractNumber(m[1]); ok {
					adv.HP = entities.IntPtr(n)
				}
			}
		}

		if adv.Stress == nil {
			if m := stressRe.FindStringSubmatch(stripped); m != nil {
				if n, ok := textnorm.ExtractNumber(m[1]); ok {
					adv.Stress = entities.IntPtr(n)
				}
			}
		}

		if adv.Attack == nil {
			if m := attackLineRe.FindStringSubmatch(stripped); m != nil {
				attack := entities.ParseAttack(m[1])
				if !attack.IsEmpty() {
					attack.Damage = normalizeDamage(attack.Damage)
					adv.Attack = attack
				}
			}
		}

		if adv.Experience == "" {
			if m := experienceRe.FindStringSubmatch(stripped); m != nil {
				adv.Experience = strings.TrimSpace(m[1])
			}
		}
	}
}

func parseMotives(adv *entities.Adversary, lines []string) {
	for i, line := range lines {
		stripped := stripMarkers(line)
		m := motivesRe.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}

		parts := []string{strings.TrimSpace(m[1])}
		// Motives text may wrap onto following lines in PDF-derived
		// blocks; stop at a blank line or the next recognized field.
		for j := i + 1; j < len(lines); j++ {
			next := stripMarkers(lines[j])
			if next == "" || isFieldLine(next) {
				break
			}
			parts = append(parts, next)
		}

		adv.MotivesTactics = strings.TrimSpace(strings.Join(parts, " "))
		return
	}
}

// parseDescription collects flavor text between the tier line and the
// first recognized field. PDF-derived blocks get line-break hyphens
// rejoined upstream, so here descriptions only need space joining.
func parseDescription(adv *entities.Adversary, lines []string, dialect Dialect) {
	inDescription := false
	var descLines []string

	nameParts := nameLineSet(adv.Name)

	for _, line := range lines {
		stripped := stripMarkers(line)

		if tierBareRe.MatchString(stripped) {
			inDescription = true
			continue
		}
		if !inDescription {
			continue
		}
		if stripped == "" {
			continue
		}
		if isFieldLine(stripped) || motivesRe.MatchString(stripped) {
			break
		}
		if allCapsRe.MatchString(stripped) && dialect == DialectPDF {
			continue
		}
		if _, isName := nameParts[stripped]; isName {
			continue
		}
		descLines = append(descLines, stripped)
	}

	if len(descLines) > 0 {
		adv.Description = strings.Join(descLines, " ")
	}
}

// nameLineSet builds the set of raw lines that render the record's name,
// including the pieces of a multi-line name, so description collection can
// skip them.
func nameLineSet(name string) map[string]struct{} {
	set := map[string]struct{}{name: {}}
	if first, rest, found := strings.Cut(name, ": "); found {
		set[first+":"] = struct{}{}
		set[first] = struct{}{}
		set[rest] = struct{}{}
	}
	return set
}

// isFieldLine reports whether a marker-stripped line begins a recognized
// stat or combat field.
func isFieldLine(s string) bool {
	return difficultyRe.MatchString(s) ||
		attackLineRe.MatchString(s) ||
		experienceRe.MatchString(s) ||
		hpRe.MatchString(s) ||
		featuresHeadRe.MatchString(s)
}

func findFeaturesStart(lines []string) int {
	for i, line := range lines {
		if featuresHeadRe.MatchString(strings.TrimSpace(line)) {
			return i
		}
	}
	return -1
}

// Feature header line starts, one per dialect. The colon after the type is
// required: without that anchor the type pattern can match too little of a
// description that happens to start with a capitalized word.
var featureStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\*{3}[^*]+?\s*-\s*[^*:]+?:\*{3}`),
	regexp.MustCompile(`^\*{2}[^*]+?\s*-\s*[^*:]+?:\*{2}`),
	regexp.MustCompile(`^\*[^*]+?\s*-\s*[^*:]+?\*:`),
}

// Plain-text feature headers (PDF blocks): "Name - Type:" where Type is a
// known feature keyword. The known set anchors parsing only; feature types
// remain open strings on the record.
var pdfFeatureRe = regexp.MustCompile(
	`([\w][\w\s()'"]*?)\s*-\s*(Passive|Action|Reaction|Evolution):\s*`)

func parseFeatures(lines []string) []entities.Feature {
	section := trimFeatureSection(lines)
	if len(section) == 0 {
		return nil
	}

	if hasEmphasisHeaders(section) {
		return parseMarkdownFeatures(section)
	}
	return parsePDFFeatures(strings.Join(section, " "))
}

// trimFeatureSection drops trailing horizontal rules and source lines.
func trimFeatureSection(lines []string) []string {
	var section []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "---" || sourceLineRe.MatchString(stripped) {
			break
		}
		section = append(section, line)
	}
	return section
}

func hasEmphasisHeaders(lines []string) bool {
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		for _, re := range featureStartPatterns {
			if re.MatchString(stripped) {
				return true
			}
		}
	}
	return false
}

func parseMarkdownFeatures(lines []string) []entities.Feature {
	var features []entities.Feature
	var chunk []string

	flush := func() {
		if len(chunk) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(chunk, "\n"))
		chunk = nil
		if feature, ok := entities.ParseFeature(text); ok {
			features = append(features, feature)
		}
	}

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if isFeatureStart(stripped) {
			flush()
		}
		if stripped != "" || len(chunk) > 0 {
			chunk = append(chunk, line)
		}
	}
	flush()

	return features
}

func isFeatureStart(s string) bool {
	for _, re := range featureStartPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

var leadingNonAlphaRe = regexp.MustCompile(`^[^A-Za-z]+`)

// parsePDFFeatures parses features from flattened PDF text using the
// colon-anchored "Name - Type:" pattern; each description runs until the
// next header match.
func parsePDFFeatures(text string) []entities.Feature {
	matches := pdfFeatureRe.FindAllStringSubmatchIndex(text, -1)
	features := make([]entities.Feature, 0, len(matches))

	for i, m := range matches {
		name := strings.TrimSpace(text[m[2]:m[3]])
		name = strings.TrimSpace(leadingNonAlphaRe.ReplaceAllString(name, ""))
		if name == "" {
			continue
		}

		ftype := text[m[4]:m[5]]

		descEnd := len(text)
		if i+1 < len(matches) {
			descEnd = matches[i+1][0]
		}
		desc := strings.Join(strings.Fields(text[m[1]:descEnd]), " ")

		features = append(features, entities.Feature{
			Name:        name,
			FeatureType: canonicalFeatureType(ftype),
			Description: desc,
		})
	}

	return features
}

func canonicalFeatureType(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func parseSourceLine(adv *entities.Adversary, lines []string) {
	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		m := sourceLineRe.FindStringSubmatch(stripped)
		if m == nil {
			m = bareSourceRe.FindStringSubmatch(stripped)
		}
		if m == nil {
			continue
		}

		adv.SourceName = strings.TrimSpace(m[1])
		if m[2] != "" {
			if n, ok := textnorm.ExtractNumber(m[2]); ok {
				adv.SourcePage = n
			}
		}
		return
	}
}

func stripMarkers(line string) string {
	stripped := strings.TrimSpace(line)
	stripped = strings.TrimPrefix(stripped, "> ")
	stripped = strings.TrimPrefix(stripped, ">")
	stripped = strings.ReplaceAll(stripped, "*", "")
	return strings.TrimSpace(stripped)
}

func normalizeDamage(damage string) string {
	if damage == "" {
		return damage
	}
	return textnorm.NormalizeDamageType(damage)
}
