package entities

import (
	"regexp"
	"strings"
)

// Known feature type keywords. FeatureType remains an open string; this
// set is used for parsing anchors and reporting hints only.
const (
	FeatureTypePassive   = "Passive"
	FeatureTypeAction    = "Action"
	FeatureTypeReaction  = "Reaction"
	FeatureTypeEvolution = "Evolution"
)

// Feature represents one adversary feature/ability. Name may be empty for
// malformed input; parsers must tolerate that rather than fail.
type Feature struct {
	Name        string
	FeatureType string
	// Description has internal hard line breaks already joined with
	// single spaces.
	Description string
}

// Feature header dialects, tried in priority order:
//
//	***Name - Type:*** Description   (standardized, colon inside emphasis)
//	**Name - Type:** Description
//	*Name - Type*: Description       (community, colon outside emphasis)
var featureHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)^\*{3}([^*]+?)\s*-\s*([^*:]+?):\*{3}\s*(.*)`),
	regexp.MustCompile(`(?s)^\*{2}([^*]+?)\s*-\s*([^*:]+?):\*{2}\s*(.*)`),
	regexp.MustCompile(`(?s)^\*([^*]+?)\s*-\s*([^*:]+?)\*:\s*(.*)`),
}

// ParseFeature parses a feature entry from markdown text. Returns false
// when the text matches no known header dialect.
func ParseFeature(text string) (Feature, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Feature{}, false
	}

	for _, re := range featureHeaderPatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		return Feature{
			Name:        strings.TrimSpace(match[1]),
			FeatureType: strings.TrimSpace(match[2]),
			Description: joinLines(match[3]),
		}, true
	}

	return Feature{}, false
}

// Markdown renders the feature in the standardized format.
func (f Feature) Markdown() string {
	return "***" + f.Name + " - " + f.FeatureType + ":*** " + f.Description
}

// joinLines collapses internal hard line breaks to single spaces.
func joinLines(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
