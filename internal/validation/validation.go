// Package validation checks converted records for missing or suspicious
// fields. Issues are diagnostics, never errors: a record with issues still
// converts, writes, and indexes.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
)

// Inline stat text inside a feature description usually means a block
// boundary was missed, most often after an Evolution feature that
// describes a transformed stat block.
var inlineStatRe = regexp.MustCompile(`(?i)\b(?:Difficulty|HP|Stress):\s*\d`)

// Validate returns the record's issues in a stable order. Environment
// records are not flagged for missing combat stats; environments
// legitimately have none.
func Validate(adv *entities.Adversary) []string {
	var issues []string

	if adv.Name == "" {
		issues = append(issues, "missing name")
	}
	if adv.Tier == nil {
		issues = append(issues, "missing tier")
	}
	if adv.AdversaryType == "" {
		issues = append(issues, "missing type")
	}
	if adv.Difficulty == nil {
		issues = append(issues, "missing Difficulty")
	}

	if !adv.IsEnvironment() {
		if adv.ThresholdMinor == nil && adv.ThresholdMajor == nil && !adv.ThresholdsNone {
			issues = append(issues, "missing Thresholds")
		}
		if adv.HP == nil {
			issues = append(issues, "missing HP")
		}
		if adv.Stress == nil {
			issues = append(issues, "missing Stress")
		}
		if adv.Attack.IsEmpty() {
			issues = append(issues, "missing attack line")
		}
	}

	if len(adv.Features) == 0 {
		issues = append(issues, "no features parsed")
	}

	for _, feature := range adv.Features {
		if inlineStatRe.MatchString(feature.Description) {
			issues = append(issues,
				fmt.Sprintf("feature %q contains inline stat text; possible missed block boundary",
					feature.Name))
		}
	}

	return issues
}

// RenderReport formats a validation report over a set of records: clean
// and flagged counts, then per-record issue lists for the flagged ones in
// input order.
func RenderReport(advs []*entities.Adversary) string {
	type flagged struct {
		name   string
		issues []string
	}

	var problems []flagged
	for _, adv := range advs {
		if issues := Validate(adv); len(issues) > 0 {
			problems = append(problems, flagged{name: adv.Name, issues: issues})
		}
	}

	var b strings.Builder
	b.WriteString("# Validation Report\n\n")
	fmt.Fprintf(&b, "- Records: %d\n", len(advs))
	fmt.Fprintf(&b, "- Clean: %d\n", len(advs)-len(problems))
	fmt.Fprintf(&b, "- Flagged: %d\n", len(problems))

	for _, p := range problems {
		name := p.name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "\n## %s\n\n", name)
		for _, issue := range p.issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	return b.String()
}
