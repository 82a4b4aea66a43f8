// Package entities implements the canonical adversary record model.
// NOTE: These are data-only structs plus their field-level parse/format
// rules. Extraction from source documents lives in internal/parsers.
package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Adversary represents one canonical stat-block record.
//
// Optional integer fields are pointers; nil means the field was absent in
// the source, which is not a parse error. Optional string fields use the
// empty string as the absent value.
type Adversary struct {
	// Name is the only required field. Display casing is normalized to
	// uppercase on output, not here.
	Name string

	Tier *int
	// AdversaryType is an open vocabulary (Minion, Horde, Leader, Solo,
	// Environment, ...). New sources introduce new types, so this is a
	// plain string, never a closed enumeration. Horde multiplier
	// parentheticals like "Horde (3/HP)" are kept verbatim.
	AdversaryType string

	Description    string
	MotivesTactics string

	Difficulty     *int
	ThresholdMinor *int
	ThresholdMajor *int
	// ThresholdsNone records the literal "None" thresholds value used by
	// Minion stat blocks, distinct from thresholds simply missing.
	ThresholdsNone bool
	HP             *int
	Stress         *int

	Attack     *Attack
	Experience string

	// Features preserve document order; order is meaningful.
	Features []Feature

	// Source attribution, populated by the attributor (or a trailing
	// Source line in already-attributed input). SourcePage is 1-based;
	// zero means absent.
	SourceName string
	SourcePage int
}

// TierLine returns the tier/type line like "Tier 2 Ranged".
func (a *Adversary) TierLine() string {
	parts := make([]string, 0, 2)
	if a.Tier != nil {
		parts = append(parts, fmt.Sprintf("Tier %d", *a.Tier))
	}
	if a.AdversaryType != "" {
		parts = append(parts, a.AdversaryType)
	}
	return strings.Join(parts, " ")
}

// ThresholdsString returns thresholds as a "minor/major" string, the
// literal "None", or "" when absent.
func (a *Adversary) ThresholdsString() string {
	switch {
	case a.ThresholdsNone:
		return "None"
	case a.ThresholdMinor != nil && a.ThresholdMajor != nil:
		return fmt.Sprintf("%d/%d", *a.ThresholdMinor, *a.ThresholdMajor)
	case a.ThresholdMinor != nil:
		return fmt.Sprintf("%d/", *a.ThresholdMinor)
	case a.ThresholdMajor != nil:
		return fmt.Sprintf("/%d", *a.ThresholdMajor)
	default:
		return ""
	}
}

// IsEnvironment reports whether this record is an environment stat block.
// Environments legitimately carry no HP, Stress, or thresholds.
func (a *Adversary) IsEnvironment() bool {
	return strings.Contains(strings.ToLower(a.AdversaryType), "environment")
}

// HasCombatStats reports whether any combat stat is present.
func (a *Adversary) HasCombatStats() bool {
	return a.HP != nil || a.Stress != nil ||
		a.ThresholdMinor != nil || a.ThresholdMajor != nil || a.ThresholdsNone
}

var (
	unsafeFilenameRe = regexp.MustCompile(`[^\w\s-]`)
	tierLineRe       = regexp.MustCompile(`(?i)Tier\s+(\d+)\s+(.+)`)
)

// SafeFilename derives an output filename stem from the adversary name.
func (a *Adversary) SafeFilename() string {
	if a.Name == "" {
		return "unknown"
	}
	safe := unsafeFilenameRe.ReplaceAllString(a.Name, "")
	return strings.Join(strings.Fields(safe), " ")
}

// ParseTierLine parses "Tier 2 Horde (3/HP)" style text into tier number
// and type, keeping any parenthetical verbatim in the type.
func ParseTierLine(text string) (tier int, adversaryType string, ok bool) {
	match := tierLineRe.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, "", false
	}
	tier, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, "", false
	}
	return tier, strings.TrimSpace(match[2]), true
}

// IntPtr returns a pointer to v. Convenience for building records.
func IntPtr(v int) *int {
	return &v
}
