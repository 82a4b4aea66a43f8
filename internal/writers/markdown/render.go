// Package markdown renders canonical adversary records into the
// standardized markdown file format and writes them to disk.
package markdown

import (
	"fmt"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
)

// Render produces the standardized markdown for one record. It is total
// over any valid record: lines whose backing field is absent are omitted
// entirely, never emitted as empty placeholders.
func Render(adv *entities.Adversary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", strings.ToUpper(adv.Name))

	var head []string
	if tierLine := adv.TierLine(); tierLine != "" {
		head = append(head, fmt.Sprintf("***%s***  ", tierLine))
	}
	if adv.Description != "" {
		head = append(head, fmt.Sprintf("*%s*  ", adv.Description))
	}
	if adv.MotivesTactics != "" {
		head = append(head, "**Motives & Tactics:** "+adv.MotivesTactics)
	}
	if len(head) > 0 {
		b.WriteString("\n" + strings.Join(head, "\n") + "\n")
	}

	var statBlock []string
	if statLine := renderStatLine(adv); statLine != "" {
		statBlock = append(statBlock, "> "+statLine)
	}
	if !adv.Attack.IsEmpty() {
		statBlock = append(statBlock, "> **ATK:** "+adv.Attack.String())
	}
	if adv.Experience != "" {
		statBlock = append(statBlock, "> **Experience:** "+adv.Experience)
	}
	if len(statBlock) > 0 {
		b.WriteString("\n" + strings.Join(statBlock, "\n") + "\n")
	}

	if len(adv.Features) > 0 {
		b.WriteString("\n## FEATURES\n")
		for _, feature := range adv.Features {
			b.WriteString("\n" + feature.Markdown() + "\n")
		}
	}

	if adv.SourceName != "" {
		b.WriteString("\n---\n\n")
		if adv.SourcePage > 0 {
			fmt.Fprintf(&b, "*Source: %s, p. %d*\n", adv.SourceName, adv.SourcePage)
		} else {
			fmt.Fprintf(&b, "*Source: %s*\n", adv.SourceName)
		}
	}

	return b.String()
}

// renderStatLine builds the pipe-delimited stat line from whichever stats
// are present. Partial lines are valid output.
func renderStatLine(adv *entities.Adversary) string {
	parts := make([]string, 0, 4)
	if adv.Difficulty != nil {
		parts = append(parts, fmt.Sprintf("**Difficulty:** %d", *adv.Difficulty))
	}
	if thresholds := adv.ThresholdsString(); thresholds != "" {
		parts = append(parts, "**Thresholds:** "+thresholds)
	}
	if adv.HP != nil {
		parts = append(parts, fmt.Sprintf("**HP:** %d", *adv.HP))
	}
	if adv.Stress != nil {
		parts = append(parts, fmt.Sprintf("**Stress:** %d", *adv.Stress))
	}
	return strings.Join(parts, " | ")
}
