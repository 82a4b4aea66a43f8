// Package index renders catalog documents over a set of converted
// records: a master index grouped by tier and a by-type listing. Both are
// deterministic for a given input set.
package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
)

// RenderMaster builds the master index: records grouped by tier, a stat
// table per tier, and a closing summary. Records without a tier group
// under "Unknown Tier" after the numbered tiers.
func RenderMaster(advs []*entities.Adversary) string {
	var b strings.Builder
	b.WriteString("# Adversary Index\n")

	groups, tiers := groupByTier(advs)

	for _, tier := range tiers {
		fmt.Fprintf(&b, "\n## %s\n\n", tierHeading(tier))
		b.WriteString("| Name | Type | Difficulty | HP | Stress |\n")
		b.WriteString("|------|------|------------|----|--------|\n")
		for _, adv := range groups[tier] {
			fmt.Fprintf(&b, "| [%s](%s.md) | %s | %s | %s | %s |\n",
				strings.ToUpper(adv.Name),
				adv.SafeFilename(),
				orDash(adv.AdversaryType),
				intOrDash(adv.Difficulty),
				intOrDash(adv.HP),
				intOrDash(adv.Stress))
		}
	}

	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", len(advs))
	for _, tier := range tiers {
		fmt.Fprintf(&b, "- %s: %d\n", tierHeading(tier), len(groups[tier]))
	}

	return b.String()
}

// RenderByType builds the by-type listing: one section per adversary
// type, alphabetical, names alphabetical within each.
func RenderByType(advs []*entities.Adversary) string {
	groups := make(map[string][]*entities.Adversary)
	for _, adv := range advs {
		key := adv.AdversaryType
		if key == "" {
			key = "Untyped"
		}
		groups[key] = append(groups[key], adv)
	}

	types := make([]string, 0, len(groups))
	for key := range groups {
		types = append(types, key)
	}
	sort.Strings(types)

	var b strings.Builder
	b.WriteString("# Adversaries by Type\n")

	for _, key := range types {
		fmt.Fprintf(&b, "\n## %s\n\n", key)
		group := groups[key]
		sortByName(group)
		for _, adv := range group {
			if adv.Tier != nil {
				fmt.Fprintf(&b, "- %s (Tier %d)\n", strings.ToUpper(adv.Name), *adv.Tier)
			} else {
				fmt.Fprintf(&b, "- %s\n", strings.ToUpper(adv.Name))
			}
		}
	}

	return b.String()
}

// unknownTier sorts after every real tier.
const unknownTier = 1 << 30

func groupByTier(advs []*entities.Adversary) (map[int][]*entities.Adversary, []int) {
	groups := make(map[int][]*entities.Adversary)
	for _, adv := range advs {
		tier := unknownTier
		if adv.Tier != nil {
			tier = *adv.Tier
		}
		groups[tier] = append(groups[tier], adv)
	}

	tiers := make([]int, 0, len(groups))
	for tier := range groups {
		tiers = append(tiers, tier)
		sortByName(groups[tier])
	}
	sort.Ints(tiers)

	return groups, tiers
}

func sortByName(advs []*entities.Adversary) {
	sort.SliceStable(advs, func(i, j int) bool {
		return strings.ToUpper(advs[i].Name) < strings.ToUpper(advs[j].Name)
	})
}

func tierHeading(tier int) string {
	if tier == unknownTier {
		return "Unknown Tier"
	}
	return fmt.Sprintf("Tier %d", tier)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
