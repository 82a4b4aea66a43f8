package entities

import (
	"regexp"
	"strings"
)

// Attack represents an adversary's attack line.
//
// Range is an open set of named bands (Melee, Very Close, Close, Far,
// Very Far, ...) stored as a plain string; source documents occasionally
// introduce new bands. Damage is either dice notation with a damage-type
// suffix ("2d10+4 mag") or a non-dice fallback string ("1 Stress").
type Attack struct {
	Modifier   string // signed, e.g. "+4"
	WeaponName string
	Range      string
	Damage     string
}

var (
	boldMarkerRe = regexp.MustCompile(`\*{2}`)
	modifierRe   = regexp.MustCompile(`^[+-]\d+$`)
	diceRe       = regexp.MustCompile(`\d+d\d+`)
)

// ParseAttack parses a compact attack string like "+4 | Staff: Far | 2d10+4
// mag". The weapon/range separator may be a colon or a spaced hyphen; both
// produce the same structure. Unclassifiable trailing parts become the
// damage fallback, so non-dice damage like "1 Stress" parses without error.
func ParseAttack(text string) *Attack {
	attack := &Attack{}
	if strings.TrimSpace(text) == "" {
		return attack
	}

	text = boldMarkerRe.ReplaceAllString(text, "")

	for _, part := range strings.Split(text, "|") {
		part = strings.TrimSpace(part)

		switch {
		case modifierRe.MatchString(part):
			attack.Modifier = part
		case strings.Contains(part, ":"):
			weapon, rng, _ := strings.Cut(part, ":")
			attack.WeaponName = strings.TrimSpace(weapon)
			attack.Range = strings.TrimSpace(rng)
		case strings.Contains(part, " - ") && !diceRe.MatchString(part):
			weapon, rng, _ := strings.Cut(part, " - ")
			attack.WeaponName = strings.TrimSpace(weapon)
			attack.Range = strings.TrimSpace(rng)
		case diceRe.MatchString(part):
			attack.Damage = part
		case attack.WeaponName == "" && part != "":
			attack.WeaponName = part
		case attack.Damage == "":
			attack.Damage = part
		}
	}

	return attack
}

// String renders the attack in the standardized compact form:
// "+4 | **Staff:** Far | 2d10+4 mag". Absent parts are omitted.
func (a *Attack) String() string {
	parts := make([]string, 0, 3)
	if a.Modifier != "" {
		parts = append(parts, a.Modifier)
	}
	if a.WeaponName != "" {
		if a.Range != "" {
			parts = append(parts, "**"+a.WeaponName+":** "+a.Range)
		} else {
			parts = append(parts, "**"+a.WeaponName+"**")
		}
	}
	if a.Damage != "" {
		parts = append(parts, a.Damage)
	}
	return strings.Join(parts, " | ")
}

// IsEmpty reports whether the attack has no meaningful data.
func (a *Attack) IsEmpty() bool {
	return a == nil ||
		(a.Modifier == "" && a.WeaponName == "" && a.Range == "" && a.Damage == "")
}
