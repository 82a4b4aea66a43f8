// Package beastvault exports canonical records as BeastVault JSON.
//
// The schema belongs to the BeastVault importer and is treated as an
// external contract: field names and nesting are fixed, absent fields are
// omitted rather than emitted as nulls, and a handful of conventions
// (empty-string xp, environment impulses, the homebrew fallback tag)
// follow what the importer expects.
package beastvault

import (
	"encoding/json"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/idgen"
)

// Entry is one adversary in BeastVault form. Motives carries adversary
// motives while environments use Impulses; the importer distinguishes the
// two keys. Attack holds the numeric attack modifier and Weapon the weapon
// name. XP defaults to "" rather than being omitted because the importer
// requires the key on adversaries; on environments it is absent along with
// the rest of the combat fields.
type Entry struct {
	Name        string         `json:"name"`
	Tier        *int           `json:"tier,omitempty"`
	Type        string         `json:"type,omitempty"`
	Description string         `json:"desc,omitempty"`
	Difficulty  *int           `json:"difficulty,omitempty"`
	Motives     string         `json:"motives,omitempty"`
	Impulses    string         `json:"impulses,omitempty"`
	HP          *int           `json:"hp,omitempty"`
	Stress      *int           `json:"stress,omitempty"`
	Attack      *int           `json:"attack,omitempty"`
	Weapon      string         `json:"weapon,omitempty"`
	Range       string         `json:"range,omitempty"`
	Damage      string         `json:"damage,omitempty"`
	Thresholds  string         `json:"thresholds,omitempty"`
	XP          *string        `json:"xp,omitempty"`
	Source      string         `json:"source"`
	Features    []EntryFeature `json:"features,omitempty"`
}

// EntryFeature is one feature in BeastVault form.
type EntryFeature struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Desc string `json:"desc"`
}

// Known source display names and the tags the importer files them under.
var sourceTags = map[string]string{
	"Age of Umbra Adversaries":              "age-of-umbra",
	"Martial Adversaries":                   "martial",
	"Undead Adversaries":                    "undead",
	"Adversaries: Environments v1.5":        "environments",
	"Menagerie of Mayhem":                   "menagerie",
	"Daggerheart System Reference Document": "corebook",
}

var (
	modifierRe  = regexp.MustCompile(`^[+-]?\d+$`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// FromRecord maps one canonical record to a BeastVault entry. A record with
// neither HP nor Stress is treated as an environment: its motives land in
// the impulses key and the combat fields are suppressed entirely.
func FromRecord(adv *entities.Adversary) Entry {
	entry := Entry{
		Name:        strings.ToUpper(adv.Name),
		Tier:        adv.Tier,
		Type:        adv.AdversaryType,
		Description: adv.Description,
		Difficulty:  adv.Difficulty,
		Source:      sourceTag(adv.SourceName),
	}

	isEnv := adv.HP == nil && adv.Stress == nil
	if isEnv {
		entry.Impulses = adv.MotivesTactics
	} else {
		entry.Motives = adv.MotivesTactics
	}

	if !isEnv {
		entry.HP = adv.HP
		entry.Stress = adv.Stress

		if !adv.Attack.IsEmpty() {
			entry.Attack = parseModifier(adv.Attack.Modifier)
			entry.Weapon = adv.Attack.WeaponName
			entry.Range = adv.Attack.Range
			entry.Damage = adv.Attack.Damage
		}

		if thresholds := adv.ThresholdsString(); thresholds != "" && thresholds != "None" {
			entry.Thresholds = thresholds
		}

		xp := adv.Experience
		entry.XP = &xp
	}

	for _, feature := range adv.Features {
		entry.Features = append(entry.Features, EntryFeature{
			Name: feature.Name,
			Type: feature.FeatureType,
			Desc: feature.Description,
		})
	}

	return entry
}

// parseModifier converts "+3" or "-2" to a number; malformed modifiers
// become absent.
func parseModifier(modifier string) *int {
	if !modifierRe.MatchString(modifier) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(modifier, "+"))
	if err != nil {
		return nil
	}
	return &n
}

// sourceTag returns the importer's tag for a source display name, slugging
// unknown names. Unattributed records file under "homebrew".
func sourceTag(name string) string {
	if name == "" {
		return "homebrew"
	}
	if tag, ok := sourceTags[name]; ok {
		return tag
	}
	return slugify(name)
}

func slugify(name string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// Writer serializes entries to a JSON array file.
type Writer struct {
	idgen idgen.Generator
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{idgen: idgen.NewUUID("tmp")}
}

// WriteFile maps the records and writes them as one indented JSON array,
// replacing the file atomically.
func (w *Writer) WriteFile(path string, advs []*entities.Adversary) error {
	entries := make([]Entry, 0, len(advs))
	for _, adv := range advs {
		entries = append(entries, FromRecord(adv))
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %d entries", len(entries))
	}
	data = append(data, '\n')

	tmp := path + "." + w.idgen.Generate()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replacing %q", path)
	}
	return nil
}
