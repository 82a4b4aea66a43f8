package attribution

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arrowedisgaming/dhconverter/internal/errors"
)

// SourceEntry describes one known source document.
type SourceEntry struct {
	// Name is the display name used in Source lines.
	Name string `yaml:"name"`
	// Type distinguishes official books from community compilations.
	Type string `yaml:"type"`
	// Priority ranks the document during attribution; lower wins. Zero
	// means unranked, searched after every ranked source.
	Priority int `yaml:"priority"`
}

// SourceMap maps source file names to their display entries.
type SourceMap map[string]SourceEntry

type sourceMapFile struct {
	Sources SourceMap `yaml:"sources"`
}

// unrankedPriority sorts unmapped source files after every ranked one.
const unrankedPriority = 1 << 30

// Known sourcebooks, ranked in the order attribution should trust them.
var defaultSourceMap = SourceMap{
	"Age-of-Umbra-Adversaries.pdf":       {Name: "Age of Umbra Adversaries", Type: "official", Priority: 1},
	"Adversaries-Environments-v1.5-.pdf": {Name: "Adversaries: Environments v1.5", Type: "official", Priority: 2},
	"Menagerie_of_Mayhem-MUnderwood.md":  {Name: "Menagerie of Mayhem", Type: "community", Priority: 3},
	"martialadversaries-compressed.pdf":  {Name: "Martial Adversaries", Type: "community", Priority: 4},
	"undeadadversaries-compressed.pdf":   {Name: "Undead Adversaries", Type: "community", Priority: 5},
	"DH-SRD-Adversaries.pdf":             {Name: "Daggerheart SRD", Type: "official", Priority: 6},
	"The-Menagerie.md":                   {Name: "The Menagerie", Type: "community", Priority: 7},
}

// LoadSourceMap reads a YAML source map and merges it over the built-in
// defaults; entries in the file win.
func LoadSourceMap(path string) (SourceMap, error) {
	merged := make(SourceMap, len(defaultSourceMap))
	for k, v := range defaultSourceMap {
		merged[k] = v
	}
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading source map %q", path)
	}

	var parsed sourceMapFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument,
			"parsing source map %q", path)
	}

	for k, v := range parsed.Sources {
		merged[k] = v
	}
	return merged, nil
}

// Priority returns the attribution search rank for a source file. Files
// without a ranked map entry sort after every ranked one.
func (m SourceMap) Priority(filename string) int {
	if entry, ok := m[filepath.Base(filename)]; ok && entry.Priority > 0 {
		return entry.Priority
	}
	return unrankedPriority
}

// DisplayName returns the display name for a source file, deriving one
// from the file name when it has no map entry: extension dropped, hyphens
// and underscores become spaces. A few known sourcebooks ship with file
// names that do not expand cleanly and get fixed up afterward.
func (m SourceMap) DisplayName(filename string) string {
	base := filepath.Base(filename)
	if entry, ok := m[base]; ok && entry.Name != "" {
		return entry.Name
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	name := strings.Join(strings.Fields(stem), " ")
	name = strings.ReplaceAll(name, "Adversaries Environments", "Adversaries: Environments")

	compressed := strings.ReplaceAll(strings.ToLower(name), " ", "")
	switch {
	case strings.Contains(compressed, "martialadversaries"):
		return "Martial Adversaries"
	case strings.Contains(compressed, "undeadadversaries"):
		return "Undead Adversaries"
	}
	return name
}
