package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowedisgaming/dhconverter/internal/pkg/textnorm"
)

func TestClean_DashNormalization(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "en dash",
			input:    "Claws – Melee",
			expected: "Claws - Melee",
		},
		{
			name:     "em dash",
			input:    "Bite — Very Close",
			expected: "Bite - Very Close",
		},
		{
			name:     "unicode minus",
			input:    "−2 | Daggers",
			expected: "-2 | Daggers",
		},
		{
			name:     "smart quotes",
			input:    "“the” king’s blade",
			expected: `"the" king's blade`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, textnorm.Clean(tc.input))
		})
	}
}

func TestClean_SplitWordRepair(t *testing.T) {
	assert.Equal(t, "Difficulty: 14", textnorm.Clean("Diffi culty: 14"))
	assert.Equal(t, "swings a flail", textnorm.Clean("swings a fl ail"))
	assert.Equal(t, "2d6+1 phy", textnorm.Clean("2d6+1 phy damage"))

	// Legitimate two-word phrases are untouched.
	assert.Equal(t, "of the realm", textnorm.Clean("of the realm"))
}

func TestClean_WhitespaceAndArtifacts(t *testing.T) {
	input := "ACID BURROWER\n42\nPage 3\nADVERSARIES\nTier 1   Solo\n\n\n\nMotives"
	got := textnorm.Clean(input)

	assert.Equal(t, "ACID BURROWER\nTier 1 Solo\n\nMotives", got)
}

func TestClean_ControlCharacters(t *testing.T) {
	assert.Equal(t, "HP: 8", textnorm.Clean("HP:\x07 8\x00"))
}

func TestClean_StripsByteOrderMark(t *testing.T) {
	assert.Equal(t, "# ACID BURROWER", textnorm.Clean("\uFEFF# ACID BURROWER"))
}

func TestFixBrokenWords(t *testing.T) {
	assert.Equal(t, "bonecracker", textnorm.FixBrokenWords("bone-\ncracker"))
	// A spaced hyphen is not word internal.
	assert.Equal(t, "well - known", textnorm.FixBrokenWords("well - known"))
	// Clean itself never rejoins hyphenated breaks; markdown sources keep them.
	assert.Equal(t, "bone-\ncracker", textnorm.Clean("bone-\ncracker"))
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"ACID BURROWER\nTier 1 Solo",
		"Diffi culty: 14 – HP: 8\n\n\n\nStress: 3",
		"\uFEFF# DRAGON\n12\nsome flavor text",
		"plain already clean text",
	}

	for _, input := range inputs {
		once := textnorm.Clean(input)
		assert.Equal(t, once, textnorm.Clean(once), "Clean must be idempotent for %q", input)
	}
}

func TestDeduplicateColumns(t *testing.T) {
	// Short text passes through untouched.
	assert.Equal(t, "short", textnorm.DeduplicateColumns("short"))

	segment := "The acid burrower hunts from beneath the dunes, bursting upward " +
		"to snatch prey before it can react. Its shell drips with caustic slime."
	duplicated := segment + "\n" + segment
	got := textnorm.DeduplicateColumns(duplicated)
	assert.Equal(t, segment, got)
}

func TestExtractNumber(t *testing.T) {
	n, ok := textnorm.ExtractNumber("Difficulty: 14")
	require.True(t, ok)
	assert.Equal(t, 14, n)

	_, ok = textnorm.ExtractNumber("no digits here")
	assert.False(t, ok)
}

func TestExtractThresholds(t *testing.T) {
	minor, major, ok := textnorm.ExtractThresholds("8/15")
	require.True(t, ok)
	assert.Equal(t, 8, minor)
	assert.Equal(t, 15, major)

	minor, major, ok = textnorm.ExtractThresholds("Thresholds: 7 / 12")
	require.True(t, ok)
	assert.Equal(t, 7, minor)
	assert.Equal(t, 12, major)

	_, _, ok = textnorm.ExtractThresholds("None")
	assert.False(t, ok)
}

func TestNormalizeDamageType(t *testing.T) {
	assert.Equal(t, "2d8+2 phy", textnorm.NormalizeDamageType("2d8+2  physical"))
	assert.Equal(t, "1d10 mag", textnorm.NormalizeDamageType("1d10 magical"))
	assert.Equal(t, "3d6 mag", textnorm.NormalizeDamageType("3d6 magic"))
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "XERO CASTLE KILLER", textnorm.SearchKey("Xero, Castle Killer"))
	assert.Equal(t, "DRAGON LICH DECAYBRINGER", textnorm.SearchKey("Dragon Lich: Decay-Bringer"))
}
