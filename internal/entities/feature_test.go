package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
)

func TestParseFeature(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected entities.Feature
	}{
		{
			name:  "standardized triple emphasis",
			input: "***Acid Bath - Action:*** Spray acid in a cone.",
			expected: entities.Feature{
				Name:        "Acid Bath",
				FeatureType: "Action",
				Description: "Spray acid in a cone.",
			},
		},
		{
			name:  "double emphasis",
			input: "**Armored Shell - Passive:** Reduce physical damage by 3.",
			expected: entities.Feature{
				Name:        "Armored Shell",
				FeatureType: "Passive",
				Description: "Reduce physical damage by 3.",
			},
		},
		{
			name:  "community single emphasis with colon outside",
			input: "*Momentum - Reaction*: When the horde deals damage, gain a Fear.",
			expected: entities.Feature{
				Name:        "Momentum",
				FeatureType: "Reaction",
				Description: "When the horde deals damage, gain a Fear.",
			},
		},
		{
			name:  "multi line description joined with single spaces",
			input: "***Relentless - Passive:*** This adversary can be\nspotlighted twice\nper GM turn.",
			expected: entities.Feature{
				Name:        "Relentless",
				FeatureType: "Passive",
				Description: "This adversary can be spotlighted twice per GM turn.",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := entities.ParseFeature(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseFeature_NoMatch(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"plain text without emphasis",
		"***No Type Separator***",
	} {
		_, ok := entities.ParseFeature(input)
		assert.False(t, ok, "expected no match for %q", input)
	}
}

func TestFeatureMarkdown(t *testing.T) {
	f := entities.Feature{
		Name:        "Acid Bath",
		FeatureType: "Action",
		Description: "Spray acid in a cone.",
	}
	assert.Equal(t, "***Acid Bath - Action:*** Spray acid in a cone.", f.Markdown())
}
