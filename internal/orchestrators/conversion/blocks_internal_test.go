package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/parsers/block"
)

// One bad block must not take its neighbors down with it.
func TestConvertBlocks_BatchResilience(t *testing.T) {
	raws := []block.Raw{
		{Text: "ACID BURROWER\nTier 1 Solo\nDifficulty: 14", Page: 3, Dialect: block.DialectPDF},
		{Text: "   \n\n", Page: 4, Dialect: block.DialectPDF},
		{Text: "GLASS SNAKE\nTier 2 Standard\nDifficulty: 14", Page: 5, Dialect: block.DialectPDF},
	}

	records, failures := convertBlocks(raws)

	require.Len(t, records, 2)
	assert.Equal(t, "ACID BURROWER", records[0].Name)
	assert.Equal(t, "GLASS SNAKE", records[1].Name)
	assert.Equal(t, 3, records[0].SourcePage)
	assert.Equal(t, 5, records[1].SourcePage)

	require.Len(t, failures, 1)
	assert.Equal(t, 4, failures[0].Page)
	assert.True(t, errors.IsParseFailure(failures[0].Err))
	assert.Equal(t, errors.ScopeRecord, errors.GetCode(failures[0].Err).FailureScope())
}
