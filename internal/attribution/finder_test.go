package attribution_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arrowedisgaming/dhconverter/internal/attribution"
	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
	pdftextmock "github.com/arrowedisgaming/dhconverter/internal/clients/pdftext/mock"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFind_MarkdownSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "The-Menagerie.md", "## GLASS SNAKE\n\n*Tier 2 Standard*\n")

	finder, err := attribution.New(&attribution.Config{SourcesDir: dir})
	require.NoError(t, err)

	info, ok, err := finder.Find(context.Background(), "Glass Snake")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "The Menagerie", info.Name)
	assert.Equal(t, 0, info.Page, "markdown sources carry no page")
}

func TestFind_PDFSourceWithPage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "placeholder.pdf", "%PDF-1.4")

	ctrl := gomock.NewController(t)
	extractor := pdftextmock.NewMockExtractor(ctrl)
	extractor.EXPECT().
		ExtractPages(gomock.Any(), filepath.Join(dir, "placeholder.pdf")).
		Return([]pdftext.Page{
			{Number: 1, Fragments: []pdftext.Fragment{{Text: "ADVERSARIES"}}},
			{Number: 2, Fragments: []pdftext.Fragment{{Text: "ACID BURROWER"}, {Text: "Tier 1 Solo"}}},
		}, nil)

	finder, err := attribution.New(&attribution.Config{
		SourcesDir: dir,
		Extractor:  extractor,
	})
	require.NoError(t, err)

	info, ok, err := finder.Find(context.Background(), "Acid Burrower")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "placeholder", info.Name)
	assert.Equal(t, 2, info.Page)
}

func TestFind_WholeWordOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "The SNAKEBITE HANDLER appears here.\n")

	finder, err := attribution.New(&attribution.Config{SourcesDir: dir})
	require.NoError(t, err)

	_, ok, err := finder.Find(context.Background(), "Snake")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFind_NotFoundIsAbsentNotError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "Nothing relevant.\n")

	finder, err := attribution.New(&attribution.Config{SourcesDir: dir})
	require.NoError(t, err)

	_, ok, err := finder.Find(context.Background(), "Acid Burrower")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFind_CachesCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "placeholder.pdf", "%PDF-1.4")

	ctrl := gomock.NewController(t)
	extractor := pdftextmock.NewMockExtractor(ctrl)
	// Exactly one extraction even across repeated lookups.
	extractor.EXPECT().
		ExtractPages(gomock.Any(), gomock.Any()).
		Return([]pdftext.Page{
			{Number: 1, Fragments: []pdftext.Fragment{{Text: "BONE CRACKER"}}},
		}, nil).
		Times(1)

	finder, err := attribution.New(&attribution.Config{
		SourcesDir: dir,
		Extractor:  extractor,
	})
	require.NoError(t, err)

	for range 3 {
		_, ok, err := finder.Find(context.Background(), "Bone Cracker")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestFind_PunctuatedNameMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book.md", "DRAGON LICH DECAYBRINGER\nTier 4 Solo\n")

	finder, err := attribution.New(&attribution.Config{SourcesDir: dir})
	require.NoError(t, err)

	// Search keys drop punctuation on both sides of the comparison.
	info, ok, err := finder.Find(context.Background(), "Dragon Lich: Decay-Bringer")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "book", info.Name)
}

func TestFind_RankedSourceWinsOverAlphabeticalOrder(t *testing.T) {
	dir := t.TempDir()
	// The unranked homebrew file sorts first alphabetically, but the
	// ranked compilation is the canonical source for the name.
	writeFile(t, dir, "AAA-Homebrew.md", "## GLASS SNAKE\n\n*Tier 2 Standard*\n")
	writeFile(t, dir, "The-Menagerie.md", "## GLASS SNAKE\n\n*Tier 2 Standard*\n")

	finder, err := attribution.New(&attribution.Config{SourcesDir: dir})
	require.NoError(t, err)

	info, ok, err := finder.Find(context.Background(), "Glass Snake")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "The Menagerie", info.Name)
}

func TestSourceMap_Priority(t *testing.T) {
	m, err := attribution.LoadSourceMap("")
	require.NoError(t, err)

	assert.Less(t,
		m.Priority("Age-of-Umbra-Adversaries.pdf"),
		m.Priority("The-Menagerie.md"))
	assert.Less(t,
		m.Priority("The-Menagerie.md"),
		m.Priority("Unknown-Homebrew.md"))
}

func TestSourceMap_DisplayName(t *testing.T) {
	m, err := attribution.LoadSourceMap("")
	require.NoError(t, err)

	assert.Equal(t, "Age of Umbra Adversaries", m.DisplayName("Age-of-Umbra-Adversaries.pdf"))
	assert.Equal(t, "Homebrew Horrors", m.DisplayName("Homebrew_Horrors.md"))

	// File names that do not expand cleanly.
	assert.Equal(t, "Adversaries: Environments v1.5", m.DisplayName("Adversaries-Environments-v1.5-.pdf"))
	assert.Equal(t, "Martial Adversaries", m.DisplayName("martialadversariescompressed.pdf"))
	assert.Equal(t, "Undead Adversaries", m.DisplayName("undeadadversaries_print.pdf"))
}

func TestLoadSourceMap_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	content := `sources:
  Age-of-Umbra-Adversaries.pdf:
    name: Umbra Collection
    type: official
  My-Book.pdf:
    name: My Book
    type: community
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := attribution.LoadSourceMap(path)
	require.NoError(t, err)

	assert.Equal(t, "Umbra Collection", m.DisplayName("Age-of-Umbra-Adversaries.pdf"))
	assert.Equal(t, "My Book", m.DisplayName("My-Book.pdf"))
	// Untouched defaults survive the merge.
	assert.Equal(t, "The Menagerie", m.DisplayName("The-Menagerie.md"))
}
