package markdown_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/pkg/idgen"
	"github.com/arrowedisgaming/dhconverter/internal/writers/markdown"
)

func newTestWriter(t *testing.T, overwrite bool) (*markdown.Writer, string) {
	t.Helper()
	dir := t.TempDir()
	writer, err := markdown.NewWriter(&markdown.Config{
		OutputDir:   dir,
		Overwrite:   overwrite,
		IDGenerator: idgen.NewSequential("tmp"),
	})
	require.NoError(t, err)
	return writer, dir
}

func TestWriter_Write(t *testing.T) {
	writer, dir := newTestWriter(t, false)

	path, err := writer.Write(&entities.Adversary{Name: "Acid Burrower"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Acid Burrower.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# ACID BURROWER")
}

func TestWriter_CollisionSuffix(t *testing.T) {
	writer, dir := newTestWriter(t, false)
	adv := &entities.Adversary{Name: "Shade"}

	first, err := writer.Write(adv)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Shade.md"), first)

	second, err := writer.Write(adv)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Shade (1).md"), second)

	third, err := writer.Write(adv)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Shade (2).md"), third)
}

func TestWriter_Overwrite(t *testing.T) {
	writer, dir := newTestWriter(t, true)

	_, err := writer.Write(&entities.Adversary{Name: "Shade"})
	require.NoError(t, err)
	_, err = writer.Write(&entities.Adversary{Name: "Shade", HP: entities.IntPtr(5)})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, "Shade.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "**HP:** 5")
}

func TestWriter_SanitizesFilename(t *testing.T) {
	writer, dir := newTestWriter(t, false)

	path, err := writer.Write(&entities.Adversary{Name: "Dragon Lich: Decay-Bringer"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Dragon Lich Decay-Bringer.md"), path)
}

func TestNewWriter_RequiresOutputDir(t *testing.T) {
	_, err := markdown.NewWriter(&markdown.Config{})
	require.Error(t, err)
}
