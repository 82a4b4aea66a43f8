package conversion_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/arrowedisgaming/dhconverter/internal/attribution"
	"github.com/arrowedisgaming/dhconverter/internal/clients/pdftext"
	pdftextmock "github.com/arrowedisgaming/dhconverter/internal/clients/pdftext/mock"
	"github.com/arrowedisgaming/dhconverter/internal/entities"
	"github.com/arrowedisgaming/dhconverter/internal/errors"
	"github.com/arrowedisgaming/dhconverter/internal/orchestrators/conversion"
	mdwriter "github.com/arrowedisgaming/dhconverter/internal/writers/markdown"
)

// stubFinder attributes every name to a fixed source.
type stubFinder struct {
	info  attribution.SourceInfo
	found bool
}

func (s *stubFinder) Find(_ context.Context, _ string) (attribution.SourceInfo, bool, error) {
	return s.info, s.found, nil
}

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl      *gomock.Controller
	extractor *pdftextmock.MockExtractor
	orch      *conversion.Orchestrator
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.extractor = pdftextmock.NewMockExtractor(s.ctrl)
	s.ctx = context.Background()

	orch, err := conversion.New(&conversion.Config{Extractor: s.extractor})
	s.Require().NoError(err)
	s.orch = orch
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) TestConvertSource_PDF() {
	page := pdftext.Page{
		Number: 4,
		Width:  612,
		Height: 792,
		Fragments: []pdftext.Fragment{
			{Text: "ACID BURROWER", X: 72, Top: 100},
			{Text: "Tier 1 Solo", X: 72, Top: 120},
			{Text: "Difficulty: 14 | HP: 8 | Stress: 3", X: 72, Top: 140},
		},
	}
	s.extractor.EXPECT().
		ExtractPages(gomock.Any(), "Age-of-Umbra-Adversaries.pdf").
		Return([]pdftext.Page{page}, nil)

	output, err := s.orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{Path: "Age-of-Umbra-Adversaries.pdf"})
	s.Require().NoError(err)

	s.Require().Len(output.Records, 1)
	s.Empty(output.Failures)
	s.Equal("ACID BURROWER", output.Records[0].Name)
	s.Equal("Age of Umbra Adversaries", output.Records[0].SourceName)
	s.Equal(4, output.Records[0].SourcePage)
}

// PDF records always carry a Source line derived from the file name, even
// when no attribution finder is configured.
func (s *OrchestratorTestSuite) TestConvertSource_PDFSourceNameFromFilename() {
	page := pdftext.Page{
		Number: 2,
		Width:  612,
		Height: 792,
		Fragments: []pdftext.Fragment{
			{Text: "IRON GOLEM", X: 72, Top: 100},
			{Text: "Tier 3 Bruiser", X: 72, Top: 120},
			{Text: "Difficulty: 17 | HP: 9", X: 72, Top: 140},
		},
	}
	s.extractor.EXPECT().
		ExtractPages(gomock.Any(), "martialadversariescompressed.pdf").
		Return([]pdftext.Page{page}, nil)

	output, err := s.orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{Path: "martialadversariescompressed.pdf"})
	s.Require().NoError(err)

	s.Require().Len(output.Records, 1)
	s.Equal("Martial Adversaries", output.Records[0].SourceName)
	s.Equal(2, output.Records[0].SourcePage)
}

func (s *OrchestratorTestSuite) TestConvertSource_MarkdownCompilation() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "menagerie.md")
	content := `## GLASS SNAKE

*Tier 2 Standard*

**Difficulty:** 14 | **HP:** 6

## IRON GOLEM

*Tier 3 Bruiser*

**Difficulty:** 17 | **HP:** 9
`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	output, err := s.orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{Path: path})
	s.Require().NoError(err)

	s.Require().Len(output.Records, 2)
	s.Equal("GLASS SNAKE", output.Records[0].Name)
	s.Equal("IRON GOLEM", output.Records[1].Name)
	s.Equal(0, output.Records[0].SourcePage)
}

func (s *OrchestratorTestSuite) TestConvertSource_UnknownExtension() {
	_, err := s.orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{Path: "book.docx"})
	s.Require().Error(err)
	s.True(errors.IsUnsupportedDialect(err))
}

func (s *OrchestratorTestSuite) TestConvertSource_EmptyPDF() {
	s.extractor.EXPECT().
		ExtractPages(gomock.Any(), "blank.pdf").
		Return([]pdftext.Page{{Number: 1, Width: 612, Height: 792}}, nil)

	_, err := s.orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{Path: "blank.pdf"})
	s.Require().Error(err)
	s.True(errors.IsEmptySource(err))
}

func (s *OrchestratorTestSuite) TestConvertSource_Attribution() {
	finder := &stubFinder{
		info:  attribution.SourceInfo{Name: "Daggerheart SRD", Page: 42},
		found: true,
	}
	orch, err := conversion.New(&conversion.Config{
		Extractor: s.extractor,
		Finder:    finder,
	})
	s.Require().NoError(err)

	dir := s.T().TempDir()
	path := filepath.Join(dir, "snake.md")
	content := "# GLASS SNAKE\n\n***Tier 2 Standard***\n\n> **Difficulty:** 14\n"
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	output, err := orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{
		Path:      path,
		Attribute: true,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Records, 1)
	s.Equal("Daggerheart SRD", output.Records[0].SourceName)
	s.Equal(42, output.Records[0].SourcePage)
}

func (s *OrchestratorTestSuite) TestConvertSource_AttributionKeepsParsedSource() {
	finder := &stubFinder{
		info:  attribution.SourceInfo{Name: "Wrong Book", Page: 1},
		found: true,
	}
	orch, err := conversion.New(&conversion.Config{
		Extractor: s.extractor,
		Finder:    finder,
	})
	s.Require().NoError(err)

	dir := s.T().TempDir()
	path := filepath.Join(dir, "snake.md")
	content := "# GLASS SNAKE\n\n***Tier 2 Standard***\n\n---\n\n*Source: The Menagerie, p. 9*\n"
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	output, err := orch.ConvertSource(s.ctx, &conversion.ConvertSourceInput{
		Path:      path,
		Attribute: true,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Records, 1)
	s.Equal("The Menagerie", output.Records[0].SourceName)
	s.Equal(9, output.Records[0].SourcePage)
}

func (s *OrchestratorTestSuite) TestNormalizeDirectory() {
	dir := s.T().TempDir()

	// Already standardized: parse then render reproduces the bytes.
	clean := mdwriter.Render(&entities.Adversary{
		Name:          "GLASS SNAKE",
		Tier:          entities.IntPtr(2),
		AdversaryType: "Standard",
		Difficulty:    entities.IntPtr(14),
		HP:            entities.IntPtr(6),
	})
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "Glass Snake.md"), []byte(clean), 0o644))

	// Community layout in need of rewriting.
	messy := "# IRON GOLEM\n\n*Tier 3 Bruiser*\n\n**Difficulty:** 17 | **HP:** 9\n"
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "Iron Golem.md"), []byte(messy), 0o644))

	s.Require().NoError(os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Vault\n"), 0o644))

	output, err := s.orch.NormalizeDirectory(s.ctx, &conversion.NormalizeDirectoryInput{
		Dir:    dir,
		Backup: true,
	})
	s.Require().NoError(err)

	s.Equal(1, output.Normalized)
	s.Equal(1, output.Unchanged)
	s.Equal(1, output.Skipped)
	s.Equal(0, output.Failed)

	rewritten, err := os.ReadFile(filepath.Join(dir, "Iron Golem.md"))
	s.Require().NoError(err)
	s.Contains(string(rewritten), "***Tier 3 Bruiser***")
	s.Contains(string(rewritten), "> **Difficulty:** 17 | **HP:** 9")

	backup, err := os.ReadFile(filepath.Join(dir, "Iron Golem.md.bak"))
	s.Require().NoError(err)
	s.Equal(messy, string(backup))
}

func (s *OrchestratorTestSuite) TestNormalizeDirectory_DryRun() {
	dir := s.T().TempDir()
	messy := "# IRON GOLEM\n\n*Tier 3 Bruiser*\n\n**Difficulty:** 17 | **HP:** 9\n"
	path := filepath.Join(dir, "Iron Golem.md")
	s.Require().NoError(os.WriteFile(path, []byte(messy), 0o644))

	output, err := s.orch.NormalizeDirectory(s.ctx, &conversion.NormalizeDirectoryInput{
		Dir:    dir,
		DryRun: true,
	})
	s.Require().NoError(err)
	s.Equal(1, output.Normalized)

	unchanged, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal(messy, string(unchanged))
	s.NoFileExists(path + ".bak")
}

func (s *OrchestratorTestSuite) TestNew_RequiresExtractor() {
	_, err := conversion.New(&conversion.Config{})
	s.Require().Error(err)
}
