package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

func TestParse_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	out, err := Render(&doc)
	require.NoError(t, err)

	parsed, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	got := parsed[0]
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Subtitle, got.Subtitle)
	assert.Equal(t, doc.ReadingTimeMinutes, got.ReadingTimeMinutes)
	assert.Equal(t, doc.SourceCount, got.SourceCount)

	require.Len(t, got.Sections, len(doc.Sections))
	for i := range doc.Sections {
		assert.Equal(t, doc.Sections[i].Heading, got.Sections[i].Heading)
		assert.Equal(t, doc.Sections[i].Body, got.Sections[i].Body)
	}

	require.Len(t, got.Findings, len(doc.Findings))
	for i := range doc.Findings {
		assert.Equal(t, doc.Findings[i].Statistic, got.Findings[i].Statistic)
		assert.Equal(t, doc.Findings[i].Context, got.Findings[i].Context)
		assert.Equal(t, doc.Findings[i].SourceQuote, got.Findings[i].SourceQuote)
		assert.Equal(t, doc.Findings[i].Confidence, got.Findings[i].Confidence)
	}

	assert.Equal(t, doc.References, got.References)
}

func TestParse_RoundTripStable(t *testing.T) {
	// Render(Parse(Render(doc))) must equal Render(doc).
	doc := sampleDocument()
	first, err := Render(&doc)
	require.NoError(t, err)

	parsed, err := Parse(first)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	second, err := Render(&parsed[0])
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_Bundle(t *testing.T) {
	first := sampleDocument()
	second := sampleDocument()
	second.Title = "Enterprise AI adoption 2025"
	second.Topic = second.Title

	out, err := Concatenate([]domain.DigestDocument{first, second})
	require.NoError(t, err)

	parsed, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, first.Title, parsed[0].Title)
	assert.Equal(t, second.Title, parsed[1].Title)
}

func TestParse_MissingTitle(t *testing.T) {
	input := "## Executive Summary\n\nNo title above.\n"

	docs, err := Parse(input)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Nil(t, docs)
}

func TestParse_MultipleTitles(t *testing.T) {
	input := "# One\n\n# Two\n\n## Executive Summary\n\nBody.\n"

	_, err := Parse(input)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestParse_BadReferenceLine(t *testing.T) {
	input := "# Title\n\n## Executive Summary\n\nBody.\n\n## References\n\n- not a reference\n"

	_, err := Parse(input)
	assert.ErrorIs(t, err, domain.ErrMalformedReference)
}

func TestParse_RelativeReferenceURL(t *testing.T) {
	input := "# Title\n\n## Executive Summary\n\nBody.\n\n## References\n\n- [Ref](/relative/path) - article\n"

	_, err := Parse(input)
	assert.ErrorIs(t, err, domain.ErrMalformedReference)
}

func TestParse_NoMetaLine_Estimates(t *testing.T) {
	input := "# Title\n\n## Executive Summary\n\nShort body.\n"

	docs, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].ReadingTimeMinutes)
	assert.Zero(t, docs[0].SourceCount)
}

func TestParse_BlockquoteInBodyIsNotAQuote(t *testing.T) {
	input := "# Title\n\n## Executive Summary\n\n> a plain pull quote\n"

	docs, err := Parse(input)
	require.NoError(t, err)
	assert.Empty(t, docs[0].Findings)
	assert.Equal(t, "> a plain pull quote", docs[0].Sections[0].Body)
}

func TestLint(t *testing.T) {
	doc := sampleDocument()
	out, err := Render(&doc)
	require.NoError(t, err)

	assert.NoError(t, Lint([]byte(out)))
}

func TestLint_Violations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "no title",
			input:   "## Section\n\nBody.\n",
			wantErr: domain.ErrInvalidDocument,
		},
		{
			name:    "two titles",
			input:   "# One\n\n# Two\n\n## Section\n\nBody.\n",
			wantErr: domain.ErrInvalidDocument,
		},
		{
			name:    "no sections",
			input:   "# Title\n\nJust prose.\n",
			wantErr: domain.ErrInvalidDocument,
		},
		{
			name:    "relative link",
			input:   "# Title\n\n## Section\n\n[ref](/relative)\n",
			wantErr: domain.ErrMalformedReference,
		},
		{
			name:    "invalid utf-8",
			input:   "# Title\n\n## Section\n\n\xff\xfe\n",
			wantErr: domain.ErrInvalidEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Lint([]byte(tt.input)), tt.wantErr)
		})
	}
}

func TestLint_Bundle(t *testing.T) {
	first := sampleDocument()
	second := sampleDocument()
	second.Title = "Another"
	second.Topic = "Another"

	out, err := Concatenate([]domain.DigestDocument{first, second})
	require.NoError(t, err)

	// Each side of the separator is linted as its own document, so the
	// two H1s do not trip the single-title rule.
	assert.NoError(t, Lint([]byte(out)))
}

func TestExportAstro(t *testing.T) {
	doc := sampleDocument()
	out, err := ExportAstro(&doc)
	require.NoError(t, err)

	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "---\n")
	assert.Contains(t, out, "title: AI ROI measurement 2025")
	assert.Contains(t, out, "readingTime: 4")
	assert.Contains(t, out, "sources: 3")
	// The H1 is dropped; the template supplies the title.
	assert.NotContains(t, out, "# AI ROI measurement 2025\n")
	assert.Contains(t, out, "## Executive Summary")
}

func TestExportAstro_InvalidDocument(t *testing.T) {
	doc := sampleDocument()
	doc.Sections = nil

	out, err := ExportAstro(&doc)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Empty(t, out)
}
