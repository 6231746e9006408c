package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() *DigestDocument {
	return &DigestDocument{
		ID:                 "doc-1",
		Topic:              "AI ROI measurement 2025",
		Title:              "AI ROI measurement 2025",
		Subtitle:           "What the numbers actually say",
		ReadingTimeMinutes: 3,
		SourceCount:        2,
		Sections: []Section{
			{Heading: HeadingExecutiveSummary, Body: "Most teams cannot measure AI ROI."},
			{Heading: HeadingKeyFindings, Body: "The statistics below recur across sources."},
			{Heading: HeadingCostRealityCheck, Body: "Budgets are dominated by integration work."},
		},
		Findings: []Finding{
			{Statistic: "46%", Context: "46% of projects never reach production", SourceQuote: "we shipped less than half", Confidence: ConfidenceArticle},
			{Statistic: "32%", Context: "32% report adoption growth year over year", SourceQuote: "usage keeps climbing", Confidence: ConfidenceForum},
		},
		References: []Reference{
			{Title: "State of AI report", URL: "https://example.com/state-of-ai", SourceType: SourceArticle},
		},
	}
}

func TestValidate_Success(t *testing.T) {
	doc := validDocument()
	require.NoError(t, doc.Validate())
}

func TestValidate_MissingTitle(t *testing.T) {
	doc := validDocument()
	doc.Title = "   "

	err := doc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestValidate_NoSections(t *testing.T) {
	doc := validDocument()
	doc.Sections = nil

	err := doc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestValidate_EmptyHeading(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Heading = ""

	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}

func TestValidate_DuplicateHeading(t *testing.T) {
	doc := validDocument()
	doc.Sections = append(doc.Sections, Section{Heading: HeadingExecutiveSummary, Body: "again"})

	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}

func TestValidate_ReservedReferencesHeading(t *testing.T) {
	doc := validDocument()
	doc.Sections = append(doc.Sections, Section{Heading: HeadingReferences, Body: "hand-written refs"})

	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}

func TestValidate_SeparatorInBody(t *testing.T) {
	doc := validDocument()
	doc.Sections[0].Body = "before " + DocumentSeparator + " after"

	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}

func TestValidate_HeadingLineInBody(t *testing.T) {
	// A body line starting a level-1 or level-2 heading would re-parse
	// as document structure instead of prose.
	doc := validDocument()
	doc.Sections[0].Body = "prose before\n## Sneaky Section\nprose after"
	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)

	doc = validDocument()
	doc.Sections[0].Body = "# Second Title"
	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)

	// Deeper headings and indented code survive as body content.
	doc = validDocument()
	doc.Sections[0].Body = "### a subheading\n\n    ## quoted in a code block"
	require.NoError(t, doc.Validate())
}

func TestValidate_InvalidEncoding(t *testing.T) {
	doc := validDocument()
	doc.Sections[0].Body = string([]byte{0xff, 0xfe, 0xfd})

	assert.ErrorIs(t, doc.Validate(), ErrInvalidEncoding)
}

func TestValidate_BadFindingConfidence(t *testing.T) {
	doc := validDocument()
	doc.Findings[0].Confidence = 120

	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}

func TestValidate_BadReferenceURL(t *testing.T) {
	doc := validDocument()
	doc.References[0].URL = "not-a-url"

	assert.ErrorIs(t, doc.Validate(), ErrMalformedReference)
}

func TestFindingsHeading(t *testing.T) {
	doc := validDocument()
	assert.Equal(t, HeadingKeyFindings, doc.FindingsHeading())

	doc.Sections[1].Heading = HeadingCriticalFindings
	assert.Equal(t, HeadingCriticalFindings, doc.FindingsHeading())

	doc.Sections[1].Heading = HeadingSuccessPatterns
	assert.Empty(t, doc.FindingsHeading())
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"zero words", 0, 1},
		{"under a minute", 50, 1},
		{"exactly one minute", 200, 1},
		{"rounds up", 201, 2},
		{"long read", 1800, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadingTime(tt.words))
		})
	}
}

func TestWordCount(t *testing.T) {
	doc := &DigestDocument{
		Title:    "Two words",
		Sections: []Section{{Heading: "One", Body: "three more words"}},
	}
	// 2 title + 1 heading + 3 body.
	assert.Equal(t, 6, doc.WordCount())
}

func TestDocumentSeparator_IsStable(t *testing.T) {
	// The separator is a wire-format constant; files written by older
	// builds must still split correctly.
	assert.True(t, strings.HasPrefix(DocumentSeparator, "<|RELATED_DOC_SEP-magic-"))
	assert.True(t, strings.HasSuffix(DocumentSeparator, "|>"))
}
