package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Flat confidence values attached at composition time. Confidence is
// attacher metadata, not a computed score: articles get the high value,
// forum threads the low one.
const (
	ConfidenceArticle = 95
	ConfidenceForum   = 60

	// confidenceRiskThreshold is the cut-off below which a finding is
	// marked as a caution rather than a headline result.
	confidenceRiskThreshold = 70
)

// Marker is the glyph prefixed to a finding's statistic line.
type Marker string

// Finding markers.
const (
	// MarkerTarget flags a headline result.
	MarkerTarget Marker = "🎯"

	// MarkerTrend flags a growth or adoption trend.
	MarkerTrend Marker = "📈"

	// MarkerCaution flags a low-confidence or risk finding.
	MarkerCaution Marker = "⚠️"
)

// IsValid returns true if the marker is one of the three known glyphs.
func (m Marker) IsValid() bool {
	switch m {
	case MarkerTarget, MarkerTrend, MarkerCaution:
		return true
	default:
		return false
	}
}

// Finding is a statistic extracted from a source, paired with its
// surrounding context, the supporting quote, and a confidence value.
type Finding struct {
	// Statistic is the extracted figure, e.g. "46%" or "$2.3M".
	Statistic string

	// Context is the sentence the statistic appeared in.
	Context string

	// SourceQuote is the supporting quote, rendered as a blockquote.
	SourceQuote string

	// Confidence is in [0, 100]. See ConfidenceArticle/ConfidenceForum.
	Confidence int
}

// Validate checks the finding invariants.
func (f *Finding) Validate() error {
	if strings.TrimSpace(f.Statistic) == "" {
		return fmt.Errorf("%w: missing statistic", ErrInvalidDocument)
	}
	if f.Confidence < 0 || f.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d out of range", ErrInvalidDocument, f.Confidence)
	}
	if !utf8.ValidString(f.Statistic) || !utf8.ValidString(f.Context) || !utf8.ValidString(f.SourceQuote) {
		return fmt.Errorf("%w: finding %q", ErrInvalidEncoding, f.Statistic)
	}
	return nil
}

// trendWords mark a statistic as describing movement rather than a state.
var trendWords = []string{
	"growth", "grew", "increase", "increased", "rising", "rose",
	"adoption", "decline", "declined", "drop", "dropped", "trend",
	"faster", "surge",
}

// Marker classifies the finding into one of the three glyphs.
// The rule is deterministic: low confidence wins, then trend vocabulary
// in the context, otherwise the headline marker.
func (f *Finding) Marker() Marker {
	if f.Confidence < confidenceRiskThreshold {
		return MarkerCaution
	}
	ctx := strings.ToLower(f.Context)
	for _, w := range trendWords {
		if strings.Contains(ctx, w) {
			return MarkerTrend
		}
	}
	return MarkerTarget
}
