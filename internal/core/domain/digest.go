package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DocumentSeparator is the literal token delimiting concatenated documents
// within one file. It is a document boundary marker, never part of any
// document's content.
const DocumentSeparator = "<|RELATED_DOC_SEP-magic-4f29e1b7|>"

// Canonical section headings. Renderers emit these as level-2 markdown
// headers; the parser recognises them when importing existing files.
const (
	HeadingExecutiveSummary  = "Executive Summary"
	HeadingKeyFindings       = "Key Findings"
	HeadingExecutiveOverview = "Executive Overview"
	HeadingCriticalFindings  = "Critical Findings"
	HeadingCostRealityCheck  = "Cost Reality Check"
	HeadingSuccessPatterns   = "Success Patterns"
	HeadingRecommendations   = "Strategic Recommendations"
	HeadingReferences        = "References"
)

// wordsPerMinute is the reading speed used for the reading-time estimate.
const wordsPerMinute = 200

// Section is one heading/body pair within a digest document.
type Section struct {
	// Heading is the section title, without markdown markers.
	Heading string

	// Body is the section prose in markdown.
	Body string
}

// DigestDocument is one composed analysis article. It is immutable once
// composed: there are no update operations, only create, read and delete.
type DigestDocument struct {
	// ID is the unique identifier assigned at composition time.
	ID string

	// Topic is the brief topic this document was composed for.
	Topic string

	// Title is the article title.
	Title string

	// Subtitle is an optional one-line framing of the angle.
	Subtitle string

	// ReadingTimeMinutes is the estimated reading time.
	ReadingTimeMinutes int

	// SourceCount is the number of citations consulted.
	SourceCount int

	// Sections is the ordered section sequence.
	Sections []Section

	// Findings is the ordered finding sequence.
	Findings []Finding

	// References is the ordered reference sequence. Duplicates are
	// preserved verbatim; no deduplication is performed.
	References []Reference

	// CreatedAt is when the document was composed.
	CreatedAt time.Time
}

// Validate checks the document against the record-format invariants.
// Validation is atomic: the first violation rejects the whole document.
func (d *DigestDocument) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidDocument)
	}
	if len(d.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidDocument)
	}
	if !utf8.ValidString(d.Title) || !utf8.ValidString(d.Subtitle) {
		return fmt.Errorf("%w: title block", ErrInvalidEncoding)
	}
	seen := make(map[string]bool, len(d.Sections))
	for i := range d.Sections {
		s := &d.Sections[i]
		if strings.TrimSpace(s.Heading) == "" {
			return fmt.Errorf("%w: section %d has empty heading", ErrInvalidDocument, i)
		}
		if s.Heading == HeadingReferences {
			// The references section is always derived from References;
			// carrying one in Sections would render the heading twice.
			return fmt.Errorf("%w: section %d uses reserved heading %q", ErrInvalidDocument, i, HeadingReferences)
		}
		if seen[s.Heading] {
			return fmt.Errorf("%w: duplicate section heading %q", ErrInvalidDocument, s.Heading)
		}
		seen[s.Heading] = true
		if !utf8.ValidString(s.Heading) || !utf8.ValidString(s.Body) {
			return fmt.Errorf("%w: section %q", ErrInvalidEncoding, s.Heading)
		}
		if strings.Contains(s.Body, DocumentSeparator) {
			return fmt.Errorf("%w: section %q contains the document separator", ErrInvalidDocument, s.Heading)
		}
		if line := headingLine(s.Body); line != "" {
			// A body line that re-parses as a title or section heading
			// would silently break the render/parse round trip.
			return fmt.Errorf("%w: section %q body contains heading line %q", ErrInvalidDocument, s.Heading, line)
		}
	}
	for i := range d.Findings {
		if err := d.Findings[i].Validate(); err != nil {
			return fmt.Errorf("finding %d: %w", i, err)
		}
	}
	for i := range d.References {
		if err := d.References[i].Validate(); err != nil {
			return fmt.Errorf("reference %d: %w", i, err)
		}
	}
	return nil
}

// headingLine returns the first body line that reads back as document
// structure: a level-1 or level-2 ATX heading at the start of a line.
// Deeper headings and indented code blocks stay part of the body.
func headingLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// FindingsHeading returns the heading of the section findings attach to:
// the first "Key Findings" or "Critical Findings" section, or empty when
// the document has neither.
func (d *DigestDocument) FindingsHeading() string {
	for i := range d.Sections {
		h := d.Sections[i].Heading
		if h == HeadingKeyFindings || h == HeadingCriticalFindings {
			return h
		}
	}
	return ""
}

// EstimateReadingTime returns the reading time in minutes for the given
// word count, at least 1 minute.
func EstimateReadingTime(words int) int {
	if words <= 0 {
		return 1
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// WordCount counts whitespace-separated words across the document's
// sections, findings and references.
func (d *DigestDocument) WordCount() int {
	n := len(strings.Fields(d.Title)) + len(strings.Fields(d.Subtitle))
	for i := range d.Sections {
		n += len(strings.Fields(d.Sections[i].Body))
		n += len(strings.Fields(d.Sections[i].Heading))
	}
	for i := range d.Findings {
		f := &d.Findings[i]
		n += len(strings.Fields(f.Context)) + len(strings.Fields(f.SourceQuote)) + 1
	}
	for i := range d.References {
		n += len(strings.Fields(d.References[i].Title))
	}
	return n
}
