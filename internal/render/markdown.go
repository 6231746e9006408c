package render

import (
	"fmt"
	"strings"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// Layout constants shared by the renderer and the parser.
const (
	titlePrefix   = "# "
	sectionPrefix = "## "
	quotePrefix   = "> "
	refItemPrefix = "- ["
)

// metaLineFormat is the bold reading-time line under the title block.
const metaLineFormat = "**Reading time:** %d min | **Sources analyzed:** %d"

// findingLineFormat is one finding's statistic line.
const findingLineFormat = "%s **%s** - %s (confidence: %d%%)"

// refLineFormat is one reference list item.
const refLineFormat = "- [%s](%s) - %s"

// Render serialises a document into the canonical markdown layout.
// The input is validated first; rendering is atomic, so an invalid
// document produces no partial output.
func Render(doc *domain.DigestDocument) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(titlePrefix + doc.Title + "\n\n")

	if doc.Subtitle != "" {
		b.WriteString("*" + doc.Subtitle + "*\n\n")
	}
	b.WriteString(fmt.Sprintf(metaLineFormat, doc.ReadingTimeMinutes, doc.SourceCount))
	b.WriteString("\n\n")

	findingsHeading := doc.FindingsHeading()
	findingsWritten := false

	for i := range doc.Sections {
		s := &doc.Sections[i]
		writeSection(&b, s.Heading, s.Body)
		if s.Heading == findingsHeading && len(doc.Findings) > 0 {
			writeFindings(&b, doc.Findings)
			findingsWritten = true
		}
		// Documents without a findings-style section get one synthesised
		// after the opening section, keeping the canonical order of
		// summary first, findings second.
		if i == 0 && findingsHeading == "" && len(doc.Findings) > 0 {
			writeSection(&b, domain.HeadingKeyFindings, "")
			writeFindings(&b, doc.Findings)
			findingsWritten = true
		}
	}
	if !findingsWritten && len(doc.Findings) > 0 {
		// Unreachable for valid documents, kept so findings can never be
		// dropped silently.
		writeSection(&b, domain.HeadingKeyFindings, "")
		writeFindings(&b, doc.Findings)
	}

	if len(doc.References) > 0 {
		b.WriteString(sectionPrefix + domain.HeadingReferences + "\n\n")
		for i := range doc.References {
			r := &doc.References[i]
			b.WriteString(fmt.Sprintf(refLineFormat, r.Title, r.URL, r.SourceType))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func writeSection(b *strings.Builder, heading, body string) {
	b.WriteString(sectionPrefix + heading + "\n\n")
	if body = strings.TrimSpace(body); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
}

func writeFindings(b *strings.Builder, findings []domain.Finding) {
	for i := range findings {
		f := &findings[i]
		b.WriteString(fmt.Sprintf(findingLineFormat, f.Marker(), f.Statistic, f.Context, f.Confidence))
		b.WriteString("\n")
		if f.SourceQuote != "" {
			b.WriteString(quotePrefix + f.SourceQuote + "\n")
		}
		b.WriteString("\n")
	}
}
