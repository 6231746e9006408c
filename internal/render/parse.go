package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// Line patterns for the canonical layout. The parser is line-based on
// purpose: the digest record format is fixed, so full markdown parsing
// is only needed for structural linting (see lint.go).
var (
	metaRe     = regexp.MustCompile(`^\*\*Reading time:\*\* (\d+) min \| \*\*Sources analyzed:\*\* (\d+)$`)
	subtitleRe = regexp.MustCompile(`^\*([^*].*)\*$`)
	findingRe  = regexp.MustCompile(`^(🎯|📈|⚠️) \*\*(.+?)\*\* - (.*) \(confidence: (\d+)%\)$`)
	refRe      = regexp.MustCompile(`^- \[(.*)\]\((.+?)\) - (\w+)$`)
)

// Parse reconstructs documents from rendered markdown. The input may be
// a single document or a bundle; the separator token marks document
// boundaries. Each document is parsed atomically: any violation rejects
// that document and the whole parse.
func Parse(text string) ([]domain.DigestDocument, error) {
	chunks := Split(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: empty input", domain.ErrInvalidDocument)
	}

	docs := make([]domain.DigestDocument, 0, len(chunks))
	for i, chunk := range chunks {
		doc, err := parseDocument(chunk)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// parser accumulates one document while scanning lines.
type parser struct {
	doc      domain.DigestDocument
	metaSeen bool

	current    *domain.Section
	inRefs     bool
	lastIsFind bool
	body       []string
}

func parseDocument(chunk string) (*domain.DigestDocument, error) {
	p := &parser{}

	for _, line := range strings.Split(chunk, "\n") {
		if err := p.scan(strings.TrimRight(line, " \t")); err != nil {
			return nil, err
		}
	}
	p.flushSection()

	if strings.TrimSpace(p.doc.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", domain.ErrInvalidDocument)
	}
	p.doc.Topic = p.doc.Title
	p.doc.CreatedAt = time.Now()
	if !p.metaSeen {
		p.doc.SourceCount = len(p.doc.References)
		p.doc.ReadingTimeMinutes = domain.EstimateReadingTime(p.doc.WordCount())
	}

	if err := p.doc.Validate(); err != nil {
		return nil, err
	}
	return &p.doc, nil
}

func (p *parser) scan(line string) error {
	t := strings.TrimSpace(line)

	switch {
	case t == "":
		p.lastIsFind = false
		if p.current != nil {
			p.body = append(p.body, "")
		}
		return nil

	case strings.HasPrefix(t, sectionPrefix):
		p.flushSection()
		heading := strings.TrimSpace(strings.TrimPrefix(t, sectionPrefix))
		if heading == domain.HeadingReferences {
			p.inRefs = true
			return nil
		}
		p.inRefs = false
		p.current = &domain.Section{Heading: heading}
		return nil

	case strings.HasPrefix(t, titlePrefix):
		if p.doc.Title != "" {
			return fmt.Errorf("%w: multiple titles", domain.ErrInvalidDocument)
		}
		if p.current != nil || p.inRefs {
			return fmt.Errorf("%w: title after first section", domain.ErrInvalidDocument)
		}
		p.doc.Title = strings.TrimSpace(strings.TrimPrefix(t, titlePrefix))
		return nil
	}

	if p.inRefs {
		return p.scanReference(t)
	}
	if p.current == nil {
		return p.scanTitleBlock(t)
	}
	return p.scanSectionLine(t)
}

// scanTitleBlock handles the lines between the H1 and the first section.
func (p *parser) scanTitleBlock(t string) error {
	if p.doc.Title == "" {
		return fmt.Errorf("%w: content before title", domain.ErrInvalidDocument)
	}
	if m := metaRe.FindStringSubmatch(t); m != nil {
		p.doc.ReadingTimeMinutes, _ = strconv.Atoi(m[1])
		p.doc.SourceCount, _ = strconv.Atoi(m[2])
		p.metaSeen = true
		return nil
	}
	if m := subtitleRe.FindStringSubmatch(t); m != nil && p.doc.Subtitle == "" && !p.metaSeen {
		p.doc.Subtitle = m[1]
		return nil
	}
	return fmt.Errorf("%w: unexpected content before first section: %q", domain.ErrInvalidDocument, t)
}

func (p *parser) scanReference(t string) error {
	m := refRe.FindStringSubmatch(t)
	if m == nil {
		return fmt.Errorf("%w: bad reference line %q", domain.ErrMalformedReference, t)
	}
	p.doc.References = append(p.doc.References, domain.Reference{
		Title:      m[1],
		URL:        m[2],
		SourceType: domain.SourceType(m[3]),
	})
	return nil
}

func (p *parser) scanSectionLine(t string) error {
	if m := findingRe.FindStringSubmatch(t); m != nil {
		confidence, _ := strconv.Atoi(m[4])
		p.doc.Findings = append(p.doc.Findings, domain.Finding{
			Statistic:  m[2],
			Context:    m[3],
			Confidence: confidence,
		})
		p.lastIsFind = true
		return nil
	}

	if strings.HasPrefix(t, quotePrefix) && p.lastIsFind {
		f := &p.doc.Findings[len(p.doc.Findings)-1]
		quote := strings.TrimPrefix(t, quotePrefix)
		if f.SourceQuote == "" {
			f.SourceQuote = quote
		} else {
			f.SourceQuote += " " + quote
		}
		return nil
	}

	p.lastIsFind = false
	p.body = append(p.body, t)
	return nil
}

func (p *parser) flushSection() {
	if p.current == nil {
		p.body = nil
		return
	}
	p.current.Body = strings.TrimSpace(strings.Join(p.body, "\n"))
	p.doc.Sections = append(p.doc.Sections, *p.current)
	p.current = nil
	p.body = nil
	p.lastIsFind = false
}
