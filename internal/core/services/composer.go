package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
	"github.com/shaphero/digest-cli/internal/core/ports/driving"
	"github.com/shaphero/digest-cli/internal/logger"
)

// Ensure ComposerService implements the interface.
var _ driving.ComposeService = (*ComposerService)(nil)

// statRe matches the figures a finding can be anchored on: percentages,
// dollar amounts and multipliers.
var statRe = regexp.MustCompile(
	`\$[0-9][0-9,]*(?:\.[0-9]+)?\s?(?:[kKmMbB]|million|billion)?|[0-9]+(?:\.[0-9]+)?%|[0-9]+(?:\.[0-9]+)?x\b`,
)

// summaryMaxChars bounds the executive summary the LLM is asked for.
const summaryMaxChars = 600

// ComposerService builds digest documents from briefs. The fetcher
// registry is required; the LLM is optional and composition falls back
// to deterministic template prose when it is nil or failing.
type ComposerService struct {
	fetchers driven.FetcherRegistry
	llm      driven.LLMService
}

// NewComposerService creates a new composer service.
func NewComposerService(fetchers driven.FetcherRegistry, llm driven.LLMService) *ComposerService {
	return &ComposerService{
		fetchers: fetchers,
		llm:      llm,
	}
}

// Compose fetches the brief's sources, synthesises findings and
// sections, and returns a validated document without persisting it.
func (s *ComposerService) Compose(ctx context.Context, brief domain.Brief) (*domain.DigestDocument, error) {
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	logger.Section(fmt.Sprintf("composing digest: %s", brief.Topic))

	citations := s.gatherCitations(ctx, brief)
	if len(citations) == 0 {
		return nil, fmt.Errorf("%w: no source could be fetched", domain.ErrNoSources)
	}
	logger.Info("gathered %d citations", len(citations))

	findings := extractFindings(citations, brief.FindingLimit())
	logger.Info("extracted %d findings", len(findings))

	refs := make([]domain.Reference, 0, len(citations))
	for i := range citations {
		refs = append(refs, citations[i].Reference())
	}

	doc := &domain.DigestDocument{
		ID:          uuid.NewString(),
		Topic:       brief.Topic,
		Title:       titleCase(brief.Topic),
		Subtitle:    brief.Angle,
		SourceCount: len(citations),
		Sections:    s.buildSections(ctx, brief, citations, findings),
		Findings:    findings,
		References:  refs,
		CreatedAt:   time.Now().UTC(),
	}
	doc.ReadingTimeMinutes = domain.EstimateReadingTime(doc.WordCount())

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("composed document: %w", err)
	}
	return doc, nil
}

// gatherCitations pulls citations for every brief source. A failing
// source is skipped with a warning; composition continues with the rest.
func (s *ComposerService) gatherCitations(ctx context.Context, brief domain.Brief) []domain.Citation {
	var citations []domain.Citation

	for _, url := range brief.Sources {
		fetcher, err := s.fetchers.Fetcher(domain.InferSourceType(url))
		if err != nil {
			logger.Warn("skipping %s: %v", url, err)
			continue
		}
		fetched, err := fetcher.Fetch(ctx, url)
		if err != nil {
			logger.Warn("skipping %s: %v", url, err)
			continue
		}
		citations = append(citations, fetched...)
	}

	if brief.RedditQuery != "" {
		fetcher, err := s.fetchers.Fetcher(domain.SourceReddit)
		if err != nil {
			logger.Warn("skipping reddit query %q: %v", brief.RedditQuery, err)
			return citations
		}
		fetched, err := fetcher.Fetch(ctx, brief.RedditQuery)
		if err != nil {
			logger.Warn("skipping reddit query %q: %v", brief.RedditQuery, err)
			return citations
		}
		citations = append(citations, fetched...)
	}

	return citations
}

// extractFindings scans citation excerpts for figures and turns each
// first hit into a finding, up to limit. Citation order is preserved so
// higher-confidence sources surface first when articles precede forums.
func extractFindings(citations []domain.Citation, limit int) []domain.Finding {
	var findings []domain.Finding

	for i := range citations {
		c := &citations[i]
		for _, excerpt := range c.Excerpts {
			if len(findings) >= limit {
				return findings
			}
			stat := statRe.FindString(excerpt)
			if stat == "" {
				continue
			}
			findings = append(findings, domain.Finding{
				Statistic:   stat,
				Context:     findingContext(excerpt),
				SourceQuote: excerpt,
				Confidence:  c.Confidence(),
			})
		}
	}

	return findings
}

// findingContext reduces an excerpt to its first sentence, which is the
// line shown next to the statistic. A dot flanked by digits is a decimal
// point ("$3.2M", "1.5x"), not a sentence terminator.
func findingContext(excerpt string) string {
	t := strings.TrimSpace(excerpt)
	end := len(t)
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if c == '.' && i > 0 && i+1 < len(t) && isDigit(t[i-1]) && isDigit(t[i+1]) {
			continue
		}
		end = i
		break
	}
	return strings.Join(strings.Fields(t[:end]), " ")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// buildSections assembles the canonical section sequence. Findings are
// rendered under Key Findings, so that section carries no prose body.
func (s *ComposerService) buildSections(
	ctx context.Context,
	brief domain.Brief,
	citations []domain.Citation,
	findings []domain.Finding,
) []domain.Section {
	evidence := evidenceBullets(findings)

	sections := []domain.Section{
		{
			Heading: domain.HeadingExecutiveSummary,
			Body:    s.summarise(ctx, brief, citations),
		},
		{Heading: domain.HeadingKeyFindings},
	}

	if hasCostFinding(findings) {
		sections = append(sections, domain.Section{
			Heading: domain.HeadingCostRealityCheck,
			Body:    s.draft(ctx, brief, domain.HeadingCostRealityCheck, evidence),
		})
	}

	sections = append(sections,
		domain.Section{
			Heading: domain.HeadingSuccessPatterns,
			Body:    s.draft(ctx, brief, domain.HeadingSuccessPatterns, evidence),
		},
		domain.Section{
			Heading: domain.HeadingRecommendations,
			Body:    s.draft(ctx, brief, domain.HeadingRecommendations, evidence),
		},
	)

	return sections
}

// summarise produces the executive summary, via the LLM when available.
func (s *ComposerService) summarise(ctx context.Context, brief domain.Brief, citations []domain.Citation) string {
	if s.llm != nil {
		var content strings.Builder
		for i := range citations {
			for _, excerpt := range citations[i].Excerpts {
				content.WriteString(excerpt)
				content.WriteString("\n")
			}
		}
		summary, err := s.llm.Summarise(ctx, content.String(), summaryMaxChars)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil {
			logger.Warn("llm summary failed, using template prose: %v", err)
		}
	}

	return fmt.Sprintf(
		"This digest reviews %d sources on %s. The figures that matter most are collected under %s below.",
		len(citations), brief.Topic, domain.HeadingKeyFindings,
	)
}

// draft produces a section body, via the LLM when available.
func (s *ComposerService) draft(ctx context.Context, brief domain.Brief, heading, evidence string) string {
	if s.llm != nil && evidence != "" {
		body, err := s.llm.DraftSection(ctx, driven.DraftRequest{
			Topic:    brief.Topic,
			Heading:  heading,
			Audience: brief.Audience,
			Tone:     brief.Tone,
			Evidence: evidence,
		})
		if err == nil && body != "" {
			return body
		}
		if err != nil {
			logger.Warn("llm draft for %q failed, using template prose: %v", heading, err)
		}
	}

	return templateBody(brief.Topic, heading)
}

// templateBody is the deterministic prose used when no LLM is available.
func templateBody(topic, heading string) string {
	switch heading {
	case domain.HeadingCostRealityCheck:
		return fmt.Sprintf(
			"The sources attach concrete costs to %s. Treat the dollar figures under %s as the budget baseline before committing.",
			topic, domain.HeadingKeyFindings,
		)
	case domain.HeadingSuccessPatterns:
		return fmt.Sprintf(
			"Across the sources on %s, the efforts that succeeded started narrow, measured outcomes early, and expanded only after the numbers held.",
			topic,
		)
	case domain.HeadingRecommendations:
		return fmt.Sprintf(
			"Weigh each figure above against your own context before acting on %s. A statistic quoted here is an input, not a plan.",
			topic,
		)
	default:
		return fmt.Sprintf("Analysis of %s based on the cited sources.", topic)
	}
}

// evidenceBullets renders findings as the bullet list LLM prompts use.
func evidenceBullets(findings []domain.Finding) string {
	if len(findings) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range findings {
		f := &findings[i]
		fmt.Fprintf(&b, "- %s: %s", f.Statistic, f.Context)
		if f.SourceQuote != "" {
			fmt.Fprintf(&b, " (%q)", f.SourceQuote)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// hasCostFinding reports whether any finding carries a dollar figure.
func hasCostFinding(findings []domain.Finding) bool {
	for i := range findings {
		if strings.HasPrefix(findings[i].Statistic, "$") {
			return true
		}
	}
	return false
}

// titleCase capitalises the first letter of each word except short
// connectives, so a lowercase topic reads as an article title.
func titleCase(s string) string {
	minor := map[string]bool{
		"a": true, "an": true, "and": true, "at": true, "by": true,
		"for": true, "in": true, "of": true, "on": true, "or": true,
		"the": true, "to": true, "vs": true,
	}
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 && minor[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
