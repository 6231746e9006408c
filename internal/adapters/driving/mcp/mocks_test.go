package mcp

import (
	"context"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/render"
)

// mockComposeService is a mock implementation of driving.ComposeService.
type mockComposeService struct {
	doc   *domain.DigestDocument
	brief domain.Brief
	err   error
}

func (m *mockComposeService) Compose(_ context.Context, brief domain.Brief) (*domain.DigestDocument, error) {
	m.brief = brief
	return m.doc, m.err
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	docs  []domain.DigestDocument
	doc   *domain.DigestDocument
	saved []*domain.DigestDocument
	err   error
}

func (m *mockLibraryService) Save(_ context.Context, doc *domain.DigestDocument) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, doc)
	return nil
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.DigestDocument, error) {
	return m.docs, m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.DigestDocument, error) {
	return m.doc, m.err
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) Render(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return render.Render(m.doc)
}

func (m *mockLibraryService) Bundle(_ context.Context, ids []string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	docs := make([]domain.DigestDocument, 0, len(ids))
	for range ids {
		docs = append(docs, *m.doc)
	}
	return render.Concatenate(docs)
}

func (m *mockLibraryService) Import(_ context.Context, markdown string) ([]domain.DigestDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	return render.Parse(markdown)
}

// sampleDigest is a minimal valid digest for tool tests.
func sampleDigest() *domain.DigestDocument {
	return &domain.DigestDocument{
		ID:                 "digest-1",
		Topic:              "enterprise AI adoption",
		Title:              "Enterprise AI Adoption",
		ReadingTimeMinutes: 1,
		SourceCount:        1,
		Sections: []domain.Section{
			{Heading: domain.HeadingExecutiveSummary, Body: "Pilots stall before production."},
			{Heading: domain.HeadingKeyFindings},
		},
		Findings: []domain.Finding{
			{
				Statistic:  "46%",
				Context:    "46% of pilots never reach production",
				Confidence: domain.ConfidenceArticle,
			},
		},
		References: []domain.Reference{
			{
				Title:      "State of AI Report",
				URL:        "https://example.com/state-of-ai",
				SourceType: domain.SourceArticle,
			},
		},
	}
}
