package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/adapters/driven/storage/memory"
	"github.com/shaphero/digest-cli/internal/core/domain"
)

func libraryDocument(id string, createdAt time.Time) *domain.DigestDocument {
	return &domain.DigestDocument{
		ID:                 id,
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
		CreatedAt: createdAt,
	}
}

func TestLibraryService_SaveGetDelete(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())
	ctx := context.Background()

	doc := libraryDocument("digest-1", time.Now().UTC())
	require.NoError(t, lib.Save(ctx, doc))

	got, err := lib.Get(ctx, "digest-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)

	require.NoError(t, lib.Delete(ctx, "digest-1"))
	_, err = lib.Get(ctx, "digest-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Render(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())
	ctx := context.Background()

	require.NoError(t, lib.Save(ctx, libraryDocument("digest-1", time.Now().UTC())))

	md, err := lib.Render(ctx, "digest-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Enterprise AI Adoption\n"))
	assert.Contains(t, md, "## Key Findings")
	assert.Contains(t, md, "- [State of AI Report](https://example.com/state-of-ai) - article")
}

func TestLibraryService_RenderNotFound(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())

	_, err := lib.Render(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Bundle(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := libraryDocument("digest-1", base)
	second := libraryDocument("digest-2", base.Add(time.Minute))
	second.Title = "Kubernetes Cost Optimization"
	require.NoError(t, lib.Save(ctx, first))
	require.NoError(t, lib.Save(ctx, second))

	bundle, err := lib.Bundle(ctx, []string{"digest-1", "digest-2"})
	require.NoError(t, err)

	// Requested order wins, not storage order.
	assert.Equal(t, 1, strings.Count(bundle, domain.DocumentSeparator))
	assert.Less(t,
		strings.Index(bundle, "# Enterprise AI Adoption"),
		strings.Index(bundle, "# Kubernetes Cost Optimization"),
	)
}

func TestLibraryService_BundleMissingDocument(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())
	ctx := context.Background()

	require.NoError(t, lib.Save(ctx, libraryDocument("digest-1", time.Now().UTC())))

	_, err := lib.Bundle(ctx, []string{"digest-1", "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = lib.Bundle(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibraryService_ImportRoundTrip(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := libraryDocument("digest-1", base)
	second := libraryDocument("digest-2", base.Add(time.Minute))
	second.Title = "Kubernetes Cost Optimization"
	require.NoError(t, lib.Save(ctx, first))
	require.NoError(t, lib.Save(ctx, second))

	bundle, err := lib.Bundle(ctx, []string{"digest-1", "digest-2"})
	require.NoError(t, err)

	// Import into a fresh library; every document gets a new ID.
	fresh := NewLibraryService(memory.NewDigestStore())
	imported, err := fresh.Import(ctx, bundle)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	assert.NotEmpty(t, imported[0].ID)
	assert.Equal(t, "Enterprise AI Adoption", imported[0].Title)
	assert.Equal(t, "Kubernetes Cost Optimization", imported[1].Title)

	stored, err := fresh.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestLibraryService_ImportMalformed(t *testing.T) {
	lib := NewLibraryService(memory.NewDigestStore())

	_, err := lib.Import(context.Background(), "no title line here\n")
	assert.Error(t, err)

	stored, listErr := lib.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, stored)
}
