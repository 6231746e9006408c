package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedDocument(id string, createdAt time.Time) *domain.DigestDocument {
	return &domain.DigestDocument{
		ID:                 id,
		Topic:              "enterprise AI adoption",
		Title:              "Enterprise AI Adoption in 2025",
		Subtitle:           "What pilot programs reveal about production readiness",
		ReadingTimeMinutes: 4,
		SourceCount:        2,
		Sections: []domain.Section{
			{Heading: domain.HeadingExecutiveSummary, Body: "Most pilots stall before production."},
			{Heading: domain.HeadingKeyFindings, Body: ""},
		},
		Findings: []domain.Finding{
			{
				Statistic:   "46%",
				Context:     "46% of pilots never reach production",
				SourceQuote: "Nearly half of the programs we tracked were cancelled.",
				Confidence:  domain.ConfidenceArticle,
			},
		},
		References: []domain.Reference{
			{
				Title:      "State of AI Report",
				URL:        "https://example.com/state-of-ai",
				SourceType: domain.SourceArticle,
			},
			{
				Title:      "r/MachineLearning discussion",
				URL:        "https://www.reddit.com/r/MachineLearning/comments/abc",
				SourceType: domain.SourceReddit,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := storedDocument("digest-1", createdAt)
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, "digest-1")
	require.NoError(t, err)

	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Topic, got.Topic)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Subtitle, got.Subtitle)
	assert.Equal(t, doc.ReadingTimeMinutes, got.ReadingTimeMinutes)
	assert.Equal(t, doc.SourceCount, got.SourceCount)
	assert.Equal(t, doc.Sections, got.Sections)
	assert.Equal(t, doc.Findings, got.Findings)
	assert.Equal(t, doc.References, got.References)
	assert.True(t, createdAt.Equal(got.CreatedAt))
}

func TestStore_SaveDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := storedDocument("digest-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, doc))

	err := store.Save(ctx, doc)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_SaveRejectsInvalidDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := storedDocument("digest-1", time.Now().UTC())
	doc.Title = ""
	err := store.Save(ctx, doc)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	_, err = store.Get(ctx, "digest-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveWithoutID(t *testing.T) {
	store := newTestStore(t)

	doc := storedDocument("", time.Now().UTC())
	err := store.Save(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := storedDocument("digest-old", base)
	newer := storedDocument("digest-new", base.Add(time.Hour))
	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "digest-new", docs[0].ID)
	assert.Equal(t, "digest-old", docs[1].ID)
	assert.Len(t, docs[0].Sections, 2)
	assert.Len(t, docs[0].References, 2)
}

func TestStore_ListEmpty(t *testing.T) {
	store := newTestStore(t)

	docs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := storedDocument("digest-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, doc))

	require.NoError(t, store.Delete(ctx, "digest-1"))

	_, err := store.Get(ctx, "digest-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, storedDocument("digest-1", time.Now().UTC())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "digest-1")
	require.NoError(t, err)
	assert.Equal(t, "Enterprise AI Adoption in 2025", got.Title)
}
