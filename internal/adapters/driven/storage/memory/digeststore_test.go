package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

func testDocument(id string, createdAt time.Time) *domain.DigestDocument {
	return &domain.DigestDocument{
		ID:                 id,
		Topic:              "kubernetes cost optimization",
		Title:              "Kubernetes Cost Optimization",
		ReadingTimeMinutes: 2,
		SourceCount:        1,
		Sections: []domain.Section{
			{Heading: domain.HeadingExecutiveSummary, Body: "Overprovisioning dominates spend."},
		},
		References: []domain.Reference{
			{
				Title:      "Cluster cost survey",
				URL:        "https://example.com/costs",
				SourceType: domain.SourceArticle,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestDigestStore_SaveAndGet(t *testing.T) {
	store := NewDigestStore()
	ctx := context.Background()

	doc := testDocument("digest-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, "digest-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.References, got.References)
}

func TestDigestStore_SaveDuplicate(t *testing.T) {
	store := NewDigestStore()
	ctx := context.Background()

	doc := testDocument("digest-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, doc))
	assert.ErrorIs(t, store.Save(ctx, doc), domain.ErrAlreadyExists)
}

func TestDigestStore_SaveInvalid(t *testing.T) {
	store := NewDigestStore()

	doc := testDocument("digest-1", time.Now().UTC())
	doc.Sections = nil
	assert.ErrorIs(t, store.Save(context.Background(), doc), domain.ErrInvalidDocument)
}

func TestDigestStore_GetNotFound(t *testing.T) {
	store := NewDigestStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDigestStore_ListNewestFirst(t *testing.T) {
	store := NewDigestStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, testDocument("digest-old", base)))
	require.NoError(t, store.Save(ctx, testDocument("digest-new", base.Add(time.Minute))))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "digest-new", docs[0].ID)
	assert.Equal(t, "digest-old", docs[1].ID)
}

func TestDigestStore_Delete(t *testing.T) {
	store := NewDigestStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocument("digest-1", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "digest-1"))
	assert.ErrorIs(t, store.Delete(ctx, "digest-1"), domain.ErrNotFound)
}
