package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
	"github.com/shaphero/digest-cli/internal/core/ports/driving"
	"github.com/shaphero/digest-cli/internal/logger"
	"github.com/shaphero/digest-cli/internal/render"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages stored digests and their rendered forms.
type LibraryService struct {
	store driven.DigestStore
}

// NewLibraryService creates a new library service.
func NewLibraryService(store driven.DigestStore) *LibraryService {
	return &LibraryService{store: store}
}

// Save persists a composed document.
func (s *LibraryService) Save(ctx context.Context, doc *domain.DigestDocument) error {
	return s.store.Save(ctx, doc)
}

// List returns stored documents, newest first.
func (s *LibraryService) List(ctx context.Context) ([]domain.DigestDocument, error) {
	return s.store.List(ctx)
}

// Get retrieves one document by ID.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.DigestDocument, error) {
	return s.store.Get(ctx, id)
}

// Delete removes a document.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Render returns the canonical markdown for a stored document.
func (s *LibraryService) Render(ctx context.Context, id string) (string, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return render.Render(doc)
}

// Bundle renders several stored documents joined by the document
// separator, in the given order.
func (s *LibraryService) Bundle(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: bundle needs at least one document ID", domain.ErrInvalidInput)
	}

	docs := make([]domain.DigestDocument, 0, len(ids))
	for _, id := range ids {
		doc, err := s.store.Get(ctx, id)
		if err != nil {
			return "", fmt.Errorf("bundle %s: %w", id, err)
		}
		docs = append(docs, *doc)
	}

	return render.Concatenate(docs)
}

// Import parses rendered markdown, possibly a bundle, and stores every
// document it contains. Parsing is atomic: one malformed document
// rejects the whole input before anything is stored.
func (s *LibraryService) Import(ctx context.Context, markdown string) ([]domain.DigestDocument, error) {
	docs, err := render.Parse(markdown)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: input contains no documents", domain.ErrInvalidInput)
	}

	for i := range docs {
		if docs[i].ID == "" {
			docs[i].ID = uuid.NewString()
		}
		if err := s.store.Save(ctx, &docs[i]); err != nil {
			return nil, fmt.Errorf("import %q: %w", docs[i].Title, err)
		}
		logger.Info("imported digest %s (%s)", docs[i].ID, docs[i].Title)
	}

	return docs, nil
}
