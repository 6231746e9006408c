// Package memory provides in-memory store implementations used by tests
// and by ephemeral compose runs that skip persistence.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
)

// Ensure DigestStore implements the interface.
var _ driven.DigestStore = (*DigestStore)(nil)

// DigestStore is an in-memory implementation of driven.DigestStore.
type DigestStore struct {
	mu      sync.RWMutex
	digests map[string]domain.DigestDocument
}

// NewDigestStore creates a new in-memory digest store.
func NewDigestStore() *DigestStore {
	return &DigestStore{
		digests: make(map[string]domain.DigestDocument),
	}
}

// Save stores a composed document. Documents are immutable, so a
// duplicate ID is rejected.
func (s *DigestStore) Save(_ context.Context, doc *domain.DigestDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document needs an ID", domain.ErrInvalidInput)
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.digests[doc.ID]; ok {
		return fmt.Errorf("%w: digest %s", domain.ErrAlreadyExists, doc.ID)
	}
	stored := *doc
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.digests[doc.ID] = stored
	return nil
}

// Get retrieves a document by ID.
func (s *DigestStore) Get(_ context.Context, id string) (*domain.DigestDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.digests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List returns all stored documents, newest first.
func (s *DigestStore) List(_ context.Context) ([]domain.DigestDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.DigestDocument, 0, len(s.digests))
	for _, doc := range s.digests {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID > docs[j].ID
	})
	return docs, nil
}

// Delete removes a document.
func (s *DigestStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.digests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.digests, id)
	return nil
}
