package driving

import (
	"context"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// LibraryService manages the store of composed digests and their
// rendered forms.
type LibraryService interface {
	// Save persists a composed document.
	Save(ctx context.Context, doc *domain.DigestDocument) error

	// List returns stored documents, newest first.
	List(ctx context.Context) ([]domain.DigestDocument, error)

	// Get retrieves one document by ID.
	Get(ctx context.Context, id string) (*domain.DigestDocument, error)

	// Delete removes a document.
	Delete(ctx context.Context, id string) error

	// Render returns the canonical markdown for a stored document.
	Render(ctx context.Context, id string) (string, error)

	// Bundle renders several stored documents joined by the document
	// separator, preserving the given order.
	Bundle(ctx context.Context, ids []string) (string, error)

	// Import parses rendered markdown (possibly a bundle) back into
	// documents and stores each one. Returns the stored documents.
	Import(ctx context.Context, markdown string) ([]domain.DigestDocument, error)
}
