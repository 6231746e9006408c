package driven

import (
	"context"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// DigestStore persists composed digest documents.
// Documents are immutable: there is Save, never Update.
type DigestStore interface {
	// Save stores a composed document with its sections, findings and
	// references. Returns domain.ErrAlreadyExists for a duplicate ID.
	Save(ctx context.Context, doc *domain.DigestDocument) error

	// Get retrieves a document by ID, fully reassembled.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.DigestDocument, error)

	// List returns stored documents in reverse composition order.
	// The returned documents carry full sections, findings and references.
	List(ctx context.Context) ([]domain.DigestDocument, error)

	// Delete removes a document and its child rows.
	Delete(ctx context.Context, id string) error
}
