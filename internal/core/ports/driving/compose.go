package driving

import (
	"context"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// ComposeService builds digest documents from briefs.
type ComposeService interface {
	// Compose fetches the brief's sources, synthesises findings and
	// sections, and returns a validated document. The document is not
	// persisted; callers decide whether to save it.
	Compose(ctx context.Context, brief domain.Brief) (*domain.DigestDocument, error)
}
