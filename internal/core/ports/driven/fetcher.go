package driven

import (
	"context"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// CitationFetcher pulls citations from one kind of source.
// Each source type (reddit, article) has its own implementation.
type CitationFetcher interface {
	// Type returns the source type this fetcher serves.
	Type() domain.SourceType

	// Fetch retrieves citations for a target. For the article fetcher
	// the target is a URL; for reddit it is a search query.
	// Fetch failures wrap domain.ErrFetchFailed so callers can skip
	// the source without aborting the compose.
	Fetch(ctx context.Context, target string) ([]domain.Citation, error)

	// Close releases resources.
	Close() error
}

// FetcherRegistry selects the fetcher for a source type.
type FetcherRegistry interface {
	// Fetcher returns the fetcher registered for the type.
	// Returns domain.ErrUnsupportedType if none is registered.
	Fetcher(t domain.SourceType) (CitationFetcher, error)

	// Register adds a fetcher under its Type().
	Register(f CitationFetcher)
}
