package connectors

import (
	"fmt"
	"sync"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.FetcherRegistry = (*Registry)(nil)

// Registry maps source types to their fetchers.
type Registry struct {
	mu       sync.RWMutex
	fetchers map[domain.SourceType]driven.CitationFetcher
}

// NewRegistry creates an empty fetcher registry.
func NewRegistry() *Registry {
	return &Registry{
		fetchers: make(map[domain.SourceType]driven.CitationFetcher),
	}
}

// Register adds a fetcher under its Type(). A later registration for
// the same type replaces the earlier one.
func (r *Registry) Register(f driven.CitationFetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchers[f.Type()] = f
}

// Fetcher returns the fetcher registered for the type.
func (r *Registry) Fetcher(t domain.SourceType) (driven.CitationFetcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fetchers[t]
	if !ok {
		return nil, fmt.Errorf("%w: no fetcher for source type %q", domain.ErrUnsupportedType, t)
	}
	return f, nil
}

// Close closes every registered fetcher, returning the first error.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for _, f := range r.fetchers {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
