package connectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

type stubFetcher struct {
	sourceType domain.SourceType
	closed     bool
}

func (s *stubFetcher) Type() domain.SourceType { return s.sourceType }
func (s *stubFetcher) Fetch(context.Context, string) ([]domain.Citation, error) {
	return nil, nil
}
func (s *stubFetcher) Close() error {
	s.closed = true
	return nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	reddit := &stubFetcher{sourceType: domain.SourceReddit}
	r.Register(reddit)

	got, err := r.Fetcher(domain.SourceReddit)
	require.NoError(t, err)
	assert.Same(t, reddit, got)

	_, err = r.Fetcher(domain.SourceArticle)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry()
	reddit := &stubFetcher{sourceType: domain.SourceReddit}
	article := &stubFetcher{sourceType: domain.SourceArticle}
	r.Register(reddit)
	r.Register(article)

	require.NoError(t, r.Close())
	assert.True(t, reddit.closed)
	assert.True(t, article.closed)
}
