package mcp

import (
	"context"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

func readRequest(uri string) *sdk.ReadResourceRequest {
	return &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleDigestsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns digest index", func(t *testing.T) {
		library := &mockLibraryService{docs: []domain.DigestDocument{*sampleDigest()}}
		server, err := NewServer(&Ports{Library: library})
		require.NoError(t, err)

		result, err := server.handleDigestsResource(ctx, readRequest("digest://digests"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "digest-1"`)
		assert.Contains(t, result.Contents[0].Text, `"title": "Enterprise AI Adoption"`)
	})

	t.Run("empty library returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Library: &mockLibraryService{}})
		require.NoError(t, err)

		result, err := server.handleDigestsResource(ctx, readRequest("digest://digests"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDigestContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rendered markdown", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Library: &mockLibraryService{doc: sampleDigest()},
		})
		require.NoError(t, err)

		result, err := server.handleDigestContentResource(ctx, readRequest("digest://digests/digest-1"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "# Enterprise AI Adoption")
	})

	t.Run("malformed URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Library: &mockLibraryService{doc: sampleDigest()}})
		require.NoError(t, err)

		_, err = server.handleDigestContentResource(ctx, readRequest("digest://other/foo"))
		assert.Error(t, err)
	})
}

func TestExtractDigestID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"digest://digests/abc-123", "abc-123"},
		{"digest://digests/", ""},
		{"digest://other/abc", ""},
		{"notes://digests/abc", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractDigestID(tt.uri), tt.uri)
	}
}
