package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for digest resources.
const uriScheme = "digest://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing stored digests.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "digests",
		Name:        "digests",
		Description: "List of all stored digests, newest first",
		MIMEType:    "application/json",
	}, s.handleDigestsResource)

	// Template for a digest's rendered markdown.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "digests/{digestId}",
		Name:        "digest-markdown",
		Description: "A stored digest rendered as canonical markdown",
		MIMEType:    "text/markdown",
	}, s.handleDigestContentResource)
}

// handleDigestsResource returns the stored digest index.
func (s *Server) handleDigestsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing digests: %w", err)
	}

	// Build simplified digest list.
	type digestInfo struct {
		ID                 string `json:"id"`
		Title              string `json:"title"`
		Topic              string `json:"topic,omitempty"`
		ReadingTimeMinutes int    `json:"reading_time_minutes"`
		SourceCount        int    `json:"source_count"`
	}

	infos := make([]digestInfo, len(docs))
	for i := range docs {
		infos[i] = digestInfo{
			ID:                 docs[i].ID,
			Title:              docs[i].Title,
			Topic:              docs[i].Topic,
			ReadingTimeMinutes: docs[i].ReadingTimeMinutes,
			SourceCount:        docs[i].SourceCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling digests: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDigestContentResource returns a digest's rendered markdown.
func (s *Server) handleDigestContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract digestId from URI: digest://digests/{digestId}
	digestID := extractDigestID(req.Params.URI)
	if digestID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	md, err := s.ports.Library.Render(ctx, digestID)
	if err != nil {
		return nil, fmt.Errorf("rendering digest: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     md,
		}},
	}, nil
}

// extractDigestID extracts the digest ID from a URI like digest://digests/{digestId}.
func extractDigestID(uri string) string {
	const prefix = uriScheme + "digests/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
