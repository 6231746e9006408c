package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/render"
)

// ComposeInput is the input schema for the compose_digest tool.
type ComposeInput struct {
	Topic       string   `json:"topic" jsonschema:"the subject of the digest"`
	Angle       string   `json:"angle,omitempty" jsonschema:"optional framing, rendered as the subtitle"`
	Audience    string   `json:"audience,omitempty" jsonschema:"who the digest is written for"`
	Tone        string   `json:"tone,omitempty" jsonschema:"requested register, e.g. analytical"`
	Sources     []string `json:"sources,omitempty" jsonschema:"article URLs to fetch and cite"`
	RedditQuery string   `json:"reddit_query,omitempty" jsonschema:"reddit search query to pull threads from"`
	MaxFindings int      `json:"max_findings,omitempty" jsonschema:"cap on extracted findings (default 8)"`
	Save        bool     `json:"save,omitempty" jsonschema:"persist the digest to the library"`
}

// ComposeOutput is the output schema for the compose_digest tool.
type ComposeOutput struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	SourceCount        int    `json:"source_count"`
	Findings           int    `json:"findings"`
	Markdown           string `json:"markdown"`
	Saved              bool   `json:"saved"`
}

// RenderInput is the input schema for the render_digest tool.
type RenderInput struct {
	ID string `json:"id" jsonschema:"the stored digest ID"`
}

// RenderOutput is the output schema for the render_digest tool.
type RenderOutput struct {
	Markdown string `json:"markdown"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compose_digest",
		Description: "Compose a research digest from articles and reddit threads",
	}, s.handleCompose)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_digest",
		Description: "Render a stored digest as canonical markdown",
	}, s.handleRender)
}

// handleCompose handles the compose_digest tool invocation.
func (s *Server) handleCompose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComposeInput,
) (*mcp.CallToolResult, ComposeOutput, error) {
	if s.ports.Compose == nil {
		return nil, ComposeOutput{}, errors.New("compose service not available")
	}

	doc, err := s.ports.Compose.Compose(ctx, domain.Brief{
		Topic:       input.Topic,
		Angle:       input.Angle,
		Audience:    input.Audience,
		Tone:        input.Tone,
		Sources:     input.Sources,
		RedditQuery: input.RedditQuery,
		MaxFindings: input.MaxFindings,
	})
	if err != nil {
		return nil, ComposeOutput{}, err
	}

	saved := false
	if input.Save {
		if err := s.ports.Library.Save(ctx, doc); err != nil {
			return nil, ComposeOutput{}, err
		}
		saved = true
	}

	md, err := render.Render(doc)
	if err != nil {
		return nil, ComposeOutput{}, err
	}

	return nil, ComposeOutput{
		ID:                 doc.ID,
		Title:              doc.Title,
		ReadingTimeMinutes: doc.ReadingTimeMinutes,
		SourceCount:        doc.SourceCount,
		Findings:           len(doc.Findings),
		Markdown:           md,
		Saved:              saved,
	}, nil
}

// handleRender handles the render_digest tool invocation.
func (s *Server) handleRender(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	md, err := s.ports.Library.Render(ctx, input.ID)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	return nil, RenderOutput{Markdown: md}, nil
}
