package driven

import "context"

// LLMService provides language model operations for section drafting.
// This is an optional service - when nil, composition degrades to
// deterministic template prose.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI (GPT models and compatible gateways)
type LLMService interface {
	// DraftSection writes the prose body for one digest section.
	// The request carries the topic, the section heading, and the
	// evidence the prose must stay within.
	DraftSection(ctx context.Context, req DraftRequest) (string, error)

	// Summarise compresses source excerpts into a short passage of at
	// most maxLength characters. Used for the executive summary.
	Summarise(ctx context.Context, content string, maxLength int) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to LLM prose.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// DraftRequest carries everything an LLM needs to draft one section.
type DraftRequest struct {
	// Topic is the digest topic.
	Topic string

	// Heading is the canonical section heading being drafted.
	Heading string

	// Audience is who the section is written for. May be empty.
	Audience string

	// Tone is the requested register. May be empty.
	Tone string

	// Evidence is the statistics and quotes the prose must not go
	// beyond, one bullet per line.
	Evidence string

	// MaxTokens caps the generation. Zero means the adapter default.
	MaxTokens int
}
