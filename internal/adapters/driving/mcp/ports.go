package mcp

import (
	"github.com/shaphero/digest-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Compose builds digests from briefs. Optional: without it the
	// compose tool reports an error but the library stays readable.
	Compose driving.ComposeService

	// Library manages stored digests.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
