// Package tui provides an interactive terminal browser for the digest
// library. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"errors"

	"github.com/shaphero/digest-cli/internal/core/ports/driving"
)

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("tui: library service is required")

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Library manages stored digests.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
