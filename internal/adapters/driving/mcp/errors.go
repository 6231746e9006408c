// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the digest composer. It lets AI assistants compose digests and
// read the stored library.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
