// Package domain defines the core business entities for the digest CLI.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DigestDocument: A composed research digest with its sections
//   - Finding: A statistic extracted from a source with supporting quote
//   - Reference: A cited external source
//   - Citation: Raw material fetched from a source before synthesis
//   - Brief: The requested topic and composition parameters
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
