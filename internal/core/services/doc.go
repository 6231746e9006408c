// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ComposerService turns a brief into a digest document; LibraryService
// manages stored digests and their rendered forms.
package services
