// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CitationFetcher: Pulls citations from a source (reddit, article)
//   - FetcherRegistry: Selects the fetcher for a source type
//   - DigestStore: Digest document persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Drafts section prose. Without it, composition falls
//     back to deterministic template prose.
//   - PromptStore: User-editable prompt templates for the LLM. Without
//     it, adapters use their embedded defaults.
package driven
