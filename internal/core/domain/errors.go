package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocument indicates a digest document failed validation.
	// A document that fails validation is rejected whole; no partial
	// output is ever emitted for it.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrMalformedReference indicates a reference URL is not an absolute URI.
	ErrMalformedReference = errors.New("malformed reference")

	// ErrInvalidEncoding indicates content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrUnsupportedType indicates an unknown source or fetcher type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Composition degrades to deterministic template prose without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrFetchFailed indicates a source could not be retrieved.
	// A failed source is skipped; it does not abort the whole compose.
	ErrFetchFailed = errors.New("source fetch failed")

	// ErrRateLimited indicates the source API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoSources indicates a brief named no usable sources.
	ErrNoSources = errors.New("no sources")
)
