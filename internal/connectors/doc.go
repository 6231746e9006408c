// Package connectors provides citation fetcher implementations and the
// registry that selects a fetcher by source type.
//
// Fetchers pull raw material (titles, URLs, excerpts) from the outside
// world; they never synthesise findings. A failed fetch wraps
// domain.ErrFetchFailed so the composer can skip the source instead of
// aborting the whole document.
package connectors
