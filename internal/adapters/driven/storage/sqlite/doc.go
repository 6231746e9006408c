// Package sqlite provides the persistent digest store backed by a
// single SQLite database file.
//
// The store keeps one row per digest plus child tables for sections,
// findings and references, all keyed by the digest ID with an ordering
// column. Digests are immutable: Save inserts, never updates, and a
// duplicate ID is rejected with domain.ErrAlreadyExists.
//
// Schema changes are applied through embedded migrations at open time.
package sqlite
