package domain

import (
	"fmt"
	"strings"
)

// DefaultMaxFindings caps how many findings a compose extracts when the
// brief does not say otherwise.
const DefaultMaxFindings = 8

// Brief describes a requested digest before composition.
type Brief struct {
	// Topic is the subject of the analysis. Required.
	Topic string

	// Angle is the optional framing, rendered as the subtitle.
	Angle string

	// Audience is who the analysis is written for.
	Audience string

	// Tone is the requested register, e.g. "analytical".
	Tone string

	// Sources are article URLs to fetch and cite.
	Sources []string

	// RedditQuery is an optional reddit search to pull threads from.
	// Empty means no reddit sourcing.
	RedditQuery string

	// MaxFindings caps extracted findings; 0 means DefaultMaxFindings.
	MaxFindings int
}

// Validate checks the brief is usable.
func (b *Brief) Validate() error {
	if strings.TrimSpace(b.Topic) == "" {
		return fmt.Errorf("%w: brief topic is required", ErrInvalidInput)
	}
	if len(b.Sources) == 0 && b.RedditQuery == "" {
		return fmt.Errorf("%w: brief names no source URLs and no reddit query", ErrNoSources)
	}
	if b.MaxFindings < 0 {
		return fmt.Errorf("%w: negative max findings", ErrInvalidInput)
	}
	return nil
}

// FindingLimit returns the effective finding cap.
func (b *Brief) FindingLimit() int {
	if b.MaxFindings > 0 {
		return b.MaxFindings
	}
	return DefaultMaxFindings
}
