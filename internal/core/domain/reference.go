package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// SourceType classifies where a reference came from.
type SourceType string

// Known source types.
const (
	// SourceReddit is a reddit thread or comment page.
	SourceReddit SourceType = "reddit"

	// SourceArticle is any other web article.
	SourceArticle SourceType = "article"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	return t == SourceReddit || t == SourceArticle
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// InferSourceType classifies a URL by its host. Anything that is not a
// reddit domain is an article.
func InferSourceType(rawURL string) SourceType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SourceArticle
	}
	host := strings.ToLower(u.Hostname())
	if host == "reddit.com" || host == "redd.it" ||
		strings.HasSuffix(host, ".reddit.com") || strings.HasSuffix(host, ".redd.it") {
		return SourceReddit
	}
	return SourceArticle
}

// Reference is a cited external source.
type Reference struct {
	// Title is the source title as cited.
	Title string

	// URL is the absolute location of the source.
	URL string

	// SourceType is inferred from the URL host at composition time.
	SourceType SourceType
}

// Validate checks that the URL is a well-formed absolute URI and the
// source type is known.
func (r *Reference) Validate() error {
	if !utf8.ValidString(r.Title) || !utf8.ValidString(r.URL) {
		return fmt.Errorf("%w: reference %q", ErrInvalidEncoding, r.Title)
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformedReference, r.URL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URI", ErrMalformedReference, r.URL)
	}
	if !r.SourceType.IsValid() {
		return fmt.Errorf("%w: unknown source type %q", ErrMalformedReference, r.SourceType)
	}
	return nil
}

// Citation is raw material fetched from a source before synthesis.
// It is the fetcher's output: a reference plus the excerpts findings
// are mined from.
type Citation struct {
	// Title is the fetched page or thread title.
	Title string

	// URL is the absolute location the content was fetched from.
	URL string

	// SourceType classifies the origin.
	SourceType SourceType

	// Excerpts are text passages pulled from the source.
	Excerpts []string
}

// Reference converts the citation into its citable form.
func (c *Citation) Reference() Reference {
	return Reference{
		Title:      c.Title,
		URL:        c.URL,
		SourceType: c.SourceType,
	}
}

// Confidence returns the flat confidence value findings from this
// citation carry.
func (c *Citation) Confidence() int {
	if c.SourceType == SourceReddit {
		return ConfidenceForum
	}
	return ConfidenceArticle
}
