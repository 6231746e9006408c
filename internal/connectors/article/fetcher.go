// Package article fetches citations from arbitrary web article URLs.
package article

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.CitationFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// maxExcerpts caps how many paragraphs one article contributes.
	maxExcerpts = 12

	// minExcerptLen drops navigation crumbs and bylines.
	minExcerptLen = 60
)

// Config holds configuration for the article fetcher.
type Config struct {
	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Fetcher pulls a single article page per target URL.
type Fetcher struct {
	client *http.Client
}

// New creates an article fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Type returns the source type this fetcher serves.
func (f *Fetcher) Type() domain.SourceType {
	return domain.SourceArticle
}

// Fetch retrieves the page at target and extracts its title and body
// paragraphs. The target must be an absolute URL.
func (f *Fetcher) Fetch(ctx context.Context, target string) ([]domain.Citation, error) {
	u, err := url.Parse(target)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", domain.ErrInvalidInput, target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrFetchFailed, u.Host, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrFetchFailed, err)
	}

	citation := domain.Citation{
		Title:      pageTitle(doc, u),
		URL:        target,
		SourceType: domain.InferSourceType(target),
		Excerpts:   paragraphs(doc),
	}
	return []domain.Citation{citation}, nil
}

// Close releases resources.
func (f *Fetcher) Close() error {
	return nil
}

// pageTitle prefers the og:title meta tag, then <title>, then the host.
func pageTitle(doc *goquery.Document, u *url.URL) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return u.Host
}

// paragraphs collects body text, leading with the og:description when
// present since it often carries the article's headline statistic.
func paragraphs(doc *goquery.Document) []string {
	var out []string
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); len(desc) >= minExcerptLen {
			out = append(out, desc)
		}
	}

	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) >= minExcerptLen {
			out = append(out, text)
		}
		return len(out) < maxExcerpts
	})
	return out
}
