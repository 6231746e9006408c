// Package reddit fetches citations from reddit's public search endpoint.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.CitationFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://www.reddit.com"
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = 10

	// requestRate keeps us inside reddit's unauthenticated allowance
	// (roughly 1 request per second with bursts).
	requestRate = 1.0

	// userAgent identifies the client; reddit throttles blank agents hard.
	userAgent = "digest-cli/1.0 (research digest composer)"

	// maxExcerpts caps how many passages one thread contributes.
	maxExcerpts = 6

	// minExcerptLen drops one-liners that cannot carry a statistic.
	minExcerptLen = 40
)

// Config holds configuration for the reddit fetcher.
type Config struct {
	// BaseURL is the API base URL (default: https://www.reddit.com).
	BaseURL string

	// Limit is the maximum threads per query (default: 10).
	Limit int

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Fetcher pulls threads matching a search query.
type Fetcher struct {
	client  *http.Client
	baseURL string
	limit   int
	bucket  *rate.Limiter
}

// listing is the subset of reddit's search response we consume.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Permalink string `json:"permalink"`
				SelfText  string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// New creates a reddit fetcher.
func New(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limit:   cfg.Limit,
		bucket:  rate.NewLimiter(rate.Limit(requestRate), 2),
	}
}

// Type returns the source type this fetcher serves.
func (f *Fetcher) Type() domain.SourceType {
	return domain.SourceReddit
}

// Fetch searches reddit for the query and returns one citation per
// thread, with the self-text split into excerpt passages.
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]domain.Citation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if err := f.bucket.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/search.json?q=%s&limit=%d&sort=relevance",
		f.baseURL, url.QueryEscape(query), f.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: reddit search", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reddit returned status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrFetchFailed, err)
	}

	citations := make([]domain.Citation, 0, len(body.Data.Children))
	for _, child := range body.Data.Children {
		thread := child.Data
		if thread.Title == "" || thread.Permalink == "" {
			continue
		}
		citations = append(citations, domain.Citation{
			Title:      thread.Title,
			URL:        f.baseURL + thread.Permalink,
			SourceType: domain.SourceReddit,
			Excerpts:   excerpts(thread.SelfText),
		})
	}
	return citations, nil
}

// Close releases resources.
func (f *Fetcher) Close() error {
	return nil
}

// excerpts splits self-text into passages worth mining for statistics.
func excerpts(selfText string) []string {
	var out []string
	for _, para := range strings.Split(selfText, "\n") {
		para = strings.TrimSpace(para)
		if len(para) < minExcerptLen {
			continue
		}
		out = append(out, para)
		if len(out) == maxExcerpts {
			break
		}
	}
	return out
}
