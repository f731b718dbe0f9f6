// Package wikipedia provides a client for the Wikipedia REST summary API
// and the MediaWiki full-text search API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org"
	defaultUserAgent = "gfgbq-verify/1.0 (https://github.com/ByteQuest-2025/GFGBQ-Team-team-99)"
)

// Client defines the Wikipedia operations used by the evidence pipeline.
type Client interface {
	// Summary fetches the page summary for an exact title. Returns (nil, nil)
	// when the page does not exist or has no extract.
	Summary(ctx context.Context, title string) (*PageSummary, error)
	// Search performs a full-text search and returns up to limit ranked titles.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// PageSummary is the parsed summary endpoint response.
type PageSummary struct {
	Title       string      `json:"title"`
	Extract     string      `json:"extract"`
	ContentURLs ContentURLs `json:"content_urls"`

	// URL is the best page URL: the canonical desktop URL when present,
	// otherwise one constructed from the requested title.
	URL string `json:"-"`
}

// ContentURLs holds the canonical page URLs from the summary response.
type ContentURLs struct {
	Desktop PageURL `json:"desktop"`
}

// PageURL holds a single page URL.
type PageURL struct {
	Page string `json:"page"`
}

// SearchResult is a single full-text search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Query struct {
		Search []SearchResult `json:"search"`
	} `json:"query"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithCacheTTL sets the summary cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *httpClient) {
		c.cache = gocache.New(ttl, 2*ttl)
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	cache   *gocache.Cache
	limiter *rate.Limiter
}

// NewClient creates a Wikipedia API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 8 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:   gocache.New(time.Hour, 2*time.Hour),
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NormalizeTitle turns free text into a summary-endpoint title: quotes
// stripped, whitespace trimmed, spaces replaced with underscores.
func NormalizeTitle(s string) string {
	s = strings.NewReplacer(`"`, "", "'", "", "“", "", "”", "").Replace(s)
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "_")
}

func (c *httpClient) Summary(ctx context.Context, title string) (*PageSummary, error) {
	normalized := NormalizeTitle(title)
	if normalized == "" {
		return nil, nil
	}

	if cached, found := c.cache.Get(normalized); found {
		summary := cached.(PageSummary)
		return &summary, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "wikipedia: rate limit wait")
	}

	reqURL := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(normalized))
	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: summary request")
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("wikipedia: summary unexpected status %d", status)
	}

	var summary PageSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, eris.Wrap(err, "wikipedia: unmarshal summary")
	}
	if summary.Extract == "" {
		return nil, nil
	}

	summary.URL = summary.ContentURLs.Desktop.Page
	if summary.URL == "" {
		summary.URL = fmt.Sprintf("%s/wiki/%s", c.baseURL, url.PathEscape(normalized))
	}

	c.cache.SetDefault(normalized, summary)
	return &summary, nil
}

func (c *httpClient) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "wikipedia: rate limit wait")
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", limit))
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())
	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: search request")
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("wikipedia: search unexpected status %d", status)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "wikipedia: unmarshal search")
	}
	return result.Query.Search, nil
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "read response body")
	}
	return body, resp.StatusCode, nil
}
