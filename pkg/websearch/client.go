// Package websearch provides a client for the Brave web search API.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.search.brave.com/res/v1"

// Client performs web search queries.
type Client interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"description"`
	URL     string `json:"url"`
}

type searchResponse struct {
	Web struct {
		Results []Result `json:"results"`
	} `json:"web"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a web search client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 8 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if count <= 0 || count > 20 {
		count = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", count))
	reqURL := fmt.Sprintf("%s/web/search?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "websearch: unmarshal response")
	}

	results := result.Web.Results
	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "websearch: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "websearch: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "websearch: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("websearch: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
