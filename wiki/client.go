// Package wiki provides a search/summary proxy over the public Wikipedia APIs.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ServiceError is a non-success response from a Wikipedia endpoint.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("wikipedia error (%d): %s", e.Status, e.Body)
}

// Client calls the Wikipedia search and page-summary APIs. These endpoints are
// unauthenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Wikipedia client. An empty baseURL targets the
// per-language wikipedia.org hosts; a non-empty one overrides the host for
// every language (used in tests).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) hostFor(lang string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return "https://" + lang + ".wikipedia.org"
}

// SearchHit is one raw hit from the search-list API. Snippet carries inline
// HTML markup as returned by the upstream.
type SearchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	PageID  int    `json:"pageid"`
}

type searchResponse struct {
	Query struct {
		Search []SearchHit `json:"search"`
	} `json:"query"`
}

// Search runs a search-list query against the given language wiki.
func (c *Client) Search(ctx context.Context, lang, query string, limit int) ([]SearchHit, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"format":   {"json"},
		"origin":   {"*"},
		"utf8":     {"1"},
	}

	reqURL := c.hostFor(lang) + "/w/api.php?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return result.Query.Search, nil
}

// PageSummary is the subset of the REST summary payload the proxy forwards.
type PageSummary struct {
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// Summary fetches the REST page summary for a title.
func (c *Client) Summary(ctx context.Context, lang, title string) (*PageSummary, error) {
	reqURL := c.hostFor(lang) + "/api/rest_v1/page/summary/" + url.PathEscape(title)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var summary PageSummary
	if err := json.Unmarshal(respBody, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &summary, nil
}
