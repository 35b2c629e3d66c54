// Package aladin provides a client for the Aladin TTB item search API.
package aladin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bookrecord/bookrec/internal/book"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Aladin item search endpoint.
	BaseURL = "http://www.aladin.co.kr/ttb/api/ItemSearch.aspx"

	// APIVersion is the response schema version requested from Aladin.
	APIVersion = "20131101"

	// MaxResults is the largest page Aladin returns for a search.
	MaxResults = 10

	// RateLimit keeps interactive use well under the daily quota.
	RateLimit = 2.0
)

// Client is a rate-limited HTTP client for the Aladin search API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	ttbKey     string
	baseURL    string
	maxResults int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTTBKey sets the TTB API key.
func WithTTBKey(key string) ClientOption {
	return func(c *Client) {
		c.ttbKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMaxResults sets the number of results requested, capped at MaxResults.
func WithMaxResults(n int) ClientOption {
	return func(c *Client) {
		if n > 0 && n <= MaxResults {
			c.maxResults = n
		}
	}
}

// NewClient creates a new Aladin API client.
// Requests are bounded only by the caller's context.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		maxResults: MaxResults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the subset of the ItemSearch response we use.
type searchResponse struct {
	ErrorCode    int              `json:"errorCode"`
	ErrorMessage string           `json:"errorMessage"`
	TotalResults int              `json:"totalResults"`
	Items        []book.Candidate `json:"item"`
}

// buildQuery returns the ItemSearch query parameters for a title search.
func (c *Client) buildQuery(query string) url.Values {
	q := url.Values{}
	q.Set("TTBKey", c.ttbKey)
	q.Set("Query", query)
	q.Set("Output", "JS")
	q.Set("Version", APIVersion)
	q.Set("Cover", "Big")
	q.Set("MaxResults", strconv.Itoa(c.maxResults))
	return q
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}
	return nil
}

// Search looks up books matching query. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]book.Candidate, error) {
	if c.ttbKey == "" {
		return nil, fmt.Errorf("%w: TTB key not set", ErrAuthError)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+c.buildQuery(query).Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: parsing search results: %v", ErrInvalidResponse, err)
	}
	if result.ErrorCode != 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       result.ErrorCode,
			Message:    result.ErrorMessage,
		}
	}

	items := result.Items
	if len(items) > c.maxResults {
		items = items[:c.maxResults]
	}
	if items == nil {
		items = []book.Candidate{}
	}
	return items, nil
}
