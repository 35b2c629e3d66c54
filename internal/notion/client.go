// Package notion provides a client for creating pages in a Notion database.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	// PagesURL is the Notion create-page endpoint.
	PagesURL = "https://api.notion.com/v1/pages"

	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2021-08-16"

	// RateLimit is the average request rate Notion allows per integration.
	RateLimit = 3.0
)

// Client is a rate-limited HTTP client for the Notion pages API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	version    string
	pagesURL   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the integration token sent as a bearer credential.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithVersion overrides the Notion-Version header.
func WithVersion(v string) ClientOption {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom pages endpoint (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.pagesURL = u
	}
}

// NewClient creates a new Notion API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		version:    DefaultVersion,
		pagesURL:   PagesURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreatePage creates a page. Only an HTTP 200 response counts as success.
func (c *Client) CreatePage(ctx context.Context, page PageRequest) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshaling page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pagesURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return parseError(resp)
}

// parseError builds an APIError from a failed response.
func parseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		apiErr.Message = fmt.Sprintf("(failed to read response body: %v)", err)
		return apiErr
	}

	var er errorResponse
	if json.Unmarshal(data, &er) == nil && er.Object == "error" {
		apiErr.Code = er.Code
		apiErr.Message = er.Message
		return apiErr
	}
	apiErr.Code = "unknown"
	apiErr.Message = string(data)
	return apiErr
}
