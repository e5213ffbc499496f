// Package github is a small client for the GitHub REST endpoints the
// dataset builder reads: repository search, branch trees, blobs, commits,
// issues and releases.
//
// Requests are spaced by a token-bucket limiter. Each list endpoint reads a
// single page. There are no retries; a non-2xx response is a *StatusError.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// DefaultUserAgent is sent on every request.
const DefaultUserAgent = "Mozilla/5.0"

// Options configures a Client. The zero value talks to api.github.com
// without authentication or throttling.
type Options struct {
	BaseURL string
	Token   string
	// Interval is the minimum spacing between requests. Zero disables
	// throttling.
	Interval   time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Cache      BlobCache
}

// Client calls the GitHub REST API.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	userAgent string
	limiter   *rate.Limiter
	cache     BlobCache
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		http:      opts.HTTPClient,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		token:     opts.Token,
		userAgent: opts.UserAgent,
		cache:     opts.Cache,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultAPIURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if opts.Interval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(opts.Interval), 1)
	} else {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return c
}

// BaseURL returns the API root requests are made against.
func (c *Client) BaseURL() string { return c.baseURL }

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// getJSON waits for the limiter, issues a GET and decodes the body into v.
// rawURL may be absolute or relative to the base URL.
func (c *Client) getJSON(ctx context.Context, rawURL string, query url.Values, v any) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = c.baseURL + "/" + strings.TrimLeft(rawURL, "/")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("github: decode %s: %w", rawURL, err)
	}
	return nil
}
