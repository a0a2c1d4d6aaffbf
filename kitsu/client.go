// Package kitsu is a minimal client for the Kitsu JSON:API that returns raw response bodies.
package kitsu

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kitsufix/kitsufix/constant"
	"github.com/kitsufix/kitsufix/log"
	"github.com/kitsufix/kitsufix/util"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues one GET per lookup key.
type Client struct {
	BaseURL        string
	HTTP           Doer
	UserAgent      string
	LiteralQueries bool
}

// Response is a successful upstream answer.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

// New returns a client for baseURL using doer.
func New(baseURL string, doer Doer) *Client {
	return &Client{
		BaseURL:   baseURL,
		HTTP:      doer,
		UserAgent: constant.UserAgent,
	}
}

// Base is the API base without a trailing slash, falling back to the public endpoint.
func (c *Client) Base() string {
	if c.BaseURL == "" {
		return constant.BaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// URL is the full request URL for key.
func (c *Client) URL(r Resource, key string) string {
	return c.Base() + "/" + r.Path(key, c.LiteralQueries)
}

// Get fetches key from r. Any non-2xx status yields a *StatusError.
func (c *Client) Get(ctx context.Context, r Resource, key string) (*Response, error) {
	url := c.URL(r, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	log.WithFields(log.Fields{"resource": r.String(), "key": key, "url": url}).Debug("requesting")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	log.WithFields(log.Fields{"url": url, "status": resp.StatusCode, "size": len(body)}).Debug("response received")

	return &Response{URL: url, StatusCode: resp.StatusCode, Body: body}, nil
}
