package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/hermes"
)

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the remote services at compile time.
var (
	_ hermes.SettingsService = (*Client)(nil)
	_ hermes.SearchService   = (*Client)(nil)
	_ hermes.Asker           = (*Client)(nil)
)

// Client talks to a running hermes server.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for the server at baseURL, e.g.
// "http://127.0.0.1:8000". A missing scheme defaults to http.
func NewClient(baseURL string, opts ...Option) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// DirPath returns the server's directory, or ENOTFOUND when unset.
func (c *Client) DirPath(ctx context.Context) (string, error) {
	var resp DirPathResponse
	if err := c.do(ctx, http.MethodGet, "/api/dir_path", nil, &resp); err != nil {
		return "", err
	}
	return resp.DirPath, nil
}

// SetDirPath changes the server's directory. The server validates the path
// against its own filesystem.
func (c *Client) SetDirPath(ctx context.Context, path string) error {
	_, err := c.SetDir(ctx, path)
	return err
}

// SetDir changes the server's directory and returns the cleaned path the
// server stored.
func (c *Client) SetDir(ctx context.Context, path string) (string, error) {
	var resp DirPathResponse
	if err := c.do(ctx, http.MethodPost, "/api/dir_path", &DirPathRequest{DirPath: path}, &resp); err != nil {
		return "", err
	}
	return resp.DirPath, nil
}

// Search runs a query on the server.
func (c *Client) Search(ctx context.Context, query string, opts hermes.SearchOptions) ([]*hermes.SearchResult, error) {
	var results []*hermes.SearchResult
	if err := c.do(ctx, http.MethodPost, "/api/search", &SearchRequest{Text: query, Limit: opts.Limit}, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*hermes.SearchResult{}
	}
	return results, nil
}

// Ask asks the server a question about the indexed PDFs.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var resp AskResponse
	if err := c.do(ctx, http.MethodPost, "/api/ask", &AskRequest{Text: question}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// Status returns the server's index summary.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends a JSON request and decodes a JSON response into out. A 204 answer
// is reported as ENOTFOUND; error statuses are mapped back to error codes.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return hermes.Errorf(hermes.EUNAVAILABLE, "server unreachable: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return hermes.Errorf(hermes.ENOTFOUND, "%s %s: no content", method, path)
	case resp.StatusCode >= 400:
		var e ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = fmt.Sprintf("HTTP %d for %s %s", resp.StatusCode, method, path)
		}
		return hermes.Errorf(FromErrorStatusCode(resp.StatusCode), "%s", e.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
