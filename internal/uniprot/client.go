// Package uniprot is a small client for the UniProt REST API: ID mapping
// jobs and UniProtKB search with TSV output.
package uniprot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://rest.uniprot.org"

type Client struct {
	BaseURL      string
	HTTP         *http.Client
	PollInterval time.Duration // between ID mapping status checks
}

// NewClient returns a client without a request timeout; calls are bounded
// only by the caller's context.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTP:         &http.Client{},
		PollInterval: 3 * time.Second,
	}
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("uniprot: %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

func (c *Client) do(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("uniprot: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("uniprot: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, resp.Header, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("uniprot: build request: %w", err)
	}
	return c.do(req)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
