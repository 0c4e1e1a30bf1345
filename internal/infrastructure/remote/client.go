// Package remote implements the optional sync backend client and the
// orchestration that reconciles local stores with it.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// Client talks to the sync backend over HTTP. Each category is an opaque
// JSON payload stored under the user id.
type Client struct {
	endpoint   string
	userID     string
	httpClient *http.Client
}

// NewClient creates a sync client. An empty endpoint or user id leaves the
// client disabled.
func NewClient(settings domain.SyncSettings, userID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	return &Client{
		endpoint:   strings.TrimRight(settings.Endpoint, "/"),
		userID:     userID,
		httpClient: httpClient,
	}
}

// Enabled reports whether the client has everything it needs to talk to the
// backend.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.userID != ""
}

func (c *Client) categoryURL(category string) string {
	return fmt.Sprintf("%s/users/%s/%s", c.endpoint, url.PathEscape(c.userID), url.PathEscape(category))
}

// Fetch retrieves the remote payload for a category. A 404 means the remote
// has nothing for this category yet and returns nil without error.
func (c *Client) Fetch(ctx context.Context, category string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.categoryURL(category), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync fetch %s: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sync fetch %s: HTTP %d: %s", category, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// Push uploads the local payload for a category.
func (c *Client) Push(ctx context.Context, category string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.categoryURL(category), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sync push %s: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sync push %s: HTTP %d: %s", category, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

var _ ports.SyncClient = (*Client)(nil)
