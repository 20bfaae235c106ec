// Package social publishes statuses to a Mastodon instance.
package social

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// maxErrorBody caps how much of a failed response ends up in an error.
const maxErrorBody = 512

// Client posts statuses on behalf of one account.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client authenticating with a static access token.
func New(ctx context.Context, baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
}

// Post publishes status. It is not retried on failure.
func (c *Client) Post(ctx context.Context, status string) error {
	form := url.Values{"status": {status}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("failed to post status: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
