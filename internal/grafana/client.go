package grafana

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// HTTPDoer can execute http requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// responseMaxSize limits the size of read api responses.
const responseMaxSize = 1024 * 1024

// Client talks to the grafana http api.
type Client struct {
	doer    HTTPDoer
	address string
	token   string
}

// NewClient creates a new Client instance.
func NewClient(doer HTTPDoer, address string, token string) *Client {
	return &Client{
		doer:    doer,
		address: address,
		token:   token,
	}
}

type importPayload struct {
	Dashboard Dashboard `json:"dashboard"`
	Overwrite bool      `json:"overwrite"`
}

// ImportDashboard creates or replaces a dashboard identified by its title.
func (c *Client) ImportDashboard(ctx context.Context, d Dashboard) error {
	body, err := jsoniter.Marshal(importPayload{
		Dashboard: d,
		Overwrite: true,
	})
	if err != nil {
		return fmt.Errorf("encoding dashboard: %w", err)
	}

	url := c.address + "/api/dashboards/db"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		// Drain buffer, so http client can reuse connection.
		io.CopyN(io.Discard, resp.Body, 1024) // nolint: errcheck
		resp.Body.Close()                     // nolint: errcheck
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseMaxSize))

		return fmt.Errorf("grafana responded with status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	return nil
}
