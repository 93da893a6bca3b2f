package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/euanh/inforad/internal/app"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client counts open pull requests and issues via the github search api.
// This struct is an adapter for app.CodeHost.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	responseMaxSize int
}

var _ app.CodeHost = &Client{}

// NewClient creates new github client.
// authToken is optional.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		responseMaxSize: 1024 * 1024,
	}

	return &c
}

// OpenPullRequestCount returns the number of open pull requests in given repository.
func (c *Client) OpenPullRequestCount(ctx context.Context, owner string, repo string) (int, error) {
	if owner == "" {
		return 0, app.InvalidRequestError("repository owner cannot be empty")
	}
	if repo == "" {
		return 0, app.InvalidRequestError("repository name cannot be empty")
	}

	q := fmt.Sprintf("repo:%s/%s is:pr is:open", owner, repo)

	return c.searchCount(ctx, q)
}

// OpenIssueCount returns the number of open issues in given repository.
// label is optional and restricts the count to issues carrying it.
func (c *Client) OpenIssueCount(ctx context.Context, owner string, repo string, label string) (int, error) {
	if owner == "" {
		return 0, app.InvalidRequestError("repository owner cannot be empty")
	}
	if repo == "" {
		return 0, app.InvalidRequestError("repository name cannot be empty")
	}

	q := fmt.Sprintf("repo:%s/%s is:issue is:open", owner, repo)
	if label != "" {
		q += fmt.Sprintf(" label:%q", label)
	}

	return c.searchCount(ctx, q)
}

// searchCount runs an issue search and reads the total count only. A single
// result per page keeps the response small.
func (c *Client) searchCount(ctx context.Context, query string) (int, error) {
	u, err := url.Parse(c.address + "/search/issues")
	if err != nil {
		return 0, fmt.Errorf("invalid url: %w", err)
	}

	v := make(url.Values)
	v.Set("q", query)
	v.Set("per_page", "1")
	u.RawQuery = v.Encode()

	httpReq, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating http request: %w", err)
	}

	body, _, err := c.makeRequest(ctx, httpReq, c.responseMaxSize)
	if err != nil {
		return 0, fmt.Errorf("making http request: %w", err)
	}

	var resp countResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("unmarshalling response: %w", err)
	}
	if resp.IncompleteResults {
		return 0, errors.New("search returned incomplete results")
	}

	return resp.TotalCount, nil
}

func (c *Client) makeRequest(ctx context.Context, req *http.Request, maxBytes int) ([]byte, int, error) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "token "+c.authToken)
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, 0, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNoContent {
		return nil, resp.StatusCode, nil
	}
	if resp.StatusCode/100 > 3 {
		if c.checkRateLimitExceeded(&resp.Header) {
			return nil, resp.StatusCode, app.TooManyRequestsError("rate limit exceeded")
		}
		return nil, resp.StatusCode, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading http response body: %w", err)
	}

	return b, resp.StatusCode, nil
}

func (c *Client) checkRateLimitExceeded(h *http.Header) bool {
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit == 0 {
			return true
		}
	}
	return false
}
