package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/euanh/inforad/internal/app"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// API is the low level Jira surface needed by the tracker: saved filters,
// issue search and the sprint endpoints.
type API interface {
	FilterJQL(ctx context.Context, filterID int) (string, error)
	SearchTotal(ctx context.Context, jql string) (int, error)
	SearchFieldSum(ctx context.Context, jql string, fieldID string) (float64, error)
	ClosedSprints(ctx context.Context, boardID int64) ([]Sprint, error)
	SprintCompletedEstimate(ctx context.Context, boardID int64, sprintID int64) (float64, error)
}

// Sprint is a single board sprint as reported by the agile api.
type Sprint struct {
	ID    int64
	Name  string
	State string
}

// ErrNoEstimate is returned when a sprint report carries no completed
// estimate sum. Such sprints are excluded from velocity calculations.
var ErrNoEstimate = errors.New("jira: sprint report has no completed estimate")

// Client is a rest client for the Jira v2, agile and greenhopper apis.
//
// Token auth wins over basic auth when both are configured.
type Client struct {
	doer     HTTPDoer
	address  string
	token    string
	username string
	password string

	pageSize        int
	responseMaxSize int
	retryWaitTime   time.Duration
	numRetries      int
}

var _ API = &Client{}

// NewClient creates new jira client.
func NewClient(doer HTTPDoer, address string, token string, username string, password string) *Client {
	c := Client{
		doer:     doer,
		address:  address,
		token:    token,
		username: username,
		password: password,

		pageSize:        100,
		responseMaxSize: 1024 * 1024 * 10,
		retryWaitTime:   300 * time.Millisecond,
		numRetries:      3,
	}

	return &c
}

// FilterJQL returns the JQL query of a saved filter.
func (c *Client) FilterJQL(ctx context.Context, filterID int) (string, error) {
	if filterID <= 0 {
		return "", app.InvalidRequestError("filter id must be greater than zero")
	}

	body, err := c.get(ctx, "/rest/api/2/filter/"+strconv.Itoa(filterID), nil)
	if err != nil {
		return "", err
	}

	var resp filterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.Wrap(err, "unmarshalling response")
	}
	if resp.JQL == "" {
		return "", errors.Errorf("filter %d has empty jql", filterID)
	}

	return resp.JQL, nil
}

// SearchTotal returns the number of issues matching given jql.
// Asks for a single result page and reads the total field only.
func (c *Client) SearchTotal(ctx context.Context, jql string) (int, error) {
	if jql == "" {
		return 0, app.InvalidRequestError("jql cannot be empty")
	}

	v := make(url.Values)
	v.Set("jql", jql)
	v.Set("maxResults", "1")
	v.Set("fields", "key")

	body, err := c.get(ctx, "/rest/api/2/search", v)
	if err != nil {
		return 0, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, errors.Wrap(err, "unmarshalling response")
	}

	return resp.Total, nil
}

// SearchFieldSum sums a numeric issue field over all issues matching given
// jql. Issues with a null field are ignored.
func (c *Client) SearchFieldSum(ctx context.Context, jql string, fieldID string) (float64, error) {
	if jql == "" {
		return 0, app.InvalidRequestError("jql cannot be empty")
	}
	if fieldID == "" {
		return 0, app.InvalidRequestError("field id cannot be empty")
	}

	var sum float64
	startAt := 0
	for {
		v := make(url.Values)
		v.Set("jql", jql)
		v.Set("startAt", strconv.Itoa(startAt))
		v.Set("maxResults", strconv.Itoa(c.pageSize))
		v.Set("fields", fieldID)

		body, err := c.get(ctx, "/rest/api/2/search", v)
		if err != nil {
			return 0, err
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, errors.Wrap(err, "unmarshalling response")
		}

		sum += resp.FieldSum(fieldID)

		startAt += len(resp.Issues)
		if len(resp.Issues) == 0 || startAt >= resp.Total {
			break
		}
	}

	return sum, nil
}

// ClosedSprints returns all closed sprints of a board, oldest first.
func (c *Client) ClosedSprints(ctx context.Context, boardID int64) ([]Sprint, error) {
	if boardID <= 0 {
		return nil, app.InvalidRequestError("board id must be greater than zero")
	}

	var sprints []Sprint
	startAt := 0
	for {
		v := make(url.Values)
		v.Set("state", "closed")
		v.Set("startAt", strconv.Itoa(startAt))
		v.Set("maxResults", strconv.Itoa(c.pageSize))

		path := "/rest/agile/1.0/board/" + strconv.FormatInt(boardID, 10) + "/sprint"
		body, err := c.get(ctx, path, v)
		if err != nil {
			return nil, err
		}

		var resp sprintsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, errors.Wrap(err, "unmarshalling response")
		}

		sprints = append(sprints, resp.ToSprints()...)

		startAt += len(resp.Values)
		if resp.IsLast || len(resp.Values) == 0 {
			break
		}
	}

	return sprints, nil
}

// SprintCompletedEstimate returns the completed estimate sum from the sprint
// report. Returns ErrNoEstimate when the report has no such value.
func (c *Client) SprintCompletedEstimate(ctx context.Context, boardID int64, sprintID int64) (float64, error) {
	if boardID <= 0 || sprintID <= 0 {
		return 0, app.InvalidRequestError("board and sprint ids must be greater than zero")
	}

	v := make(url.Values)
	v.Set("rapidViewId", strconv.FormatInt(boardID, 10))
	v.Set("sprintId", strconv.FormatInt(sprintID, 10))

	body, err := c.get(ctx, "/rest/greenhopper/1.0/rapid/charts/sprintreport", v)
	if err != nil {
		return 0, err
	}

	var resp sprintReportResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, errors.Wrap(err, "unmarshalling response")
	}
	value := resp.Contents.CompletedIssuesEstimateSum.Value
	if value == nil {
		return 0, ErrNoEstimate
	}

	return *value, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u, err := url.Parse(c.address + path)
	if err != nil {
		return nil, errors.Wrap(err, "invalid url")
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < c.numRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.retryWaitTime * (1 << (attempt - 1)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, errors.Wrap(ctx.Err(), "waiting for retry")
			case <-timer.C:
			}
		}

		httpReq, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, errors.Wrap(err, "creating http request")
		}

		body, retriable, err := c.makeRequest(ctx, httpReq)
		if err == nil {
			return body, nil
		}
		if !retriable {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// makeRequest executes a single api call. The second return value tells
// whether the call may be retried (server errors and throttling only).
func (c *Client) makeRequest(ctx context.Context, req *http.Request) ([]byte, bool, error) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, false, errors.Wrap(err, "doing http request")
	}
	// Always drain body before close to allow connection reuse.
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, false, app.UnavailableError(fmt.Sprintf("jira authorization failed: status %d", resp.StatusCode))
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5 {
		return nil, true, errors.Errorf("got invalid http status code: %d", resp.StatusCode)
	}
	if resp.StatusCode/100 > 3 {
		return nil, false, errors.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(c.responseMaxSize)))
	if err != nil {
		return nil, false, errors.Wrap(err, "reading http response body")
	}

	return b, false, nil
}
