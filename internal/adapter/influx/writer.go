package influx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/euanh/inforad/internal/app"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Writer stores sample batches in an influxdb v1 database over its http
// write endpoint.
type Writer struct {
	doer     HTTPDoer
	address  string
	database string
	username string
	password string

	errorBodyMaxSize int
}

var _ app.SampleWriter = &Writer{}

// NewWriter creates new Writer instance.
// username and password are optional.
func NewWriter(doer HTTPDoer, address string, database string, username string, password string) *Writer {
	return &Writer{
		doer:     doer,
		address:  address,
		database: database,
		username: username,
		password: password,

		errorBodyMaxSize: 8 * 1024,
	}
}

// Write posts the batch as line protocol. Empty batches are a no-op.
func (w *Writer) Write(ctx context.Context, samples []app.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	body, err := EncodeBatch(samples)
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}

	u, err := url.Parse(w.address + "/write")
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	v := make(url.Values)
	v.Set("db", w.database)
	v.Set("precision", "ns")
	u.RawQuery = v.Encode()

	httpReq, err := http.NewRequest(http.MethodPost, u.String(), strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if w.username != "" {
		httpReq.SetBasicAuth(w.username, w.password)
	}

	resp, err := w.doer.Do(httpReq.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("doing http request: %w", err)
	}
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	// Influx answers a successful write with 204.
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, int64(w.errorBodyMaxSize)))
		return fmt.Errorf("got invalid http status code: %d, body: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return nil
}
