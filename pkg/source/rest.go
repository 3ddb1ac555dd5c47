package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arborgraph/arbor/pkg/errors"
	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/httputil"
)

// RESTSource fetches members from the site's REST endpoint with retry on
// transient failures. 5xx responses and network errors are retried with
// exponential backoff; 4xx responses are permanent.
type RESTSource struct {
	url        string
	client     *http.Client
	retryDelay time.Duration
}

// NewRESTSource creates a source fetching from url. A nil client uses a
// default with a 30 second timeout.
func NewRESTSource(url string, client *http.Client) *RESTSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RESTSource{url: url, client: client, retryDelay: time.Second}
}

// Fetch performs the read call, retrying transient failures.
func (s *RESTSource) Fetch(ctx context.Context) ([]family.Member, error) {
	var members []family.Member

	err := httputil.Retry(ctx, 3, s.retryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return &httputil.RetryableError{Err: fmt.Errorf("GET %s: %s", s.url, resp.Status)}
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("GET %s: %s", s.url, resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return json.Unmarshal(body, &members)
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch members from %s", s.url)
	}
	return members, nil
}

// Description identifies the endpoint for logging and cache keys.
func (s *RESTSource) Description() string {
	return "rest:" + s.url
}

var _ Source = (*RESTSource)(nil)
