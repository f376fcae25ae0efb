package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/httputil"
)

// Source fetches the raw bytes of a dataset. Implementations exist for
// local files, HTTP resources, and MongoDB collections.
type Source interface {
	// Name describes the source for error messages and logs.
	Name() string

	// Fetch returns the raw dataset bytes.
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads a dataset from a local JSON file.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Fetch reads the file's contents.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s", s.Path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read dataset file %s", s.Path)
	}
	return data, nil
}

// HTTPSource fetches a dataset from an HTTP URL. Transient failures
// (network errors, 5xx, 429) are retried with exponential backoff.
type HTTPSource struct {
	URL string

	// Client is the HTTP client to use. Defaults to a client with a
	// 30-second timeout.
	Client *http.Client

	// RetryDelay is the initial backoff delay. Defaults to one second.
	RetryDelay time.Duration
}

// Name returns the URL.
func (s HTTPSource) Name() string { return s.URL }

// Fetch performs the GET request with retries.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	delay := s.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	var body []byte
	err := httputil.Retry(ctx, 3, delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return httputil.Retryable(err)
		}
		defer resp.Body.Close()

		if httputil.RetryableStatus(resp.StatusCode) {
			return httputil.Retryable(fmt.Errorf("GET %s: %s", s.URL, resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: %s", s.URL, resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", s.URL)
	}
	return body, nil
}
