package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotModified is returned when the origin confirms the held validator is current.
var ErrNotModified = errors.New("feed not modified")

// StatusError is any response other than 200 or 304.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// TransportError covers connect, timeout and body read failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch feed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves one feed URL conditionally, holding the last ETag seen.
// It is not safe for concurrent use; each feed owns its own Fetcher.
type Fetcher struct {
	httpClient *http.Client
	url        string
	userAgent  string
	timeout    time.Duration
	etag       string
}

func NewFetcher(httpClient *http.Client, url, userAgent string, timeout time.Duration) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch returns the feed body, ErrNotModified, a *StatusError or a *TransportError.
// The stored ETag only changes on a 200 response that carries one.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if f.etag != "" {
		req.Header.Set("If-None-Match", f.etag)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return nil, ErrNotModified
	case http.StatusOK:
	default:
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if etag := resp.Header.Get("ETag"); etag != "" {
		f.etag = etag
	}

	return data, nil
}

// ETag returns the validator that will be sent with the next request.
func (f *Fetcher) ETag() string {
	return f.etag
}

func (f *Fetcher) URL() string {
	return f.url
}
