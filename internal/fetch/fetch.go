// File: internal/fetch/fetch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package fetch retrieves a resource over HTTP and returns its body as text.
// It is a collaborator of the demonstration driver, not part of the core.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/momentics/stresskit/api"
)

// ErrStatus is returned for responses with status >= 400.
var ErrStatus = errors.New("unexpected HTTP status")

// DefaultTimeout bounds a single fetch when the caller's context has no deadline.
const DefaultTimeout = 30 * time.Second

// HTTPFetcher issues GET requests.
type HTTPFetcher struct {
	client *http.Client
	log    *slog.Logger
}

var _ api.Fetcher = (*HTTPFetcher)(nil)

// New returns a fetcher. A nil client gets DefaultTimeout; a nil logger uses slog.Default().
func New(client *http.Client, logger *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{client: client, log: logger.With("component", "fetch")}
}

// Fetch returns the full response body of url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("fetch %q: %w: %s", url, ErrStatus, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %q: read body: %w", url, err)
	}
	f.log.Debug("fetched", "url", url, "status", resp.StatusCode, "bytes", len(body))
	return string(body), nil
}
