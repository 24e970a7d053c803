// Package fetch downloads remote assets (images, stylesheets) over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single asset download.
	DefaultTimeout = 10 * time.Second
	// MaxAssetSize caps the bytes read from one response.
	MaxAssetSize = 32 << 20
)

const defaultUserAgent = "specpub/1.0 (+https://github.com/alnah/go-specpub)"

// Sentinel errors for asset downloads.
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrAssetTooLarge    = errors.New("asset exceeds maximum size")
)

// HTTPFetcher fetches assets via HTTP GET.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher. A non-positive timeout uses DefaultTimeout.
func New(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewWithClient wraps an existing client (tests, custom transports).
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the body of rawURL. No retries.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d for %s", ErrUnexpectedStatus, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > MaxAssetSize {
		return nil, fmt.Errorf("%w: %s", ErrAssetTooLarge, rawURL)
	}
	return body, nil
}
