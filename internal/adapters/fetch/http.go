// Package fetch provides the page content retrievers behind the Fetcher
// port: a live HTTP client and a synthetic-page generator for test mode.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"pricewatch/internal/core/port"
)

// Browser-like headers; seller pages answer differently to bare clients.
var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Accept-Language": "de-DE,de;q=0.9,en;q=0.8",
}

const maxBodyBytes = 8 << 20 // seller pages are large but bounded

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) port.Fetcher {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Name() string {
	return "live"
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	for name, value := range defaultHeaders {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	return body, nil
}
