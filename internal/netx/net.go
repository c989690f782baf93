// Package netx holds plain HTTP helpers for fetching media by URL.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetch downloads url with a GET request and returns the body. Any non-2xx
// status is an error carrying the status line and the response body.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(body))
	}
	return body, nil
}
