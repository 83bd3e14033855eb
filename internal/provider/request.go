package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// userAgent identifies seedscan to block explorers.
const userAgent = "seedscan/1.0"

// Get performs an HTTP GET and returns the response body.
// Transport failures wrap ErrNetworkError; any status other than 200 is
// ErrAPIError carrying the status and a truncated body.
func Get(ctx context.Context, client *http.Client, reqURL string, header http.Header) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json, text/plain")
	for k, v := range header {
		httpReq.Header[k] = v
	}

	resp, err := client.Do(httpReq) //nolint:gosec // G107: URL is built from configured provider base URLs
	if err != nil {
		return nil, scanerr.WithCause(scanerr.ErrNetworkError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBody))
	if err != nil {
		return nil, scanerr.WithCause(scanerr.ErrNetworkError, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, scanerr.WithDetails(scanerr.ErrAPIError, map[string]string{
			"status": strconv.Itoa(resp.StatusCode),
			"body":   TruncateBody(string(body), 512),
		})
	}

	return body, nil
}
