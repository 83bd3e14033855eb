package provider

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// DefaultRequestTimeout bounds a single provider request when none is configured.
const DefaultRequestTimeout = 30 * time.Second

// ErrUnsupportedProxy indicates a proxy URL scheme other than socks5, http or https.
var ErrUnsupportedProxy = errors.New("unsupported proxy scheme")

// TransportOptions configures the HTTP client shared by the provider clients.
type TransportOptions struct {
	// Timeout is the per-request deadline. Zero uses DefaultRequestTimeout.
	Timeout time.Duration

	// Proxy is an optional socks5://, http:// or https:// proxy URL.
	Proxy string
}

// NewHTTPClient returns an HTTP client with TLS 1.2+, the configured timeout
// and, when set, requests routed through the proxy.
func NewHTTPClient(opts TransportOptions) (*http.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout: timeout,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}

	if opts.Proxy != "" {
		if err := applyProxy(transport, opts.Proxy); err != nil {
			return nil, err
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

func applyProxy(transport *http.Transport, raw string) error {
	proxyURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing proxy URL: %w", err)
	}

	switch proxyURL.Scheme {
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(proxyURL, proxy.Direct)
		if err != nil {
			return fmt.Errorf("creating SOCKS5 dialer: %w", err)
		}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	case "http", "https":
		transport.Proxy = http.ProxyURL(proxyURL)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProxy, proxyURL.Scheme)
	}

	return nil
}
