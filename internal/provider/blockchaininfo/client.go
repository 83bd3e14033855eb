// Package blockchaininfo provides a blockchain.info client for Bitcoin balance queries.
package blockchaininfo

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/provider"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

const (
	// DefaultBaseURL is the blockchain.info API base URL.
	DefaultBaseURL = "https://blockchain.info"

	// DefaultConfirmations is the confirmation depth required for a balance to count.
	DefaultConfirmations = 6
)

// ClientOptions configures the blockchain.info client.
type ClientOptions struct {
	// BaseURL overrides the default API URL (useful for testing).
	BaseURL string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// Confirmations overrides the default confirmation depth.
	Confirmations int
}

// Client queries the blockchain.info simple query API.
type Client struct {
	baseURL       string
	confirmations int
	httpClient    *http.Client
}

// NewClient creates a new blockchain.info client.
func NewClient(opts *ClientOptions) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		confirmations: DefaultConfirmations,
		httpClient:    &http.Client{Timeout: provider.DefaultRequestTimeout},
	}

	if opts != nil {
		if opts.BaseURL != "" {
			c.baseURL = strings.TrimSuffix(opts.BaseURL, "/")
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		if opts.Confirmations > 0 {
			c.confirmations = opts.Confirmations
		}
	}

	return c
}

// Coin returns coin.BTC.
func (c *Client) Coin() coin.Kind {
	return coin.BTC
}

// GetBalance returns the confirmed balance of a Bitcoin address in satoshis.
// The endpoint answers with a bare integer in plain text.
func (c *Client) GetBalance(ctx context.Context, address string) (*provider.Balance, error) {
	reqURL := fmt.Sprintf("%s/q/addressbalance/%s?confirmations=%d",
		c.baseURL, url.PathEscape(address), c.confirmations)

	body, err := provider.Get(ctx, c.httpClient, reqURL, nil)
	if err != nil {
		return nil, err
	}

	result := strings.TrimSpace(string(body))
	amount, ok := new(big.Int).SetString(result, 10)
	if !ok || amount.Sign() < 0 {
		return nil, scanerr.WithDetails(scanerr.ErrInvalidBalance, map[string]string{
			"result": provider.TruncateBody(result, 256),
		})
	}

	return provider.NewBalance(coin.BTC, address, amount), nil
}

var _ provider.Fetcher = (*Client)(nil)

