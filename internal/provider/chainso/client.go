// Package chainso provides a chain.so (SoChain) client for Litecoin balance queries.
package chainso

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/provider"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// DefaultBaseURL is the chain.so API base URL.
const DefaultBaseURL = "https://chain.so"

// statusSuccess is the envelope status of a successful SoChain response.
const statusSuccess = "success"

// balanceResponse is the SoChain get_address_balance envelope.
type balanceResponse struct {
	Status string `json:"status"`
	Data   struct {
		Network            string `json:"network"`
		Address            string `json:"address"`
		ConfirmedBalance   string `json:"confirmed_balance"`
		UnconfirmedBalance string `json:"unconfirmed_balance"`
	} `json:"data"`
}

// ClientOptions configures the chain.so client.
type ClientOptions struct {
	// BaseURL overrides the default API URL (useful for testing).
	BaseURL string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Client queries SoChain for Litecoin address balances.
type Client struct {
	baseURL    string
	network    string
	httpClient *http.Client
}

// NewClient creates a new chain.so client for the LTC network.
func NewClient(opts *ClientOptions) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		network:    coin.LTC.Symbol(),
		httpClient: &http.Client{Timeout: provider.DefaultRequestTimeout},
	}

	if opts != nil {
		if opts.BaseURL != "" {
			c.baseURL = strings.TrimSuffix(opts.BaseURL, "/")
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
	}

	return c
}

// Coin returns coin.LTC.
func (c *Client) Coin() coin.Kind {
	return coin.LTC
}

// GetBalance returns the confirmed balance of a Litecoin address in litoshis.
// SoChain reports balances as decimal LTC strings.
func (c *Client) GetBalance(ctx context.Context, address string) (*provider.Balance, error) {
	reqURL := fmt.Sprintf("%s/api/v2/get_address_balance/%s/%s",
		c.baseURL, c.network, url.PathEscape(address))

	body, err := provider.Get(ctx, c.httpClient, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var resp balanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, scanerr.WithCause(scanerr.ErrInvalidBalance, fmt.Errorf("parsing response: %w", err))
	}

	if resp.Status != "" && resp.Status != statusSuccess {
		return nil, scanerr.WithDetails(scanerr.ErrAPIError, map[string]string{
			"status": resp.Status,
		})
	}

	amount, err := coin.ParseDecimalAmount(strings.TrimSpace(resp.Data.ConfirmedBalance), coin.LTC.Decimals(), scanerr.ErrInvalidBalance)
	if err != nil {
		return nil, scanerr.WithDetails(err, map[string]string{
			"confirmed_balance": provider.TruncateBody(resp.Data.ConfirmedBalance, 64),
		})
	}

	return provider.NewBalance(coin.LTC, address, amount), nil
}

var _ provider.Fetcher = (*Client)(nil)
