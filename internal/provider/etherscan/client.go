// Package etherscan provides an Etherscan API client for Ethereum balance queries.
package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/provider"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// DefaultBaseURL is the Etherscan API base URL.
const DefaultBaseURL = "https://api.etherscan.io"

// ErrAPIKeyRequired indicates the Etherscan API key was not provided.
var ErrAPIKeyRequired = &scanerr.SeedscanError{
	Code:       "ETHERSCAN_API_KEY_REQUIRED",
	Message:    "Etherscan API key is required",
	Suggestion: "set etherscan_api_key in the config file or SEEDSCAN_ETHERSCAN_API_KEY",
	ExitCode:   scanerr.ExitConfig,
}

// apiResponse represents the standard Etherscan API response.
type apiResponse struct {
	Status  string `json:"status"`  // "1" for success, "0" for error
	Message string `json:"message"` // "OK" or error message
	Result  string `json:"result"`  // Balance value as decimal string
}

// Client is an Etherscan API client for balance queries.
type Client struct {
	apiKey     string
	baseURL    string
	chainID    string
	httpClient *http.Client
}

// ClientOptions configures the Etherscan client.
type ClientOptions struct {
	// BaseURL overrides the default Etherscan API URL (useful for testing).
	BaseURL string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// ChainID adds the chainid parameter used by the v2 API. Empty omits it.
	ChainID string
}

// NewClient creates a new Etherscan API client.
func NewClient(apiKey string, opts *ClientOptions) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: provider.DefaultRequestTimeout},
	}

	if opts != nil {
		if opts.BaseURL != "" {
			c.baseURL = strings.TrimSuffix(opts.BaseURL, "/")
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		c.chainID = opts.ChainID
	}

	return c, nil
}

// Coin returns coin.ETH.
func (c *Client) Coin() coin.Kind {
	return coin.ETH
}

// GetBalance retrieves the native ETH balance of an address in wei.
func (c *Client) GetBalance(ctx context.Context, address string) (*provider.Balance, error) {
	params := url.Values{
		"module":  {"account"},
		"action":  {"balance"},
		"address": {address},
		"tag":     {"latest"},
		"apikey":  {c.apiKey},
	}

	result, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	amount, ok := new(big.Int).SetString(result, 10)
	if !ok || amount.Sign() < 0 {
		return nil, scanerr.WithDetails(scanerr.ErrInvalidBalance, map[string]string{
			"result": provider.TruncateBody(result, 256),
		})
	}

	return provider.NewBalance(coin.ETH, address, amount), nil
}

// doRequest performs a GET against the Etherscan API and returns the result string.
func (c *Client) doRequest(ctx context.Context, params url.Values) (string, error) {
	if c.chainID != "" {
		params.Set("chainid", c.chainID)
	}

	reqURL := fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode())

	body, err := provider.Get(ctx, c.httpClient, reqURL, nil)
	if err != nil {
		return "", err
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", scanerr.WithCause(scanerr.ErrInvalidBalance, fmt.Errorf("parsing response: %w", err))
	}

	// Etherscan returns status "0" with the reason in result
	if apiResp.Status != "1" {
		return "", scanerr.WithDetails(scanerr.ErrAPIError, map[string]string{
			"message": apiResp.Message,
			"result":  provider.TruncateBody(apiResp.Result, 256),
		})
	}

	return apiResp.Result, nil
}

var _ provider.Fetcher = (*Client)(nil)
