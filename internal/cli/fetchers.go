package cli

import (
	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/config"
	"github.com/mrz1836/seedscan/internal/provider"
	"github.com/mrz1836/seedscan/internal/provider/blockchaininfo"
	"github.com/mrz1836/seedscan/internal/provider/chainso"
	"github.com/mrz1836/seedscan/internal/provider/etherscan"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// buildFetchers creates one provider client per requested coin, all sharing
// a single HTTP client with the configured deadline and proxy.
func buildFetchers(c *config.Config, kinds []coin.Kind) ([]provider.Fetcher, error) {
	httpClient, err := provider.NewHTTPClient(provider.TransportOptions{
		Timeout: c.Network.RequestTimeout,
		Proxy:   c.Network.Proxy,
	})
	if err != nil {
		return nil, scanerr.WithCause(scanerr.ErrConfigInvalid, err)
	}

	fetchers := make([]provider.Fetcher, 0, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case coin.BTC:
			fetchers = append(fetchers, blockchaininfo.NewClient(&blockchaininfo.ClientOptions{
				BaseURL:    c.Providers.BTC.BaseURL,
				HTTPClient: httpClient,
			}))
		case coin.ETH:
			client, err := etherscan.NewClient(c.APIKey(config.EtherscanKeyName), &etherscan.ClientOptions{
				BaseURL:    c.Providers.ETH.BaseURL,
				HTTPClient: httpClient,
				ChainID:    c.Providers.ETH.ChainID,
			})
			if err != nil {
				return nil, err
			}
			fetchers = append(fetchers, client)
		case coin.LTC:
			fetchers = append(fetchers, chainso.NewClient(&chainso.ClientOptions{
				BaseURL:    c.Providers.LTC.BaseURL,
				HTTPClient: httpClient,
			}))
		default:
			return nil, scanerr.WithDetails(scanerr.ErrUnsupportedCoin, map[string]string{"coin": string(kind)})
		}
	}
	return fetchers, nil
}
