package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/config"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

func TestBuildFetchers(t *testing.T) {
	t.Parallel()
	c := config.Defaults()
	c.SetAPIKey(config.EtherscanKeyName, "KEY")

	fetchers, err := buildFetchers(c, []coin.Kind{coin.LTC, coin.BTC, coin.ETH})
	require.NoError(t, err)
	require.Len(t, fetchers, 3)
	assert.Equal(t, coin.LTC, fetchers[0].Coin())
	assert.Equal(t, coin.BTC, fetchers[1].Coin())
	assert.Equal(t, coin.ETH, fetchers[2].Coin())
}

func TestBuildFetchers_Errors(t *testing.T) {
	t.Parallel()

	t.Run("eth without key", func(t *testing.T) {
		t.Parallel()
		_, err := buildFetchers(config.Defaults(), []coin.Kind{coin.ETH})
		require.Error(t, err)
	})

	t.Run("bad proxy", func(t *testing.T) {
		t.Parallel()
		c := config.Defaults()
		c.Network.Proxy = "ftp://proxy:21"
		_, err := buildFetchers(c, []coin.Kind{coin.BTC})
		require.ErrorIs(t, err, scanerr.ErrConfigInvalid)
	})

	t.Run("unknown coin", func(t *testing.T) {
		t.Parallel()
		_, err := buildFetchers(config.Defaults(), []coin.Kind{coin.Kind("doge")})
		require.ErrorIs(t, err, scanerr.ErrUnsupportedCoin)
	})
}
