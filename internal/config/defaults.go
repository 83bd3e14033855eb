package config

import (
	"os"

	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/provider"
	"github.com/mrz1836/seedscan/internal/provider/blockchaininfo"
	"github.com/mrz1836/seedscan/internal/provider/chainso"
	"github.com/mrz1836/seedscan/internal/provider/etherscan"
)

const (
	// DefaultPath is the config file read when --config is not given.
	DefaultPath = "config.yaml"

	// LegacyPath is read instead of DefaultPath when only it exists. It holds
	// a single top-level etherscan_api_key, which ReadFile accepts as YAML.
	LegacyPath = "config.json"
)

// ResolvePath returns the config file to read when none was given
// explicitly: DefaultPath, or LegacyPath when only that one exists.
func ResolvePath() string {
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	if _, err := os.Stat(LegacyPath); err == nil {
		return LegacyPath
	}
	return DefaultPath
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		APIKeys: map[string]string{},
		Providers: ProvidersConfig{
			BTC: ProviderConfig{BaseURL: blockchaininfo.DefaultBaseURL},
			ETH: ETHProviderConfig{BaseURL: etherscan.DefaultBaseURL},
			LTC: ProviderConfig{BaseURL: chainso.DefaultBaseURL},
		},
		Network: NetworkConfig{
			RequestTimeout: provider.DefaultRequestTimeout,
		},
		Scan: ScanConfig{
			Indices: 5,
			Rounds:  1,
			Account: 0,
			Coins:   []string{"btc", "eth", "ltc"},
		},
		Findings: FindingsConfig{
			File: findings.DefaultFile,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
	}
}
