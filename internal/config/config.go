// Package config provides configuration management for seedscan.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/fileutil"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// EtherscanKeyName is the api_keys entry holding the Etherscan API key.
const EtherscanKeyName = "etherscan"

// minRequestTimeout is the shortest accepted per-request deadline.
const minRequestTimeout = time.Millisecond

// Config represents the application configuration.
type Config struct {
	// APIKeys maps provider name to secret.
	APIKeys map[string]string `yaml:"api_keys,omitempty"`

	// EtherscanAPIKey is the legacy top-level key, merged into APIKeys on load.
	EtherscanAPIKey string `yaml:"etherscan_api_key,omitempty"`

	Providers ProvidersConfig `yaml:"providers"`
	Network   NetworkConfig   `yaml:"network"`
	Scan      ScanConfig      `yaml:"scan"`
	Findings  FindingsConfig  `yaml:"findings"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ProvidersConfig defines per-coin balance provider settings.
type ProvidersConfig struct {
	BTC ProviderConfig    `yaml:"btc"`
	ETH ETHProviderConfig `yaml:"eth"`
	LTC ProviderConfig    `yaml:"ltc"`
}

// ProviderConfig defines a block explorer endpoint.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// ETHProviderConfig defines Etherscan settings.
type ETHProviderConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	ChainID string `yaml:"chain_id,omitempty"`
}

// NetworkConfig defines HTTP settings shared by all providers.
type NetworkConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Proxy          string        `yaml:"proxy,omitempty"`
}

// ScanConfig defines scan loop settings.
type ScanConfig struct {
	Indices int      `yaml:"indices"`
	Rounds  int      `yaml:"rounds"`
	Account uint32   `yaml:"account"`
	Coins   []string `yaml:"coins"`
}

// FindingsConfig defines where positive balances are recorded.
type FindingsConfig struct {
	File string `yaml:"file"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from path, then applies environment overrides.
// A missing file is ErrConfigNotFound; unreadable or malformed content is
// ErrConfigInvalid. Call Validate once command-line overrides are applied.
func Load(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := ApplyEnvironment(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadFile reads the configuration file over the defaults without consulting
// the environment, so the result can be saved back unchanged.
func ReadFile(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, scanerr.WithSuggestion(
				scanerr.WithDetails(scanerr.ErrConfigNotFound, map[string]string{"path": path}),
				"create one with 'seedscan config init' or pass --config",
			)
		}
		return nil, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrConfigInvalid, err), map[string]string{"path": path})
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, scanerr.WithDetails(scanerr.WithCause(scanerr.ErrConfigInvalid, err), map[string]string{"path": path})
	}
	cfg.mergeLegacyKeys()

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

func (c *Config) mergeLegacyKeys() {
	if c.EtherscanAPIKey == "" {
		return
	}
	if c.APIKeys == nil {
		c.APIKeys = make(map[string]string)
	}
	if c.APIKeys[EtherscanKeyName] == "" {
		c.APIKeys[EtherscanKeyName] = c.EtherscanAPIKey
	}
	c.EtherscanAPIKey = ""
}

// APIKey returns the secret for a provider, or "".
func (c *Config) APIKey(name string) string {
	return c.APIKeys[name]
}

// SetAPIKey stores a provider secret.
func (c *Config) SetAPIKey(name, key string) {
	if c.APIKeys == nil {
		c.APIKeys = make(map[string]string)
	}
	c.APIKeys[name] = key
}

// ScanCoins parses the configured coin list.
func (c *Config) ScanCoins() ([]coin.Kind, error) {
	return coin.ParseList(strings.Join(c.Scan.Coins, ","))
}

// Validate checks the configuration is usable for a scan.
func (c *Config) Validate() error {
	invalid := func(field, value string) error {
		return scanerr.WithDetails(scanerr.ErrConfigInvalid, map[string]string{field: value})
	}

	if c.Scan.Indices <= 0 {
		return invalid("scan.indices", strconv.Itoa(c.Scan.Indices))
	}
	if c.Scan.Rounds < 0 {
		return invalid("scan.rounds", strconv.Itoa(c.Scan.Rounds))
	}
	if c.Network.RequestTimeout < minRequestTimeout {
		return invalid("network.request_timeout", c.Network.RequestTimeout.String())
	}
	if c.Network.Proxy != "" && !validURL(c.Network.Proxy, "http", "https", "socks5", "socks5h") {
		return invalid("network.proxy", c.Network.Proxy)
	}

	for field, base := range map[string]string{
		"providers.btc.base_url": c.Providers.BTC.BaseURL,
		"providers.eth.base_url": c.Providers.ETH.BaseURL,
		"providers.ltc.base_url": c.Providers.LTC.BaseURL,
	} {
		if !validURL(base, "http", "https") {
			return invalid(field, base)
		}
	}

	kinds, err := c.ScanCoins()
	if err != nil {
		return invalid("scan.coins", fmt.Sprintf("%v", err))
	}

	for _, k := range kinds {
		if k == coin.ETH && c.APIKey(EtherscanKeyName) == "" {
			return scanerr.WithSuggestion(
				invalid("api_keys.etherscan", "missing"),
				"set etherscan_api_key in the config file or SEEDSCAN_ETHERSCAN_API_KEY, or drop eth from scan.coins",
			)
		}
	}

	switch strings.ToLower(c.Output.DefaultFormat) {
	case "", "auto", "text", "json":
	default:
		return invalid("output.default_format", c.Output.DefaultFormat)
	}

	return nil
}

func validURL(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	for _, s := range schemes {
		if strings.EqualFold(u.Scheme, s) {
			return true
		}
	}
	return false
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}
