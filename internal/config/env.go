package config

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/kelseyhightower/envconfig"

	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SEEDSCAN"

// Environment variable names.
const (
	EnvEtherscanAPIKey = "SEEDSCAN_ETHERSCAN_API_KEY" // #nosec G101 -- false positive, this is a const name not a credential
	EnvFindingsFile    = "SEEDSCAN_FINDINGS_FILE"
	EnvRequestTimeout  = "SEEDSCAN_REQUEST_TIMEOUT"
	EnvProxy           = "SEEDSCAN_PROXY"
	EnvOutputFormat    = "SEEDSCAN_OUTPUT_FORMAT"
	EnvVerbose         = "SEEDSCAN_VERBOSE"
	EnvLogLevel        = "SEEDSCAN_LOG_LEVEL"
	EnvLogFile         = "SEEDSCAN_LOG_FILE"

	// EnvFindingsPassphrase is read only by the findings seal and show commands.
	EnvFindingsPassphrase = "SEEDSCAN_FINDINGS_PASSPHRASE" // #nosec G101 -- variable name, not a credential
)

// environment holds the overrides; nil fields were not set.
type environment struct {
	EtherscanAPIKey *string        `envconfig:"ETHERSCAN_API_KEY"`
	FindingsFile    *string        `envconfig:"FINDINGS_FILE"`
	RequestTimeout  *time.Duration `envconfig:"REQUEST_TIMEOUT"`
	Proxy           *string        `envconfig:"PROXY"`
	OutputFormat    *string        `envconfig:"OUTPUT_FORMAT"`
	Verbose         *string        `envconfig:"VERBOSE"`
	LogLevel        *string        `envconfig:"LOG_LEVEL"`
	LogFile         *string        `envconfig:"LOG_FILE"`
}

// ApplyEnvironment applies environment variable overrides to the configuration.
// Empty values are ignored. A malformed duration is ErrConfigInvalid.
//
//nolint:gocognit,gocyclo // Environment variable overrides require sequential checks
func ApplyEnvironment(cfg *Config) error {
	var env environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return scanerr.WithCause(scanerr.ErrConfigInvalid, err)
	}

	if v := value(env.EtherscanAPIKey); v != "" {
		cfg.SetAPIKey(EtherscanKeyName, v)
	}

	if v := value(env.FindingsFile); v != "" {
		cfg.Findings.File = v
	}

	if env.RequestTimeout != nil && *env.RequestTimeout > 0 {
		cfg.Network.RequestTimeout = *env.RequestTimeout
	}

	if v := value(env.Proxy); v != "" {
		cfg.Network.Proxy = SanitizeURL(v)
	}

	if v := value(env.OutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := value(env.Verbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := value(env.LogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := value(env.LogFile); v != "" {
		cfg.Logging.File = v
	}

	return nil
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

// SanitizeURL trims whitespace and drops control and space characters left
// behind by copy-paste.
func SanitizeURL(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}
