package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/config"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Create, view and modify the seedscan configuration file.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the --config path (config.yaml).

An existing file is left alone unless --force is given.`,
	Example: `  seedscan config init
  seedscan --config ~/.seedscan.yaml config init --force`,
	RunE: runConfigInit,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after environment overrides. API keys are masked.`,
	Example: `  seedscan config show
  seedscan config show -o json`,
	RunE: runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Print one configuration value by its dotted key.`,
	Example: `  seedscan config get scan.indices
  seedscan config get network.request_timeout`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: configKeyNames(),
	RunE:      runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value by its dotted key and save the file.
Environment overrides are not written back.`,
	Example: `  seedscan config set api_keys.etherscan YOUR_KEY
  seedscan config set network.request_timeout 10s
  seedscan config set scan.coins btc,ltc`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	configCmd.GroupID = groupConfig
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

// configKey reads and writes one dotted configuration key.
type configKey struct {
	get    func(c *config.Config) string
	set    func(c *config.Config, value string) error
	secret bool
}

//nolint:gochecknoglobals // static lookup table
var configKeys = map[string]configKey{
	"api_keys.etherscan": {
		get:    func(c *config.Config) string { return c.APIKey(config.EtherscanKeyName) },
		set:    func(c *config.Config, v string) error { c.SetAPIKey(config.EtherscanKeyName, v); return nil },
		secret: true,
	},
	"providers.btc.base_url": {
		get: func(c *config.Config) string { return c.Providers.BTC.BaseURL },
		set: func(c *config.Config, v string) error { return setURL(&c.Providers.BTC.BaseURL, v) },
	},
	"providers.eth.base_url": {
		get: func(c *config.Config) string { return c.Providers.ETH.BaseURL },
		set: func(c *config.Config, v string) error { return setURL(&c.Providers.ETH.BaseURL, v) },
	},
	"providers.eth.chain_id": {
		get: func(c *config.Config) string { return c.Providers.ETH.ChainID },
		set: func(c *config.Config, v string) error {
			if v != "" {
				if _, err := strconv.ParseUint(v, 10, 64); err != nil {
					return invalidValue("providers.eth.chain_id", v)
				}
			}
			c.Providers.ETH.ChainID = v
			return nil
		},
	},
	"providers.ltc.base_url": {
		get: func(c *config.Config) string { return c.Providers.LTC.BaseURL },
		set: func(c *config.Config, v string) error { return setURL(&c.Providers.LTC.BaseURL, v) },
	},
	"network.request_timeout": {
		get: func(c *config.Config) string { return c.Network.RequestTimeout.String() },
		set: func(c *config.Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return invalidValue("network.request_timeout", v)
			}
			c.Network.RequestTimeout = d
			return nil
		},
	},
	"network.proxy": {
		get: func(c *config.Config) string { return c.Network.Proxy },
		set: func(c *config.Config, v string) error { c.Network.Proxy = config.SanitizeURL(v); return nil },
	},
	"scan.indices": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Scan.Indices) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return invalidValue("scan.indices", v)
			}
			c.Scan.Indices = n
			return nil
		},
	},
	"scan.rounds": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Scan.Rounds) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return invalidValue("scan.rounds", v)
			}
			c.Scan.Rounds = n
			return nil
		},
	},
	"scan.account": {
		get: func(c *config.Config) string { return strconv.FormatUint(uint64(c.Scan.Account), 10) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 31)
			if err != nil {
				return invalidValue("scan.account", v)
			}
			c.Scan.Account = uint32(n)
			return nil
		},
	},
	"scan.coins": {
		get: func(c *config.Config) string { return strings.Join(c.Scan.Coins, ",") },
		set: func(c *config.Config, v string) error {
			kinds, err := coin.ParseList(v)
			if err != nil {
				return scanerr.WithCause(scanerr.ErrInvalidInput, err)
			}
			c.Scan.Coins = make([]string, len(kinds))
			for i, k := range kinds {
				c.Scan.Coins[i] = k.String()
			}
			return nil
		},
	},
	"findings.file": {
		get: func(c *config.Config) string { return c.Findings.File },
		set: func(c *config.Config, v string) error { c.Findings.File = v; return nil },
	},
	"output.default_format": {
		get: func(c *config.Config) string { return c.Output.DefaultFormat },
		set: func(c *config.Config, v string) error {
			switch v {
			case "auto", "text", "json":
				c.Output.DefaultFormat = v
				return nil
			}
			return scanerr.WithSuggestion(invalidValue("output.default_format", v), "valid values: auto, text, json")
		},
	},
	"output.verbose": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Output.Verbose) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return invalidValue("output.verbose", v)
			}
			c.Output.Verbose = b
			return nil
		},
	},
	"logging.level": {
		get: func(c *config.Config) string { return c.Logging.Level },
		set: func(c *config.Config, v string) error {
			switch v {
			case "off", "error", "debug":
				c.Logging.Level = v
				return nil
			}
			return scanerr.WithSuggestion(invalidValue("logging.level", v), "valid values: off, error, debug")
		},
	},
	"logging.file": {
		get: func(c *config.Config) string { return c.Logging.File },
		set: func(c *config.Config, v string) error { c.Logging.File = v; return nil },
	},
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupConfigKey(name string) (configKey, error) {
	key, ok := configKeys[name]
	if !ok {
		return configKey{}, scanerr.WithSuggestion(
			scanerr.WithDetails(scanerr.ErrUnknownConfigKey, map[string]string{"key": name}),
			"valid keys: "+strings.Join(configKeyNames(), ", "),
		)
	}
	return key, nil
}

func invalidValue(key, value string) error {
	return scanerr.WithDetails(scanerr.ErrInvalidInput, map[string]string{"key": key, "value": value})
}

func setURL(dst *string, value string) error {
	value = config.SanitizeURL(value)
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return scanerr.WithSuggestion(invalidValue("base_url", value), "use an http:// or https:// URL")
	}
	*dst = strings.TrimRight(value, "/")
	return nil
}

// maskSecret keeps the last four characters of a key.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := cmdCtx.ConfigPath
	if !cmd.Flags().Changed("config") {
		path = config.DefaultPath
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return scanerr.WithSuggestion(
			scanerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", path),
		)
	}

	if err := config.Save(config.Defaults(), path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	cmdCtx.Log.Debug("wrote default configuration to %s", path)

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", path)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - api_keys.etherscan: Etherscan API key (required to scan ETH)")
	outln(w, "  - network.request_timeout: per-request deadline, e.g. 30s")
	outln(w, "  - scan.indices / scan.rounds / scan.coins: scan range")
	outln(w, "  - findings.file: where positive balances are appended")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	c, err := cmdCtx.requireConfig()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cmdCtx.Fmt.IsJSON() {
		values := make(map[string]string, len(configKeys))
		for _, name := range configKeyNames() {
			values[name] = displayValue(c, name)
		}
		return writeJSON(w, map[string]any{"path": cmdCtx.ConfigPath, "values": values})
	}

	return displayConfigText(w, c)
}

func displayValue(c *config.Config, name string) string {
	key := configKeys[name]
	v := key.get(c)
	if key.secret {
		return maskSecret(v)
	}
	return v
}

func displayConfigText(w io.Writer, c *config.Config) error {
	out(w, "Configuration (%s)\n\n", cmdCtx.ConfigPath)
	section := ""
	for _, name := range configKeyNames() {
		head, rest, _ := strings.Cut(name, ".")
		if head != section {
			if section != "" {
				outln(w)
			}
			out(w, "%s:\n", head)
			section = head
		}
		v := displayValue(c, name)
		if v == "" {
			v = "(not set)"
		}
		out(w, "  %-20s %s\n", rest, v)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	c, err := cmdCtx.requireConfig()
	if err != nil {
		return err
	}

	key, err := lookupConfigKey(args[0])
	if err != nil {
		return err
	}

	outln(cmd.OutOrStdout(), key.get(c))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]

	key, err := lookupConfigKey(name)
	if err != nil {
		return err
	}

	path := cmdCtx.ConfigPath
	current, err := config.ReadFile(path)
	if err != nil {
		if !errors.Is(err, scanerr.ErrConfigNotFound) {
			return err
		}
		current = config.Defaults()
	}

	if err := key.set(current, value); err != nil {
		return err
	}

	if err := config.Save(current, path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	shown := value
	if key.secret {
		shown = maskSecret(value)
	}
	out(cmd.OutOrStdout(), "Set %s = %s\n", name, shown)
	return nil
}
