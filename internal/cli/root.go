// Package cli implements the seedscan command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/seedscan/internal/config"
	"github.com/mrz1836/seedscan/internal/output"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// BuildInfo identifies the binary. Fields are set through -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var (
	// Global flags
	configPath   string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	buildInfo BuildInfo
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
	cmdCtx    *CommandContext
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seedscan",
	Short: "Scan random BIP39 seeds for funded BTC, ETH and LTC addresses",
	Long: `seedscan generates random 12-word BIP39 mnemonics, derives the first BIP44
receive addresses for Bitcoin, Ethereum and Litecoin, checks their balances
against public block explorers and appends every positive balance to a
findings file.`,
	Example: `  seedscan scan
  seedscan scan --rounds 0 --indices 10 --coins btc,ltc
  seedscan derive --mnemonic "abandon ... about"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	buildInfo = info
	rootCmd.Version = formatVersion(info)
	enrichHelp()

	if err := rootCmd.Execute(); err != nil {
		formatErr(err)
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return scanerr.ExitCode(err)
}

func formatVersion(info BuildInfo) string {
	return fmt.Sprintf("%s (commit: %s, built: %s)",
		orDefault(info.Version, "dev"), orDefault(info.Commit, "unknown"), orDefault(info.Date, "unknown"))
}

func formatErr(err error) {
	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}
	_ = output.FormatError(os.Stderr, err, format)
}

// initGlobals loads configuration and builds the logger and formatter.
// A missing or invalid config file is not fatal here; commands that need it
// call requireConfig.
func initGlobals(cmd *cobra.Command) error {
	path := configPath
	if path == "" || (path == config.DefaultPath && !cmd.Flags().Changed("config")) {
		path = config.ResolvePath()
	}

	loaded, loadErr := config.Load(path)
	if loadErr != nil {
		loaded = config.Defaults()
		if envErr := config.ApplyEnvironment(loaded); envErr != nil {
			loadErr = envErr
		}
	}
	cfg = loaded

	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != string(output.FormatAuto) {
		cfg.Output.DefaultFormat = outputFormat
	}

	var err error
	logger, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		logger = config.NullLogger()
	}
	if cfg.Output.Verbose {
		logger.SetLevel(config.LogLevelDebug)
		logger.SetMirror(cmd.ErrOrStderr())
	}

	w := cmd.OutOrStdout()
	formatter = output.NewFormatter(output.DetectFormat(w, output.ParseFormat(cfg.Output.DefaultFormat)), w)

	cmdCtx = NewCommandContext(cfg, logger, formatter)
	cmdCtx.ConfigPath = path
	cmdCtx.ConfigErr = loadErr

	logger.Debug("seedscan %s starting, config %s", formatVersion(buildInfo), path)
	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the global logger.
func Logger() *config.Logger {
	return logger
}

// Formatter returns the global output formatter.
func Formatter() *output.Formatter {
	return formatter
}

// Context returns the global command context.
func Context() *CommandContext {
	return cmdCtx
}

// Command groups shown in root help.
const (
	groupScan     = "scan"
	groupFindings = "findings"
	groupConfig   = "config"
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupScan, Title: "Scanning:"},
		&cobra.Group{ID: groupFindings, Title: "Findings:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID(groupConfig)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "configuration file (config.json is read when config.yaml is absent)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output and debug logging")
	rootCmd.SetVersionTemplate("seedscan {{.Version}}\n")
}
