package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/seedscan/internal/config"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/metrics"
	"github.com/mrz1836/seedscan/internal/output"
	"github.com/mrz1836/seedscan/internal/scan"
	"github.com/mrz1836/seedscan/internal/service/balance"
	"github.com/mrz1836/seedscan/internal/wallet"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// scanCmd generates seeds and checks their addresses.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Generate seeds and check their address balances",
	Long: `Generate a random 12-word BIP39 mnemonic, derive BTC, ETH and LTC receive
addresses at indices 0 to N-1 and check each balance. Every positive balance is
appended to the findings file as soon as it is seen.

Balance lookups that fail are reported and skipped; they never stop the scan.
Interrupt with Ctrl-C to stop a continuous scan and print the summary.`,
	Example: `  seedscan scan
  seedscan scan --rounds 0
  seedscan scan --coins btc,ltc --indices 20 --timeout 10s
  seedscan scan --mnemonic "abandon abandon ... about"`,
	RunE: runScan,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	scanIndices  int
	scanRounds   int
	scanAccount  uint32
	scanCoins    string
	scanFindings string
	scanTimeout  time.Duration
	scanMnemonic string
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	scanCmd.GroupID = groupScan
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVar(&scanIndices, "indices", scan.DefaultIndices, "address indices checked per coin")
	scanCmd.Flags().IntVar(&scanRounds, "rounds", scan.DefaultRounds, "seeds to generate, 0 runs until interrupted")
	scanCmd.Flags().Uint32Var(&scanAccount, "account", 0, "BIP44 account number")
	scanCmd.Flags().StringVar(&scanCoins, "coins", "btc,eth,ltc", "comma-separated coins to check")
	scanCmd.Flags().StringVar(&scanFindings, "findings", findings.DefaultFile, "findings file")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 30*time.Second, "per-request deadline")
	scanCmd.Flags().StringVar(&scanMnemonic, "mnemonic", "", "scan this phrase instead of generating seeds")
}

// applyScanFlags copies explicitly set flags over the loaded configuration.
func applyScanFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("indices") {
		c.Scan.Indices = scanIndices
	}
	if flags.Changed("rounds") {
		c.Scan.Rounds = scanRounds
	}
	if flags.Changed("account") {
		c.Scan.Account = scanAccount
	}
	if flags.Changed("coins") {
		c.Scan.Coins = strings.Split(scanCoins, ",")
	}
	if flags.Changed("findings") {
		c.Findings.File = scanFindings
	}
	if flags.Changed("timeout") {
		c.Network.RequestTimeout = scanTimeout
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	c, err := cmdCtx.requireConfig()
	if err != nil {
		return err
	}

	applyScanFlags(cmd, c)
	if err := c.Validate(); err != nil {
		return err
	}

	var mnemonic string
	if scanMnemonic != "" {
		mnemonic, err = checkMnemonic(scanMnemonic)
		if err != nil {
			return err
		}
	}

	kinds, err := c.ScanCoins()
	if err != nil {
		return err
	}

	fetchers, err := buildFetchers(c, kinds)
	if err != nil {
		return err
	}

	sink, err := findings.Open(c.Findings.File)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	reporter := output.NewConsoleReporter(cmdCtx.Fmt)
	balances := balance.NewService(&balance.Config{
		Fetchers:  fetchers,
		Timeout:   c.Network.RequestTimeout,
		Logger:    cmdCtx.Log,
		OnFailure: reporter.FetchFailed,
		Metrics:   metrics.Global,
	})
	scanner := scan.NewScanner(balances, sink, &scan.Options{
		Indices:  c.Scan.Indices,
		Account:  c.Scan.Account,
		Rounds:   c.Scan.Rounds,
		Coins:    kinds,
		Reporter: reporter,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx.Log.Debug("scan: coins=%v indices=%d rounds=%d account=%d timeout=%s findings=%s",
		kinds, c.Scan.Indices, c.Scan.Rounds, c.Scan.Account, c.Network.RequestTimeout, sink.Path())

	metrics.Global.Reset()
	var res *scan.Result
	if mnemonic != "" {
		res, err = scanner.ScanMnemonic(ctx, mnemonic)
	} else {
		res, err = scanner.Run(ctx)
	}

	interrupted := scanerr.Is(err, scan.ErrScanCanceled)
	if err != nil && !interrupted {
		cmdCtx.Log.Error("scan failed: %v", err)
		return err
	}

	reporter.Summary(output.NewSummary(res, metrics.Global.Snapshot(), sink.Path(), interrupted))
	return nil
}

// checkMnemonic normalizes a user-supplied phrase and explains typos when it
// is not valid BIP39.
func checkMnemonic(input string) (string, error) {
	mnemonic := wallet.NormalizeMnemonicInput(input)
	if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		if typos := wallet.DetectTypos(mnemonic); len(typos) > 0 {
			return "", scanerr.WithSuggestion(err, wallet.FormatTypoSuggestions(typos))
		}
		return "", err
	}
	return mnemonic, nil
}

