package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testBTCAddr  = "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"
	testETHAddr  = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	testLTCAddr  = "LUWPbpM43E2p7ZSh8cyTBEkvpHmr3cB8Ez"
)

// saveGlobals snapshots package-level state and restores it on cleanup.
func saveGlobals(t *testing.T) {
	t.Helper()
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origCmdCtx := cmdCtx
	origConfigPath := configPath
	origOutputFormat := outputFormat
	origVerbose := verbose
	t.Cleanup(func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		cmdCtx = origCmdCtx
		configPath = origConfigPath
		outputFormat = origOutputFormat
		verbose = origVerbose
	})
}

// resetFlags returns every flag in the tree to its default and clears Changed.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(reset)
		cmd.PersistentFlags().VisitAll(reset)
	})
}

// runCLI executes the root command with args and returns stdout.
// NOT parallel-safe: commands share package-level state.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saveGlobals(t)
	resetFlags()
	t.Cleanup(resetFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// providerServers starts fake explorers. BTC reports btcSats for testBTCAddr
// and zero elsewhere, ETH always reports zero, LTC always fails.
func providerServers(t *testing.T, btcSats int64) (btcURL, ethURL, ltcURL string) {
	t.Helper()

	btc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/"+testBTCAddr) {
			_, _ = fmt.Fprintf(w, "%d", btcSats)
			return
		}
		_, _ = w.Write([]byte("0"))
	}))
	t.Cleanup(btc.Close)

	eth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"0"}`))
	}))
	t.Cleanup(eth.Close)

	ltc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(ltc.Close)

	return btc.URL, eth.URL, ltc.URL
}

// writeTestConfig writes a config pointing every provider at local servers
// and the findings file into a temp dir. Returns the config and findings paths.
func writeTestConfig(t *testing.T, btcURL, ethURL, ltcURL string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	findingsPath := filepath.Join(dir, "valid_wallets.txt")
	content := fmt.Sprintf(`etherscan_api_key: TESTKEY
providers:
  btc:
    base_url: %s
  eth:
    base_url: %s
  ltc:
    base_url: %s
network:
  request_timeout: 5s
findings:
  file: %s
`, btcURL, ethURL, ltcURL, findingsPath)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path, findingsPath
}

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, password []byte, mnemonic string) {
	t.Helper()
	origPW := promptPasswordFn
	origNewPW := promptNewPasswordFn
	origMnemonic := promptMnemonicFn
	t.Cleanup(func() {
		promptPasswordFn = origPW
		promptNewPasswordFn = origNewPW
		promptMnemonicFn = origMnemonic
	})
	promptPasswordFn = func(_ string) ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptNewPasswordFn = func() ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptMnemonicFn = func() (string, error) {
		return mnemonic, nil
	}
}
