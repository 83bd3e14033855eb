package output_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/metrics"
	"github.com/mrz1836/seedscan/internal/output"
	"github.com/mrz1836/seedscan/internal/provider"
	"github.com/mrz1836/seedscan/internal/scan"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func btcBalance(sats int64) *provider.Balance {
	return provider.NewBalance(coin.BTC, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", big.NewInt(sats))
}

func TestConsoleReporter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := output.NewConsoleReporter(output.NewFormatter(output.FormatText, &buf))

	r.SeedGenerated(testMnemonic)
	r.Checking(coin.BTC, 0, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA")
	r.BalanceResult(coin.BTC, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", btcBalance(250000000), true)
	r.Checking(coin.ETH, 0, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	r.BalanceResult(coin.ETH, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", nil, false)

	want := "Generated Seed Phrase: " + testMnemonic + "\n" +
		"Checking BTC Address (index 0): 1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA\n" +
		"Balance for 1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA: 2.5 BTC\n" +
		"Checking ETH Address (index 0): 0x9858EfFD232B4033E47d90003D41EC34EcaEda94\n" +
		"Could not retrieve ETH balance\n"
	assert.Equal(t, want, buf.String())
}

func TestConsoleReporter_TextFindingAndSummary(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := output.NewConsoleReporter(output.NewFormatter(output.FormatText, &buf))

	f := findings.Finding{Mnemonic: testMnemonic, Coin: coin.BTC, Index: 3, Address: "1abc", Balance: btcBalance(1)}
	r.FindingRecorded(f)
	assert.Contains(t, buf.String(), "Found 0.00000001 BTC at index 3")

	buf.Reset()
	res := &scan.Result{SeedsScanned: 1, AddressesChecked: 15, FetchFailures: 2, Findings: []findings.Finding{f}, Duration: 1500 * time.Millisecond}
	r.Summary(output.NewSummary(res, metrics.Snapshot{APICallsTotal: 15, APIErrorsTotal: 2, APILatencyNanos: int64(15 * 40 * time.Millisecond)}, "valid_wallets.txt", false))

	text := buf.String()
	assert.Contains(t, text, "Seeds scanned:     1\n")
	assert.Contains(t, text, "Addresses checked: 15\n")
	assert.Contains(t, text, "Fetch failures:    2\n")
	assert.Contains(t, text, "API calls:         15 (2 errors, avg 40 ms)\n")
	assert.Contains(t, text, "Duration:          1.5s\n")
	assert.Contains(t, text, "1 finding(s) written to valid_wallets.txt")
	assert.NotContains(t, text, "interrupted")
}

func TestConsoleReporter_TextSummaryNoFindings(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := output.NewConsoleReporter(output.NewFormatter(output.FormatText, &buf))

	r.Summary(output.NewSummary(&scan.Result{SeedsScanned: 2}, metrics.Snapshot{}, "valid_wallets.txt", true))
	assert.Contains(t, buf.String(), "Scan interrupted")
	assert.Contains(t, buf.String(), "No balances found.")
}

func TestConsoleReporter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := output.NewConsoleReporter(output.NewFormatter(output.FormatJSON, &buf))

	r.SeedGenerated(testMnemonic)
	r.Checking(coin.BTC, 0, "1abc")
	r.BalanceResult(coin.BTC, "1abc", btcBalance(250000000), true)
	r.BalanceResult(coin.LTC, "Labc", nil, false)
	r.FindingRecorded(findings.Finding{Mnemonic: testMnemonic, Coin: coin.BTC, Index: 0, Address: "1abc", Balance: btcBalance(250000000)})
	r.Summary(output.NewSummary(nil, metrics.Snapshot{}, "out.txt", false))

	var events []map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev), scanner.Text())
		events = append(events, ev)
	}
	require.Len(t, events, 6)

	assert.Equal(t, "seed", events[0]["event"])
	assert.Equal(t, testMnemonic, events[0]["mnemonic"])

	assert.Equal(t, "checking", events[1]["event"])
	assert.InDelta(t, 0, events[1]["index"], 0, "index 0 is emitted, not omitted")

	assert.Equal(t, "balance", events[2]["event"])
	assert.Equal(t, "2.5", events[2]["balance"])
	assert.Equal(t, "BTC", events[2]["unit"])
	assert.Equal(t, true, events[2]["ok"])

	assert.Equal(t, false, events[3]["ok"])
	assert.NotContains(t, events[3], "balance")

	assert.Equal(t, "finding", events[4]["event"])
	assert.Equal(t, "1abc", events[4]["address"])

	assert.Equal(t, "summary", events[5]["event"])
	assert.Equal(t, "out.txt", events[5]["findings_file"])
}

func TestConsoleReporter_FetchFailed(t *testing.T) {
	t.Parallel()
	reason := errors.New("API request failed (status: 429)")

	var text bytes.Buffer
	output.NewConsoleReporter(output.NewFormatter(output.FormatText, &text)).
		FetchFailed(coin.LTC, "LUWPbpM43E2p7ZSh8cyTBEkvpHmr3cB8Ez", reason)
	assert.Equal(t,
		"Error fetching LTC balance for LUWPbpM43E2p7ZSh8cyTBEkvpHmr3cB8Ez: API request failed (status: 429)\n",
		text.String())

	var js bytes.Buffer
	output.NewConsoleReporter(output.NewFormatter(output.FormatJSON, &js)).
		FetchFailed(coin.LTC, "Labc", reason)
	var ev map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &ev))
	assert.Equal(t, "fetch_error", ev["event"])
	assert.Equal(t, "LTC", ev["coin"])
	assert.Equal(t, "Labc", ev["address"])
	assert.Equal(t, "API request failed (status: 429)", ev["error"])
	assert.NotContains(t, ev, "index")
}
