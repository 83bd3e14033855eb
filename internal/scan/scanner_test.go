package scan

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/provider"
	"github.com/mrz1836/seedscan/internal/wallet"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var errSinkFull = errors.New("disk full")

// fakeBalances returns zero for every address unless configured otherwise.
type fakeBalances struct {
	mu       sync.Mutex
	amounts  map[string]int64
	failures map[string]bool
	calls    []string
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{
		amounts:  make(map[string]int64),
		failures: make(map[string]bool),
	}
}

func (f *fakeBalances) Fetch(_ context.Context, kind coin.Kind, address string) (*provider.Balance, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, string(kind)+":"+address)
	if f.failures[address] {
		return nil, false
	}
	return provider.NewBalance(kind, address, big.NewInt(f.amounts[address])), true
}

type memorySink struct {
	lines []string
	err   error
}

func (m *memorySink) Append(f findings.Finding) error {
	if m.err != nil {
		return scanerr.WithCause(scanerr.ErrFindingsWrite, m.err)
	}
	m.lines = append(m.lines, findings.FormatLine(f))
	return nil
}

type eventReporter struct {
	events []string
	onSeed func()
}

func (r *eventReporter) SeedGenerated(string) {
	r.events = append(r.events, "seed")
	if r.onSeed != nil {
		r.onSeed()
	}
}

func (r *eventReporter) Checking(kind coin.Kind, index uint32, _ string) {
	r.events = append(r.events, fmt.Sprintf("check %s %d", kind, index))
}

func (r *eventReporter) BalanceResult(kind coin.Kind, _ string, _ *provider.Balance, ok bool) {
	r.events = append(r.events, fmt.Sprintf("result %s %v", kind, ok))
}

func (r *eventReporter) FindingRecorded(f findings.Finding) {
	r.events = append(r.events, fmt.Sprintf("finding %s %d", f.Coin, f.Index))
}

func fixedSeed() SeedSource {
	return func() (string, error) { return abandonMnemonic, nil }
}

func addressOf(t *testing.T, kind coin.Kind, index uint32) string {
	t.Helper()
	seed, err := wallet.MnemonicToSeed(abandonMnemonic, "")
	require.NoError(t, err)
	addr, err := wallet.DeriveAddress(seed, kind, 0, index)
	require.NoError(t, err)
	return addr.Address
}

func testOptions() *Options {
	opts := DefaultOptions()
	opts.SeedSource = fixedSeed()
	return opts
}

func TestRun_AllZeroBalancesWriteNothing(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()
	sink := &memorySink{}

	result, err := NewScanner(balances, sink, testOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, sink.lines)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 1, result.SeedsScanned)
	assert.Equal(t, 15, result.AddressesChecked)
	assert.Equal(t, 0, result.FetchFailures)
	assert.Positive(t, result.Duration)
}

func TestRun_CheckOrder(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()

	_, err := NewScanner(balances, &memorySink{}, testOptions()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, balances.calls, 15)
	for i := uint32(0); i < 5; i++ {
		assert.Equal(t, "btc:"+addressOf(t, coin.BTC, i), balances.calls[i*3])
		assert.Equal(t, "eth:"+addressOf(t, coin.ETH, i), balances.calls[i*3+1])
		assert.Equal(t, "ltc:"+addressOf(t, coin.LTC, i), balances.calls[i*3+2])
	}
}

func TestRun_PositiveAtFinalIndex(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()
	ethAddr := addressOf(t, coin.ETH, 4)
	balances.amounts[ethAddr] = 1

	sink := &memorySink{}
	result, err := NewScanner(balances, sink, testOptions()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, sink.lines, 1)
	assert.Equal(t,
		"Seed: "+abandonMnemonic+" | ETH Address (index 4): "+ethAddr+" | Balance: 0.000000000000000001 ETH",
		sink.lines[0])
	require.Len(t, result.Findings, 1)
	assert.Equal(t, uint32(4), result.Findings[0].Index)
}

func TestRun_PositivesAtEveryIndexAreRecorded(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()
	balances.amounts[addressOf(t, coin.BTC, 0)] = 250000000
	balances.amounts[addressOf(t, coin.LTC, 2)] = 100000000
	balances.amounts[addressOf(t, coin.ETH, 4)] = 7

	sink := &memorySink{}
	result, err := NewScanner(balances, sink, testOptions()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, sink.lines, 3)
	assert.Contains(t, sink.lines[0], "BTC Address (index 0)")
	assert.Contains(t, sink.lines[0], "Balance: 2.5 BTC")
	assert.Contains(t, sink.lines[1], "LTC Address (index 2)")
	assert.Contains(t, sink.lines[1], "Balance: 1.0 LTC")
	assert.Contains(t, sink.lines[2], "ETH Address (index 4)")
	assert.Len(t, result.Findings, 3)
}

func TestRun_FetchFailuresDoNotStopScan(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()
	balances.failures[addressOf(t, coin.BTC, 0)] = true
	balances.failures[addressOf(t, coin.ETH, 1)] = true
	balances.amounts[addressOf(t, coin.LTC, 3)] = 5

	sink := &memorySink{}
	result, err := NewScanner(balances, sink, testOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 15, result.AddressesChecked)
	assert.Equal(t, 2, result.FetchFailures)
	assert.Len(t, sink.lines, 1)
}

func TestRun_SinkFailureIsFatal(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()
	balances.amounts[addressOf(t, coin.BTC, 1)] = 1

	result, err := NewScanner(balances, &memorySink{err: errSinkFull}, testOptions()).Run(context.Background())
	require.ErrorIs(t, err, scanerr.ErrFindingsWrite)
	require.ErrorIs(t, err, errSinkFull)
	require.NotNil(t, result)
	assert.Empty(t, result.Findings)
	// BTC index 1 is the fourth check
	assert.Equal(t, 4, result.AddressesChecked)
}

func TestRun_SeedSourceFailureIsFatal(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.SeedSource = func() (string, error) {
		return "", scanerr.WithCause(scanerr.ErrEntropy, errors.New("no entropy")) //nolint:err113 // test error
	}

	result, err := NewScanner(newFakeBalances(), &memorySink{}, opts).Run(context.Background())
	require.ErrorIs(t, err, scanerr.ErrEntropy)
	assert.Equal(t, 0, result.SeedsScanned)
}

func TestRun_MultipleRounds(t *testing.T) {
	t.Parallel()
	seeds := []string{
		abandonMnemonic,
		"legal winner thank year wave sausage worth useful legal winner thank yellow",
		"letter advice cage absurd amount doctor acoustic avoid letter advice cage above",
	}
	next := 0
	opts := DefaultOptions()
	opts.Rounds = 3
	opts.Indices = 2
	opts.SeedSource = func() (string, error) {
		s := seeds[next]
		next++
		return s, nil
	}

	balances := newFakeBalances()
	result, err := NewScanner(balances, &memorySink{}, opts).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.SeedsScanned)
	assert.Equal(t, 18, result.AddressesChecked)
	assert.Equal(t, 3, next)
}

func TestRun_UntilCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seeds := 0
	reporter := &eventReporter{onSeed: func() {
		seeds++
		if seeds == 2 {
			cancel()
		}
	}}

	opts := testOptions()
	opts.Rounds = 0
	opts.Reporter = reporter

	result, err := NewScanner(newFakeBalances(), &memorySink{}, opts).Run(ctx)
	require.ErrorIs(t, err, ErrScanCanceled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, result.SeedsScanned)
	// first seed fully checked, second stopped before its first request
	assert.Equal(t, 15, result.AddressesChecked)
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	balances := newFakeBalances()
	result, err := NewScanner(balances, &memorySink{}, testOptions()).Run(ctx)
	require.ErrorIs(t, err, ErrScanCanceled)
	assert.Equal(t, 0, result.SeedsScanned)
	assert.Empty(t, balances.calls)
}

func TestRun_ReporterEvents(t *testing.T) {
	t.Parallel()
	balances := newFakeBalances()
	balances.amounts[addressOf(t, coin.ETH, 0)] = 1

	reporter := &eventReporter{}
	opts := testOptions()
	opts.Indices = 1
	opts.Reporter = reporter

	_, err := NewScanner(balances, &memorySink{}, opts).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"seed",
		"check btc 0", "result btc true",
		"check eth 0", "result eth true", "finding eth 0",
		"check ltc 0", "result ltc true",
	}, reporter.events)
}

func TestRun_CoinSubset(t *testing.T) {
	t.Parallel()
	opts := testOptions()
	opts.Coins = []coin.Kind{coin.LTC}

	balances := newFakeBalances()
	result, err := NewScanner(balances, &memorySink{}, opts).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.AddressesChecked)
	for _, call := range balances.calls {
		assert.Regexp(t, "^ltc:L", call)
	}
}

func TestScanMnemonic(t *testing.T) {
	t.Parallel()

	t.Run("scans supplied phrase", func(t *testing.T) {
		t.Parallel()
		balances := newFakeBalances()
		balances.amounts[addressOf(t, coin.BTC, 0)] = 10

		sink := &memorySink{}
		result, err := NewScanner(balances, sink, nil).ScanMnemonic(context.Background(), "  "+abandonMnemonic+"\n")
		require.NoError(t, err)
		assert.Equal(t, 1, result.SeedsScanned)
		require.Len(t, sink.lines, 1)
		assert.Contains(t, sink.lines[0], "Seed: "+abandonMnemonic+" |")
	})

	t.Run("rejects invalid phrase", func(t *testing.T) {
		t.Parallel()
		_, err := NewScanner(newFakeBalances(), &memorySink{}, nil).ScanMnemonic(context.Background(), "abandon about")
		require.ErrorIs(t, err, scanerr.ErrInvalidMnemonic)
	})
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Options)
		ok     bool
	}{
		{"defaults", func(*Options) {}, true},
		{"zero indices", func(o *Options) { o.Indices = 0 }, false},
		{"too many indices", func(o *Options) { o.Indices = MaxIndices + 1 }, false},
		{"negative rounds", func(o *Options) { o.Rounds = -1 }, false},
		{"unbounded rounds", func(o *Options) { o.Rounds = 0 }, true},
		{"no coins", func(o *Options) { o.Coins = nil }, false},
		{"unknown coin", func(o *Options) { o.Coins = []coin.Kind{"doge"} }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultOptions()
			tc.modify(opts)
			err := opts.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidOptions)
			assert.Equal(t, scanerr.ExitInput, scanerr.ExitCode(err))
		})
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.Indices = -1
	result, err := NewScanner(newFakeBalances(), &memorySink{}, opts).Run(context.Background())
	require.ErrorIs(t, err, ErrInvalidOptions)
	assert.Nil(t, result)
}
