// Package scan drives the generate, derive, check and record loop.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/metrics"
	"github.com/mrz1836/seedscan/internal/provider"
	"github.com/mrz1836/seedscan/internal/wallet"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// ErrScanCanceled indicates the scan was stopped by its context.
var ErrScanCanceled = &scanerr.SeedscanError{
	Code:     "SCAN_CANCELED",
	Message:  "scan was canceled",
	ExitCode: scanerr.ExitGeneral,
}

// BalanceFetcher returns a balance or reports it absent. It never fails.
type BalanceFetcher interface {
	Fetch(ctx context.Context, kind coin.Kind, address string) (*provider.Balance, bool)
}

// Sink persists findings.
type Sink interface {
	Append(f findings.Finding) error
}

// Result summarizes a scan.
type Result struct {
	SeedsScanned     int                `json:"seeds_scanned"`
	AddressesChecked int                `json:"addresses_checked"`
	FetchFailures    int                `json:"fetch_failures"`
	Findings         []findings.Finding `json:"-"`
	Duration         time.Duration      `json:"duration"`
}

// Scanner checks the addresses of generated seeds one request at a time.
type Scanner struct {
	balances BalanceFetcher
	sink     Sink
	opts     *Options
	reporter Reporter
	metrics  *metrics.Metrics
}

// NewScanner creates a new scanner. Nil opts uses DefaultOptions.
func NewScanner(balances BalanceFetcher, sink Sink, opts *Options) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Scanner{
		balances: balances,
		sink:     sink,
		opts:     opts,
		reporter: opts.reporter(),
		metrics:  metrics.Global,
	}
}

// Run generates Rounds seeds (or keeps going until ctx is canceled when
// Rounds is zero) and scans each one. The result is returned even on error.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{}
	defer func() { result.Duration = time.Since(start) }()

	generate := s.opts.seedSource()
	for round := 0; s.opts.Rounds == 0 || round < s.opts.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return result, scanerr.WithCause(ErrScanCanceled, err)
		}

		mnemonic, err := generate()
		if err != nil {
			return result, err
		}
		s.metrics.RecordSeed()

		if err := s.scanSeed(ctx, mnemonic, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// ScanMnemonic scans a single caller-supplied mnemonic.
func (s *Scanner) ScanMnemonic(ctx context.Context, mnemonic string) (*Result, error) {
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{}
	err := s.scanSeed(ctx, wallet.NormalizeMnemonicInput(mnemonic), result)
	result.Duration = time.Since(start)
	return result, err
}

// scanSeed checks every (index, coin) pair of one seed, indices ascending and
// coins in option order. Each positive balance is persisted before the next
// request so earlier hits survive a later failure.
func (s *Scanner) scanSeed(ctx context.Context, mnemonic string, result *Result) error {
	deriver, err := wallet.NewDeriver(mnemonic, s.opts.Account)
	if err != nil {
		return err
	}
	defer deriver.Destroy()

	result.SeedsScanned++
	s.reporter.SeedGenerated(mnemonic)

	for i := 0; i < s.opts.Indices; i++ {
		index := uint32(i) //nolint:gosec // bounded by MaxIndices
		for _, kind := range s.opts.Coins {
			if err := ctx.Err(); err != nil {
				return scanerr.WithCause(ErrScanCanceled, err)
			}

			addr, err := deriver.Derive(kind, index)
			if err != nil {
				return fmt.Errorf("deriving %s index %d: %w", kind, index, err)
			}

			s.reporter.Checking(kind, index, addr.Address)
			balance, ok := s.balances.Fetch(ctx, kind, addr.Address)
			result.AddressesChecked++
			if !ok {
				result.FetchFailures++
			}
			s.reporter.BalanceResult(kind, addr.Address, balance, ok)

			if !ok || !balance.IsPositive() {
				continue
			}

			finding := findings.Finding{
				Mnemonic: mnemonic,
				Coin:     kind,
				Index:    index,
				Address:  addr.Address,
				Balance:  balance,
			}
			if err := s.sink.Append(finding); err != nil {
				return err
			}
			result.Findings = append(result.Findings, finding)
			s.metrics.RecordFinding()
			s.reporter.FindingRecorded(finding)
		}
	}

	return nil
}
