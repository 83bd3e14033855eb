package scan

import (
	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/provider"
)

// Reporter receives scan progress events in the order they happen.
type Reporter interface {
	// SeedGenerated is called once per seed before any address is checked.
	SeedGenerated(mnemonic string)

	// Checking is called before the balance of an address is requested.
	Checking(kind coin.Kind, index uint32, address string)

	// BalanceResult is called with the fetched balance, or ok=false when absent.
	BalanceResult(kind coin.Kind, address string, balance *provider.Balance, ok bool)

	// FindingRecorded is called after a finding is persisted.
	FindingRecorded(f findings.Finding)
}

type nopReporter struct{}

func (nopReporter) SeedGenerated(string) {}
func (nopReporter) Checking(coin.Kind, uint32, string) {}
func (nopReporter) BalanceResult(coin.Kind, string, *provider.Balance, bool) {}
func (nopReporter) FindingRecorded(findings.Finding) {}
