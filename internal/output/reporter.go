package output

import (
	"time"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/metrics"
	"github.com/mrz1836/seedscan/internal/provider"
	"github.com/mrz1836/seedscan/internal/scan"
)

var _ scan.Reporter = (*ConsoleReporter)(nil)

// Event is one JSON line emitted by ConsoleReporter in JSON mode.
type Event struct {
	Event    string  `json:"event"`
	Mnemonic string  `json:"mnemonic,omitempty"`
	Coin     string  `json:"coin,omitempty"`
	Index    *uint32 `json:"index,omitempty"`
	Address  string  `json:"address,omitempty"`
	Balance  string  `json:"balance,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	OK       *bool   `json:"ok,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Summary is the closing report of a scan.
type Summary struct {
	Event            string  `json:"event"`
	SeedsScanned     int     `json:"seeds_scanned"`
	AddressesChecked int     `json:"addresses_checked"`
	FetchFailures    int     `json:"fetch_failures"`
	Findings         int     `json:"findings"`
	FindingsFile     string  `json:"findings_file"`
	APICalls         int64   `json:"api_calls"`
	APIErrors        int64   `json:"api_errors"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	Duration         string  `json:"duration"`
	Interrupted      bool    `json:"interrupted,omitempty"`
}

// ConsoleReporter prints scan progress as text lines or JSON events.
type ConsoleReporter struct {
	f *Formatter
}

// NewConsoleReporter creates a reporter writing through f.
func NewConsoleReporter(f *Formatter) *ConsoleReporter {
	return &ConsoleReporter{f: f}
}

// SeedGenerated prints the phrase about to be scanned.
func (r *ConsoleReporter) SeedGenerated(mnemonic string) {
	if r.f.IsJSON() {
		_ = r.f.Event(Event{Event: "seed", Mnemonic: mnemonic})
		return
	}
	_ = r.f.Printf("Generated Seed Phrase: %s\n", mnemonic)
}

// Checking prints the address about to be queried.
func (r *ConsoleReporter) Checking(kind coin.Kind, index uint32, address string) {
	if r.f.IsJSON() {
		_ = r.f.Event(Event{Event: "checking", Coin: kind.Symbol(), Index: &index, Address: address})
		return
	}
	_ = r.f.Printf("Checking %s Address (index %d): %s\n", kind.Symbol(), index, address)
}

// FetchFailed prints why the balance of address could not be retrieved.
func (r *ConsoleReporter) FetchFailed(kind coin.Kind, address string, err error) {
	if r.f.IsJSON() {
		_ = r.f.Event(Event{Event: "fetch_error", Coin: kind.Symbol(), Address: address, Error: err.Error()})
		return
	}
	_ = r.f.Printf("Error fetching %s balance for %s: %v\n", kind.Symbol(), address, err)
}

// BalanceResult prints the balance or the fact that it could not be retrieved.
func (r *ConsoleReporter) BalanceResult(kind coin.Kind, address string, balance *provider.Balance, ok bool) {
	if r.f.IsJSON() {
		ev := Event{Event: "balance", Coin: kind.Symbol(), Address: address, OK: &ok}
		if ok {
			ev.Balance = balance.String()
			ev.Unit = kind.Symbol()
		}
		_ = r.f.Event(ev)
		return
	}
	if !ok {
		_ = r.f.Printf("Could not retrieve %s balance\n", kind.Symbol())
		return
	}
	_ = r.f.Printf("Balance for %s: %s %s\n", address, balance.String(), kind.Symbol())
}

// FindingRecorded announces a persisted finding.
func (r *ConsoleReporter) FindingRecorded(f findings.Finding) {
	if r.f.IsJSON() {
		index := f.Index
		_ = r.f.Event(Event{
			Event:    "finding",
			Mnemonic: f.Mnemonic,
			Coin:     f.Coin.Symbol(),
			Index:    &index,
			Address:  f.Address,
			Balance:  f.Balance.String(),
			Unit:     f.Coin.Symbol(),
		})
		return
	}
	Success(r.f.Writer(), "Found %s %s at index %d, recorded to findings file", f.Balance.String(), f.Coin.Symbol(), f.Index)
}

// NewSummary combines a scan result with a metrics snapshot.
func NewSummary(res *scan.Result, snap metrics.Snapshot, findingsFile string, interrupted bool) Summary {
	s := Summary{
		Event:        "summary",
		FindingsFile: findingsFile,
		APICalls:     snap.APICallsTotal,
		APIErrors:    snap.APIErrorsTotal,
		Interrupted:  interrupted,
	}
	if snap.APICallsTotal > 0 {
		s.AvgLatencyMs = float64(snap.APILatencyNanos) / float64(snap.APICallsTotal) / float64(time.Millisecond)
	}
	if res != nil {
		s.SeedsScanned = res.SeedsScanned
		s.AddressesChecked = res.AddressesChecked
		s.FetchFailures = res.FetchFailures
		s.Findings = len(res.Findings)
		s.Duration = res.Duration.Round(time.Millisecond).String()
	}
	return s
}

// Summary prints the closing report.
func (r *ConsoleReporter) Summary(s Summary) {
	if r.f.IsJSON() {
		_ = r.f.Event(s)
		return
	}

	_ = r.f.Println()
	if s.Interrupted {
		Warn(r.f.Writer(), "Scan interrupted")
	}
	_ = r.f.Printf("Seeds scanned:     %d\n", s.SeedsScanned)
	_ = r.f.Printf("Addresses checked: %d\n", s.AddressesChecked)
	_ = r.f.Printf("Fetch failures:    %d\n", s.FetchFailures)
	_ = r.f.Printf("API calls:         %d (%d errors, avg %.0f ms)\n", s.APICalls, s.APIErrors, s.AvgLatencyMs)
	_ = r.f.Printf("Duration:          %s\n", s.Duration)
	if s.Findings > 0 {
		Success(r.f.Writer(), "%d finding(s) written to %s", s.Findings, s.FindingsFile)
	} else {
		_ = r.f.Printf("No balances found.\n")
	}
}
