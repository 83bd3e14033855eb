// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds scan metrics using atomic counters for thread safety.
type Metrics struct {
	// Balance API metrics
	apiCallsTotal   atomic.Int64
	apiErrorsTotal  atomic.Int64
	apiLatencyNanos atomic.Int64

	// Per-coin API calls
	btcAPICalls atomic.Int64
	ethAPICalls atomic.Int64
	ltcAPICalls atomic.Int64

	// Derivation metrics
	derivationsTotal  atomic.Int64
	derivationsErrors atomic.Int64

	// Scan metrics
	seedsGenerated atomic.Int64
	findingsTotal  atomic.Int64
}

// Global is the global metrics instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordAPICall records a balance API call with its duration and success status.
func (m *Metrics) RecordAPICall(coin string, duration time.Duration, err error) {
	m.apiCallsTotal.Add(1)
	m.apiLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.apiErrorsTotal.Add(1)
	}

	switch coin {
	case "btc":
		m.btcAPICalls.Add(1)
	case "eth":
		m.ethAPICalls.Add(1)
	case "ltc":
		m.ltcAPICalls.Add(1)
	}
}

// RecordDerivation records an address derivation.
func (m *Metrics) RecordDerivation(err error) {
	m.derivationsTotal.Add(1)
	if err != nil {
		m.derivationsErrors.Add(1)
	}
}

// RecordSeed records a generated seed phrase.
func (m *Metrics) RecordSeed() {
	m.seedsGenerated.Add(1)
}

// RecordFinding records a positive-balance finding.
func (m *Metrics) RecordFinding() {
	m.findingsTotal.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	APICallsTotal     int64 `json:"api_calls_total"`
	APIErrorsTotal    int64 `json:"api_errors_total"`
	APILatencyNanos   int64 `json:"api_latency_nanos"`
	BTCAPICalls       int64 `json:"btc_api_calls"`
	ETHAPICalls       int64 `json:"eth_api_calls"`
	LTCAPICalls       int64 `json:"ltc_api_calls"`
	DerivationsTotal  int64 `json:"derivations_total"`
	DerivationsErrors int64 `json:"derivations_errors"`
	SeedsGenerated    int64 `json:"seeds_generated"`
	FindingsTotal     int64 `json:"findings_total"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		APICallsTotal:     m.apiCallsTotal.Load(),
		APIErrorsTotal:    m.apiErrorsTotal.Load(),
		APILatencyNanos:   m.apiLatencyNanos.Load(),
		BTCAPICalls:       m.btcAPICalls.Load(),
		ETHAPICalls:       m.ethAPICalls.Load(),
		LTCAPICalls:       m.ltcAPICalls.Load(),
		DerivationsTotal:  m.derivationsTotal.Load(),
		DerivationsErrors: m.derivationsErrors.Load(),
		SeedsGenerated:    m.seedsGenerated.Load(),
		FindingsTotal:     m.findingsTotal.Load(),
	}
}

// APICallsTotal returns the total number of balance API calls made.
func (m *Metrics) APICallsTotal() int64 {
	return m.apiCallsTotal.Load()
}

// APIErrorsTotal returns the total number of failed balance API calls.
func (m *Metrics) APIErrorsTotal() int64 {
	return m.apiErrorsTotal.Load()
}

// APILatencyAvgMs returns the average API latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) APILatencyAvgMs() float64 {
	calls := m.apiCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	return float64(m.apiLatencyNanos.Load()) / float64(calls) / 1e6
}

// Reset resets all metrics to zero.
func (m *Metrics) Reset() {
	m.apiCallsTotal.Store(0)
	m.apiErrorsTotal.Store(0)
	m.apiLatencyNanos.Store(0)
	m.btcAPICalls.Store(0)
	m.ethAPICalls.Store(0)
	m.ltcAPICalls.Store(0)
	m.derivationsTotal.Store(0)
	m.derivationsErrors.Store(0)
	m.seedsGenerated.Store(0)
	m.findingsTotal.Store(0)
}
