// Package balance turns provider lookups into best-effort balance results.
// Every provider failure is logged and reported as an absent balance; no
// error ever reaches the caller.
package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/metrics"
	"github.com/mrz1836/seedscan/internal/provider"
)

var (
	// ErrNoProvider is the absence reason for a coin with no registered fetcher.
	ErrNoProvider = errors.New("no balance provider configured")

	// ErrEmptyResult is the absence reason for a provider returning no amount.
	ErrEmptyResult = errors.New("empty result")
)

// Logger is the interface for balance diagnostics.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the configuration for the balance service.
type Config struct {
	// Fetchers are the provider clients, at most one per coin. Later entries
	// replace earlier ones for the same coin.
	Fetchers []provider.Fetcher

	// Timeout is the per-request deadline. Zero uses provider.DefaultRequestTimeout.
	Timeout time.Duration

	// Logger receives request and failure diagnostics. Optional.
	Logger Logger

	// OnFailure is called with the reason whenever a balance is reported
	// absent, before Fetch returns. Optional.
	OnFailure func(kind coin.Kind, address string, err error)

	// Metrics records API calls. Defaults to metrics.Global.
	Metrics *metrics.Metrics
}

// Service fetches balances through the registered provider for each coin.
type Service struct {
	fetchers map[coin.Kind]provider.Fetcher
	timeout  time.Duration
	logger    Logger
	onFailure func(kind coin.Kind, address string, err error)
	metrics   *metrics.Metrics
}

// NewService creates a new balance service.
func NewService(cfg *Config) *Service {
	s := &Service{
		fetchers: make(map[coin.Kind]provider.Fetcher),
		timeout:  provider.DefaultRequestTimeout,
		metrics:  metrics.Global,
	}

	if cfg == nil {
		return s
	}

	for _, f := range cfg.Fetchers {
		if f != nil {
			s.fetchers[f.Coin()] = f
		}
	}
	if cfg.Timeout > 0 {
		s.timeout = cfg.Timeout
	}
	if cfg.Metrics != nil {
		s.metrics = cfg.Metrics
	}
	s.logger = cfg.Logger
	s.onFailure = cfg.OnFailure

	return s
}

// Supports reports whether a fetcher is registered for kind.
func (s *Service) Supports(kind coin.Kind) bool {
	_, ok := s.fetchers[kind]
	return ok
}

// Fetch returns the balance of address, or (nil, false) when it could not be
// determined for any reason.
func (s *Service) Fetch(ctx context.Context, kind coin.Kind, address string) (balance *provider.Balance, ok bool) {
	fetcher, found := s.fetchers[kind]
	if !found {
		s.fail(kind, address, ErrNoProvider)
		return nil, false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordAPICall(string(kind), time.Since(start), fmt.Errorf("panic: %v", r))
			s.fail(kind, address, fmt.Errorf("provider panic: %v", r))
			balance, ok = nil, false
		}
	}()

	s.debugf("fetching %s balance for %s", kind.Symbol(), address)
	result, err := fetcher.GetBalance(fetchCtx, address)
	elapsed := time.Since(start)
	s.metrics.RecordAPICall(string(kind), elapsed, err)

	if err != nil {
		s.fail(kind, address, err)
		return nil, false
	}
	if result == nil || result.Amount == nil {
		s.fail(kind, address, ErrEmptyResult)
		return nil, false
	}

	s.debugf("%s balance for %s: %s (%s)", kind.Symbol(), address, result, elapsed.Round(time.Millisecond))
	return result, true
}

// fail logs the reason a balance is absent and hands it to OnFailure.
func (s *Service) fail(kind coin.Kind, address string, err error) {
	s.errorf("error fetching %s balance for %s: %v", kind.Symbol(), address, err)
	if s.onFailure != nil {
		s.onFailure(kind, address, err)
	}
}

func (s *Service) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(format, args...)
	}
}

func (s *Service) errorf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Error(format, args...)
	}
}
