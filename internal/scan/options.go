package scan

import (
	"strconv"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/wallet"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// Default scanning parameters.
const (
	// DefaultIndices is the number of external-chain addresses checked per coin (0..4).
	DefaultIndices = 5

	// DefaultRounds is the number of seeds generated per run.
	DefaultRounds = 1

	// MaxIndices bounds the per-seed index range.
	MaxIndices = 1000
)

// ErrInvalidOptions indicates the scan options are invalid.
var ErrInvalidOptions = &scanerr.SeedscanError{
	Code:     "INVALID_SCAN_OPTIONS",
	Message:  "invalid scan options",
	ExitCode: scanerr.ExitInput,
}

// SeedSource produces the mnemonic for each round.
type SeedSource func() (string, error)

// Options configures a scan.
type Options struct {
	// Indices is the number of address indices checked per coin, starting at 0.
	// Default: DefaultIndices (5).
	Indices int

	// Account is the BIP44 account used in every derivation path.
	Account uint32

	// Rounds is the number of seeds generated by Run. Zero runs until the
	// context is canceled. Default: DefaultRounds (1).
	Rounds int

	// Coins lists the coins checked at each index, in order.
	// Default: coin.All() (btc, eth, ltc).
	Coins []coin.Kind

	// Reporter receives progress events. Optional.
	Reporter Reporter

	// SeedSource overrides mnemonic generation. Default: 12-word BIP39.
	SeedSource SeedSource
}

// DefaultOptions returns options matching the classic single-seed scan.
func DefaultOptions() *Options {
	return &Options{
		Indices: DefaultIndices,
		Rounds:  DefaultRounds,
		Coins:   coin.All(),
	}
}

// Validate checks that the options are usable.
func (o *Options) Validate() error {
	if o.Indices <= 0 || o.Indices > MaxIndices {
		return scanerr.WithDetails(ErrInvalidOptions, map[string]string{
			"indices": strconv.Itoa(o.Indices),
		})
	}
	if o.Rounds < 0 {
		return scanerr.WithDetails(ErrInvalidOptions, map[string]string{
			"rounds": strconv.Itoa(o.Rounds),
		})
	}
	if len(o.Coins) == 0 {
		return scanerr.WithDetails(ErrInvalidOptions, map[string]string{
			"coins": "none selected",
		})
	}
	for _, k := range o.Coins {
		if !k.IsValid() {
			return scanerr.WithDetails(ErrInvalidOptions, map[string]string{
				"coin": string(k),
			})
		}
	}
	return nil
}

func (o *Options) seedSource() SeedSource {
	if o.SeedSource != nil {
		return o.SeedSource
	}
	return func() (string, error) {
		return wallet.GenerateMnemonic(wallet.ScanWordCount)
	}
}

func (o *Options) reporter() Reporter {
	if o.Reporter != nil {
		return o.Reporter
	}
	return nopReporter{}
}
