// Package provider defines the balance lookup contract implemented by each
// block-explorer client, plus the shared HTTP plumbing they use.
package provider

import (
	"context"
	"math/big"

	"github.com/mrz1836/seedscan/internal/coin"
)

// MaxResponseBody is the maximum response body size read from a provider (1 MB).
const MaxResponseBody = 1 << 20

// Balance is a confirmed address balance in the coin's smallest unit.
type Balance struct {
	Coin     coin.Kind
	Address  string
	Amount   *big.Int
	Decimals int
}

// NewBalance builds a Balance using the coin's native decimals.
func NewBalance(kind coin.Kind, address string, amount *big.Int) *Balance {
	return &Balance{
		Coin:     kind,
		Address:  address,
		Amount:   amount,
		Decimals: kind.Decimals(),
	}
}

// IsPositive reports whether the balance is strictly greater than zero.
func (b *Balance) IsPositive() bool {
	return b != nil && b.Amount != nil && b.Amount.Sign() > 0
}

// String returns the amount in native units, e.g. "2.5".
func (b *Balance) String() string {
	if b == nil {
		return "0"
	}
	return coin.FormatDecimalAmount(b.Amount, b.Decimals)
}

// Float64 returns the amount in native units as a float.
func (b *Balance) Float64() float64 {
	if b == nil {
		return 0
	}
	return coin.ToFloat64(b.Amount, b.Decimals)
}

// Fetcher looks up the balance of one coin's addresses against a single provider.
type Fetcher interface {
	// Coin returns the coin this fetcher serves.
	Coin() coin.Kind

	// GetBalance returns the confirmed balance of address.
	GetBalance(ctx context.Context, address string) (*Balance, error)
}

// TruncateBody truncates a string to maxLen characters.
func TruncateBody(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
