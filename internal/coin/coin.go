// Package coin defines the closed set of coins seedscan derives and checks.
package coin

import (
	"fmt"
	"strings"
)

// Kind identifies a supported coin.
type Kind string

// Supported coins.
const (
	BTC Kind = "btc"
	ETH Kind = "eth"
	LTC Kind = "ltc"
)

// BIP44 coin types for derivation paths.
const (
	CoinTypeBTC uint32 = 0
	CoinTypeLTC uint32 = 2
	CoinTypeETH uint32 = 60
)

// AddressFormat selects how a public key is turned into an address string.
type AddressFormat int

// Address formats.
const (
	FormatUnknown AddressFormat = iota
	// FormatP2PKH is Base58Check(version || HASH160(compressed pubkey)).
	FormatP2PKH
	// FormatEIP55 is the last 20 bytes of keccak256(uncompressed pubkey) with mixed-case checksum.
	FormatEIP55
)

// P2PKH version bytes on mainnet.
const (
	VersionBTC byte = 0x00
	VersionLTC byte = 0x30
)

// CoinType returns the BIP44 coin type for a coin.
func (k Kind) CoinType() uint32 {
	switch k {
	case BTC:
		return CoinTypeBTC
	case LTC:
		return CoinTypeLTC
	case ETH:
		return CoinTypeETH
	default:
		return 0
	}
}

// Symbol returns the ticker used in console output and the findings file.
func (k Kind) Symbol() string {
	switch k {
	case BTC, ETH, LTC:
		return strings.ToUpper(string(k))
	default:
		return ""
	}
}

// Decimals returns the number of decimal places of the coin's smallest unit.
func (k Kind) Decimals() int {
	switch k {
	case BTC, LTC:
		return 8
	case ETH:
		return 18
	default:
		return 0
	}
}

// AddressFormat returns the address encoding used by the coin.
func (k Kind) AddressFormat() AddressFormat {
	switch k {
	case BTC, LTC:
		return FormatP2PKH
	case ETH:
		return FormatEIP55
	default:
		return FormatUnknown
	}
}

// PubKeyHashVersion returns the P2PKH version byte for Base58Check coins.
// The second return value is false for coins that do not use P2PKH.
func (k Kind) PubKeyHashVersion() (byte, bool) {
	switch k {
	case BTC:
		return VersionBTC, true
	case LTC:
		return VersionLTC, true
	default:
		return 0, false
	}
}

// DerivationPath returns the BIP44 account-level path prefix for the coin.
func (k Kind) DerivationPath(account uint32) string {
	if !k.IsValid() {
		return ""
	}
	return fmt.Sprintf("m/44'/%d'/%d'", k.CoinType(), account)
}

// String returns the coin identifier string.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the coin is supported.
func (k Kind) IsValid() bool {
	switch k {
	case BTC, ETH, LTC:
		return true
	default:
		return false
	}
}

// Parse parses a coin identifier, accepting either case.
func Parse(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.IsValid()
}

// ParseList parses a comma-separated list of coins, dropping duplicates.
func ParseList(s string) ([]Kind, error) {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, ok := Parse(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCoin, part)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil, ErrNoCoins
	}
	return kinds, nil
}

// All returns every supported coin in scan order.
func All() []Kind {
	return []Kind{BTC, ETH, LTC}
}
