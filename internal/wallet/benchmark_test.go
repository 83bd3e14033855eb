package wallet

import (
	"testing"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/secure"
)

func BenchmarkGenerateMnemonic12(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GenerateMnemonic(ScanWordCount)
	}
}

func BenchmarkValidateMnemonic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ValidateMnemonic(abandonMnemonic)
	}
}

func BenchmarkMnemonicToSeed(b *testing.B) {
	for i := 0; i < b.N; i++ {
		seed, _ := MnemonicToSeed(abandonMnemonic, "")
		secure.Zero(seed)
	}
}

func BenchmarkDeriveAddressETH(b *testing.B) {
	seed, _ := MnemonicToSeed(abandonMnemonic, "")
	defer secure.Zero(seed)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DeriveAddress(seed, coin.ETH, 0, uint32(i%5)) //nolint:gosec // i%5 fits in uint32
	}
}

func BenchmarkDeriveAddressBTC(b *testing.B) {
	seed, _ := MnemonicToSeed(abandonMnemonic, "")
	defer secure.Zero(seed)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DeriveAddress(seed, coin.BTC, 0, uint32(i%5)) //nolint:gosec // i%5 fits in uint32
	}
}

// BenchmarkDeriverRound measures one full scan round: three coins, five indices.
func BenchmarkDeriverRound(b *testing.B) {
	for i := 0; i < b.N; i++ {
		d, err := NewDeriver(abandonMnemonic, 0)
		if err != nil {
			b.Fatal(err)
		}
		for _, kind := range coin.All() {
			for index := uint32(0); index < 5; index++ {
				_, _ = d.Derive(kind, index)
			}
		}
		d.Destroy()
	}
}
