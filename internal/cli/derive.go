package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/seedscan/internal/coin"
	"github.com/mrz1836/seedscan/internal/output"
	"github.com/mrz1836/seedscan/internal/scan"
	"github.com/mrz1836/seedscan/internal/wallet"
	scanerr "github.com/mrz1836/seedscan/pkg/errors"
)

// deriveCmd prints the addresses of a phrase without touching the network.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive receive addresses for a mnemonic offline",
	Long: `Derive the BIP44 external-chain addresses of a mnemonic for each coin and
print them with their derivation paths. No balance is queried.

When --mnemonic is omitted the phrase is read from stdin.`,
	Example: `  seedscan derive --mnemonic "abandon abandon ... about"
  seedscan derive --coins eth --indices 10 -o json`,
	RunE: runDerive,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	deriveMnemonic string
	deriveIndices  int
	deriveAccount  uint32
	deriveCoins    string
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	deriveCmd.GroupID = groupScan
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringVar(&deriveMnemonic, "mnemonic", "", "seed phrase to derive from")
	deriveCmd.Flags().IntVar(&deriveIndices, "indices", scan.DefaultIndices, "address indices per coin")
	deriveCmd.Flags().Uint32Var(&deriveAccount, "account", 0, "BIP44 account number")
	deriveCmd.Flags().StringVar(&deriveCoins, "coins", "btc,eth,ltc", "comma-separated coins")
}

func runDerive(cmd *cobra.Command, _ []string) error {
	if deriveIndices <= 0 || deriveIndices > scan.MaxIndices {
		return scanerr.WithDetails(scanerr.ErrInvalidInput, map[string]string{
			"indices": strconv.Itoa(deriveIndices),
		})
	}

	kinds, err := coin.ParseList(deriveCoins)
	if err != nil {
		return scanerr.WithCause(scanerr.ErrInvalidInput, err)
	}

	input := deriveMnemonic
	if input == "" {
		if input, err = promptMnemonicFn(); err != nil {
			return err
		}
	}

	mnemonic, err := checkMnemonic(input)
	if err != nil {
		return err
	}

	deriver, err := wallet.NewDeriver(mnemonic, deriveAccount)
	if err != nil {
		return err
	}
	defer deriver.Destroy()

	addresses := make([]*wallet.Address, 0, len(kinds)*deriveIndices)
	for _, kind := range kinds {
		for i := 0; i < deriveIndices; i++ {
			addr, err := deriver.Derive(kind, uint32(i)) //nolint:gosec // bounded by MaxIndices
			if err != nil {
				return err
			}
			addresses = append(addresses, addr)
		}
	}
	cmdCtx.Log.Debug("derived %d addresses for %d coins", len(addresses), len(kinds))

	w := cmd.OutOrStdout()
	if cmdCtx.Fmt.IsJSON() {
		return writeJSON(w, addresses)
	}

	table := output.NewTable("COIN", "INDEX", "PATH", "ADDRESS")
	for _, a := range addresses {
		table.AddRow(a.Coin.Symbol(), strconv.FormatUint(uint64(a.Index), 10), a.Path, a.Address)
	}
	return table.Render(w)
}
