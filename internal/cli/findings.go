package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/seedscan/internal/config"
	"github.com/mrz1836/seedscan/internal/findings"
	"github.com/mrz1836/seedscan/internal/output"
	"github.com/mrz1836/seedscan/internal/secure"
)

// findingsCmd is the parent command for findings file operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "Inspect and protect the findings file",
	Long: `List recorded findings, or encrypt the findings file with a passphrase so
discovered seed phrases do not sit on disk in plain text.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var findingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded findings",
	Long: `Parse the findings file and list every recorded hit. Lines that do not
match the findings format are counted and skipped.`,
	Example: `  seedscan findings list
  seedscan findings list --file found.txt -o json`,
	RunE: runFindingsList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var findingsSealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Encrypt the findings file with a passphrase",
	Long: `Encrypt the findings file with an age scrypt passphrase. The sealed copy is
written next to the original with a .age suffix unless --out is given.
With --remove the plain-text file is truncated afterwards.

The passphrase is read from SEEDSCAN_FINDINGS_PASSPHRASE or prompted for.`,
	Example: `  seedscan findings seal --remove`,
	RunE: runFindingsSeal,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var findingsShowCmd = &cobra.Command{
	Use:   "show SEALED_FILE",
	Short: "Decrypt and list a sealed findings file",
	Long: `Decrypt a findings file produced by 'findings seal' and list its entries.
The passphrase is read from SEEDSCAN_FINDINGS_PASSPHRASE or prompted for.`,
	Example: `  seedscan findings show valid_wallets.txt.age
  seedscan findings show valid_wallets.txt.age -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runFindingsShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	findingsFile   string
	findingsOut    string
	findingsRemove bool
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	findingsCmd.GroupID = groupFindings
	rootCmd.AddCommand(findingsCmd)
	findingsCmd.AddCommand(findingsListCmd)
	findingsCmd.AddCommand(findingsSealCmd)
	findingsCmd.AddCommand(findingsShowCmd)

	findingsCmd.PersistentFlags().StringVar(&findingsFile, "file", "", "findings file (default from config)")
	findingsSealCmd.Flags().StringVar(&findingsOut, "out", "", "sealed output path (default <file>.age)")
	findingsSealCmd.Flags().BoolVar(&findingsRemove, "remove", false, "truncate the plain-text file after sealing")
}

// findingsPath resolves the findings file from the flag or configuration.
func findingsPath() string {
	if findingsFile != "" {
		return findingsFile
	}
	if cmdCtx != nil && cmdCtx.Cfg != nil && cmdCtx.Cfg.Findings.File != "" {
		return cmdCtx.Cfg.Findings.File
	}
	return findings.DefaultFile
}

// findingsList is the JSON form of a findings listing.
type findingsList struct {
	File      string         `json:"file"`
	Findings  []findingEntry `json:"findings"`
	Malformed int            `json:"malformed"`
}

type findingEntry struct {
	Coin     string `json:"coin"`
	Index    uint32 `json:"index"`
	Address  string `json:"address"`
	Balance  string `json:"balance"`
	Mnemonic string `json:"mnemonic"`
}

func runFindingsList(cmd *cobra.Command, _ []string) error {
	path := findingsPath()
	found, malformed, err := findings.ReadFile(path)
	if err != nil {
		return err
	}
	return displayFindings(cmd, path, found, malformed)
}

func runFindingsShow(cmd *cobra.Command, args []string) error {
	passphrase, err := findingsPassphrase(false)
	if err != nil {
		return err
	}
	defer secure.Zero(passphrase)

	found, malformed, err := findings.ReadSealedFile(args[0], string(passphrase))
	if err != nil {
		return err
	}
	return displayFindings(cmd, args[0], found, malformed)
}

func runFindingsSeal(cmd *cobra.Command, _ []string) error {
	src := findingsPath()
	dst := findingsOut
	if dst == "" {
		dst = src + findings.SealedExt
	}

	passphrase, err := findingsPassphrase(true)
	if err != nil {
		return err
	}
	defer secure.Zero(passphrase)

	count, err := findings.SealFile(src, dst, string(passphrase), findingsRemove)
	if err != nil {
		return err
	}
	cmdCtx.Log.Debug("sealed %d findings from %s into %s", count, src, dst)

	w := cmd.OutOrStdout()
	if cmdCtx.Fmt.IsJSON() {
		return writeJSON(w, map[string]any{
			"source":   src,
			"sealed":   dst,
			"findings": count,
			"removed":  findingsRemove,
		})
	}

	output.Success(w, "Sealed %d finding(s) into %s", count, dst)
	if findingsRemove {
		output.Info(w, "Plain-text file %s truncated", src)
	}
	return nil
}

// findingsPassphrase returns the passphrase from the environment or a prompt.
func findingsPassphrase(confirm bool) ([]byte, error) {
	if v := os.Getenv(config.EnvFindingsPassphrase); v != "" {
		return []byte(v), nil
	}
	if confirm {
		return promptNewPasswordFn()
	}
	return promptPasswordFn("Enter findings passphrase: ")
}

func displayFindings(cmd *cobra.Command, path string, found []findings.Finding, malformed int) error {
	w := cmd.OutOrStdout()

	if cmdCtx.Fmt.IsJSON() {
		list := findingsList{File: path, Findings: make([]findingEntry, 0, len(found)), Malformed: malformed}
		for _, f := range found {
			list.Findings = append(list.Findings, findingEntry{
				Coin:     f.Coin.Symbol(),
				Index:    f.Index,
				Address:  f.Address,
				Balance:  f.Balance.String(),
				Mnemonic: f.Mnemonic,
			})
		}
		return writeJSON(w, list)
	}

	if len(found) == 0 {
		outln(w, "No findings recorded in "+path)
	} else {
		table := output.NewTable("COIN", "INDEX", "ADDRESS", "BALANCE", "SEED")
		for _, f := range found {
			table.AddRow(f.Coin.Symbol(), strconv.FormatUint(uint64(f.Index), 10), f.Address,
				f.Balance.String()+" "+f.Coin.Symbol(), f.Mnemonic)
		}
		if err := table.Render(w); err != nil {
			return err
		}
	}

	if malformed > 0 {
		output.Warn(w, "%d malformed line(s) skipped", malformed)
	}
	return nil
}
