package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print version information",
	Long:    `Print the seedscan version, commit and build date along with the Go runtime.`,
	Example: `  seedscan version
  seedscan version -o json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	versionCmd.GroupID = groupConfig
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is the JSON form of the version command.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := versionInfo{
		Version:   orDefault(buildInfo.Version, "dev"),
		Commit:    orDefault(buildInfo.Commit, "unknown"),
		BuildDate: orDefault(buildInfo.Date, "unknown"),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	w := cmd.OutOrStdout()
	if cmdCtx != nil && cmdCtx.Fmt.IsJSON() {
		return writeJSON(w, info)
	}

	out(w, "seedscan %s\n", formatVersion(buildInfo))
	out(w, "  go:       %s\n", info.GoVersion)
	out(w, "  platform: %s\n", info.Platform)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
