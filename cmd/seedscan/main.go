// Package main is the entry point for the seedscan CLI.
package main

import (
	"os"

	"github.com/mrz1836/seedscan/internal/cli"
)

// Set through -ldflags at build time.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	if err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, Date: date}); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
