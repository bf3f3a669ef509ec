// Package main is the entry point for the testlaunch CLI.
//
// The binary runs the repository's test session and exits with its status.
// All functionality lives in the internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"os"

	"github.com/mmr-tortoise/testlaunch/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	os.Exit(cli.Main())
}
