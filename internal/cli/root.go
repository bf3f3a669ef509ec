// Package cli implements the cobra-based command line for testlaunch.
//
// testlaunch has a single root command and recognizes no arguments of its
// own: every option of the session is fixed (or comes from the repository's
// override file). This file defines the root command and maps the session
// outcome to the process exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/testlaunch/internal/model"
	"github.com/mmr-tortoise/testlaunch/internal/session"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "testlaunch",
		Short: "Run the repository's test session with style and coverage checks",
		Long: `testlaunch runs the test suite of the repository it is started in.

It forces colored output, enters the repository root, checks the target
package with gofmt, runs go test verbosely with coverage scoped to the
target package, and prints the uncovered lines of every file in it.

The exit status is the exit status of go test. A style violation fails an
otherwise passing run with status 1.

Defaults: target package "canal", test sources "tests". A .testlaunch.jsonc
or .testlaunch.yaml file at the repository root can override them.`,

		Args: cobra.NoArgs,

		// Errors and usage are printed by Run, and only when the launcher
		// itself failed; runner failures are already on screen.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}
}

// runSession launches one session from the current directory and turns its
// status into an error carrying the exit code.
func runSession(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot read working directory", err)
	}

	launcher := session.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
	launcher.Verbose = VerboseLog

	status, err := launcher.Launch(cmd.Context(), wd)
	if err != nil {
		return err
	}
	return model.ExitStatus(status)
}

// Run executes the root command and returns the process exit code.
//
// A CLIError carries its own exit code. Silent ones (a relayed runner
// status) print nothing; others are printed to stderr. Any other error
// exits with code 1.
func Run(rootCmd *cobra.Command) int {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return int(model.ExitSuccess)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if !cliErr.Silent() {
			printError(cliErr.Message, cliErr.Err)
		}
		return int(cliErr.Code)
	}

	// Generic error, e.g. an unexpected argument rejected by cobra.
	printError(err.Error(), nil)
	return int(model.ExitGeneralError)
}

// Main builds the root command, runs it, and returns the exit code.
func Main() int {
	return Run(NewRootCommand())
}

// printError outputs an error message on stderr.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints a launcher debug message to stderr. The session only
// calls it when the override file sets "debug": true.
func VerboseLog(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
}
