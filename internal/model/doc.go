// Package model defines the domain types and value objects for the
// testlaunch CLI.
//
// This package contains pure data structures with no external dependencies.
// The SessionConfig is built once per invocation from static defaults (and
// an optional repository-local override file), handed to the runner, and
// discarded when the process exits. Nothing here is persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
