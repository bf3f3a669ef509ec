package model

import (
	"fmt"
	"strings"
)

// Verbosity controls how much per-test output the test runner emits.
type Verbosity string

const (
	// VerbosityHigh makes the runner print one status line per test case
	// (go test -v).
	VerbosityHigh Verbosity = "high"

	// VerbosityNormal makes the runner print one summary line per package.
	VerbosityNormal Verbosity = "normal"
)

// String returns the string representation of Verbosity.
func (v Verbosity) String() string {
	return string(v)
}

// IsValid checks whether the Verbosity value is one of the predefined levels.
func (v Verbosity) IsValid() bool {
	switch v {
	case VerbosityHigh, VerbosityNormal:
		return true
	default:
		return false
	}
}

// ParseVerbosity converts a string to a Verbosity.
// Returns an error if the string does not match any valid level.
func ParseVerbosity(s string) (Verbosity, error) {
	v := Verbosity(strings.ToLower(s))
	if !v.IsValid() {
		return "", fmt.Errorf("invalid verbosity: %q (valid: high, normal)", s)
	}
	return v, nil
}

// ReportMode selects the shape of the coverage report printed after the run.
type ReportMode string

const (
	// ReportShowMissing prints, per source file, the line numbers that no
	// test executed, in addition to the statement totals.
	ReportShowMissing ReportMode = "show-missing-lines"

	// ReportSummary prints statement totals and percentages only.
	ReportSummary ReportMode = "summary"
)

// String returns the string representation of ReportMode.
func (m ReportMode) String() string {
	return string(m)
}

// IsValid checks whether the ReportMode value is one of the predefined modes.
func (m ReportMode) IsValid() bool {
	switch m {
	case ReportShowMissing, ReportSummary:
		return true
	default:
		return false
	}
}

// ParseReportMode converts a string to a ReportMode.
func ParseReportMode(s string) (ReportMode, error) {
	m := ReportMode(strings.ToLower(s))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid coverage report mode: %q (valid: show-missing-lines, summary)", s)
	}
	return m, nil
}

// SessionConfig is the full set of options for one test session.
//
// It maps option names to values and is consumed exactly once by the
// launcher. Paths are relative to the repository root, which the launcher
// resolves and enters before invoking the runner.
type SessionConfig struct {
	// ForceColor makes downstream tools emit ANSI colors even when stdout
	// is not a terminal.
	ForceColor bool `json:"forceColor" yaml:"forceColor"`

	// StyleCheck enables the style gate on the target package. Violations
	// fail the session even when every test passes.
	StyleCheck bool `json:"styleCheck" yaml:"styleCheck"`

	// CoverageTarget is the package directory (relative to the repository
	// root) whose lines are instrumented and reported, e.g. "canal".
	CoverageTarget string `json:"coverageTarget" yaml:"coverageTarget"`

	// TestDir is the directory of test sources handed to the runner,
	// e.g. "tests".
	TestDir string `json:"testDir" yaml:"testDir"`

	// Verbosity selects per-test or per-package status lines.
	Verbosity Verbosity `json:"verbosity" yaml:"verbosity"`

	// ReportMode selects the coverage report layout.
	ReportMode ReportMode `json:"reportMode" yaml:"reportMode"`

	// Debug turns on the [verbose] launcher log on stderr.
	Debug bool `json:"debug" yaml:"debug"`
}

// TargetPattern returns the go package pattern covering the target
// package and everything below it ("./canal/...").
func (c SessionConfig) TargetPattern() string {
	return packagePattern(c.CoverageTarget)
}

// TestPattern returns the go package pattern for the test sources.
func (c SessionConfig) TestPattern() string {
	return packagePattern(c.TestDir)
}

func packagePattern(dir string) string {
	dir = strings.TrimSuffix(strings.TrimPrefix(dir, "./"), "/")
	if dir == "" || dir == "." {
		return "./..."
	}
	return "./" + dir + "/..."
}

// ExitCode defines the CLI exit codes. Codes returned by the test runner
// are passed through untouched; these constants only cover failures that
// happen before the runner starts.
type ExitCode int

const (
	// ExitSuccess indicates the session passed.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred. It is also
	// the status go test uses for failing tests, so a style violation on
	// an otherwise green run reports it too.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the override file could not be read or
	// failed validation.
	ExitConfigError ExitCode = 2

	// ExitRepoNotFound indicates no repository root could be located from
	// the current directory.
	ExitRepoNotFound ExitCode = 3

	// ExitToolError indicates an external tool (go, gofmt, git) could not
	// be started at all.
	ExitToolError ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
//
// A CLIError with an empty Message is a silent status: the collaborator
// that produced the code has already reported the failure on its own
// output, and the CLI only relays the code.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Message == "" && e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Silent reports whether the error only carries a status to relay.
func (e *CLIError) Silent() bool {
	return e.Message == "" && e.Err == nil
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitStatus creates a silent CLIError that relays a collaborator's exit
// status. It returns nil for status 0.
func ExitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &CLIError{Code: ExitCode(code)}
}
