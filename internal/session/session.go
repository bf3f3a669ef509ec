// Package session launches one test session: it forces colored output,
// enters the repository root, runs the style check and the test runner
// against the configured package, prints the coverage report, and relays
// the outcome as an exit status.
//
// The launcher adds no failure handling of its own. The runner's output is
// streamed as-is and its exit status is returned unchanged; a style
// violation on an otherwise passing run yields status 1, the status go test
// itself uses for failures.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/mmr-tortoise/testlaunch/internal/config"
	"github.com/mmr-tortoise/testlaunch/internal/coverage"
	"github.com/mmr-tortoise/testlaunch/internal/model"
	"github.com/mmr-tortoise/testlaunch/internal/repo"
	"github.com/mmr-tortoise/testlaunch/internal/runner"
	"github.com/mmr-tortoise/testlaunch/internal/stylecheck"
)

// ColorEnv lists the environment variables set to force colored output in
// every tool the session starts.
var ColorEnv = map[string]string{
	"FORCE_COLOR":    "1",
	"CLICOLOR_FORCE": "1",
}

// TestRunner runs the external test runner in dir and returns its exit
// status. err is reserved for a runner that could not be started.
type TestRunner interface {
	Run(ctx context.Context, dir string, args ...string) (int, error)
}

// StyleChecker lists the style violations of target, relative to dir.
type StyleChecker interface {
	Check(ctx context.Context, dir, target string) ([]stylecheck.Violation, error)
}

// Launcher holds the collaborators of a session. The zero value is not
// usable; build one with New.
type Launcher struct {
	Runner TestRunner
	Style  StyleChecker

	Stdout io.Writer
	Stderr io.Writer

	// Verbose receives launcher debug messages when the session config
	// enables debug. It may be nil.
	Verbose func(format string, args ...interface{})
}

// New returns a Launcher wired to go test and gofmt. The runner's status
// colors follow the process-wide setting, which Launch forces on when the
// session asks for color.
func New(stdout, stderr io.Writer) *Launcher {
	return &Launcher{
		Runner: runner.New(stdout, stderr, false),
		Style:  stylecheck.New(),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Launch runs a session for the repository containing start and returns
// the session's exit status.
//
// err is non-nil only when the session could not be launched: no
// repository root, an invalid override file, or a runner that cannot be
// started. In those cases status is the matching model.ExitCode.
func (l *Launcher) Launch(ctx context.Context, start string) (status int, err error) {
	root, err := repo.FindRoot(start)
	if err != nil {
		return exitCodeOf(err), err
	}

	cfg, cfgPath, err := config.Load(root)
	if err != nil {
		return exitCodeOf(err), err
	}

	logf := func(format string, args ...interface{}) {
		if cfg.Debug && l.Verbose != nil {
			l.Verbose(format, args...)
		}
	}
	logf("Repository root: %s", root)
	if cfgPath != "" {
		logf("Loaded overrides from %s", cfgPath)
	}

	if cfg.ForceColor {
		forceColor()
		logf("Forced colored output")
	}

	restore, err := repo.Chdir(root)
	if err != nil {
		return int(model.ExitRepoNotFound), model.WrapCLIError(model.ExitRepoNotFound,
			"cannot enter repository root", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			status, err = int(model.ExitGeneralError), rerr
		}
	}()

	styleFailed := false
	if cfg.StyleCheck {
		styleFailed = l.checkStyle(ctx, root, cfg, logf)
	}

	profileDir, err := os.MkdirTemp("", "testlaunch-")
	if err != nil {
		return int(model.ExitGeneralError), fmt.Errorf("failed to create coverage profile directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(profileDir) }()
	profile := filepath.Join(profileDir, "cover.out")

	args := runner.BuildArgs(cfg, profile)
	logf("Running %s", runner.CommandLine(runner.DefaultProgram, args))

	status, err = l.Runner.Run(ctx, root, args...)
	if err != nil {
		return status, err
	}
	logf("Test runner exited with status %d", status)

	coverageFailed := l.reportCoverage(root, cfg, profile, logf)

	switch {
	case status != 0:
		return status, nil
	case styleFailed, coverageFailed:
		return int(model.ExitGeneralError), nil
	default:
		return 0, nil
	}
}

// checkStyle runs the style check and prints its findings. It reports
// whether the session should fail because of them.
func (l *Launcher) checkStyle(ctx context.Context, root string, cfg model.SessionConfig, logf func(string, ...interface{})) bool {
	logf("Checking style of %s", cfg.CoverageTarget)

	violations, err := l.Style.Check(ctx, root, cfg.CoverageTarget)
	if err != nil {
		fmt.Fprintf(l.Stderr, "style check: %v\n", err)
		return true
	}
	stylecheck.Report(l.Stdout, violations, cfg.ForceColor)
	return len(violations) > 0
}

// reportCoverage prints the coverage report for the target package. It
// reports whether the session should fail because the profile was
// unreadable. A missing profile means the runner never got to write one
// and has already reported why.
func (l *Launcher) reportCoverage(root string, cfg model.SessionConfig, profile string, logf func(string, ...interface{})) bool {
	modulePath, err := repo.ModulePath(root)
	if err != nil {
		logf("Skipping coverage report: %v", err)
		return false
	}

	report, err := coverage.Load(profile, modulePath, cfg.CoverageTarget)
	if errors.Is(err, coverage.ErrNoProfile) {
		logf("Skipping coverage report: %v", err)
		return false
	}
	if err != nil {
		fmt.Fprintf(l.Stderr, "coverage: %v\n", err)
		return true
	}

	fmt.Fprintln(l.Stdout)
	if err := report.Render(l.Stdout, cfg.ReportMode, cfg.ForceColor); err != nil {
		fmt.Fprintf(l.Stderr, "coverage: %v\n", err)
		return true
	}
	return false
}

// forceColor sets the color environment for child processes and turns on
// color in this process regardless of the terminal.
func forceColor() {
	for k, v := range ColorEnv {
		_ = os.Setenv(k, v)
	}
	color.NoColor = false
}

// exitCodeOf returns the exit code carried by err, or ExitGeneralError.
func exitCodeOf(err error) int {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return int(cliErr.Code)
	}
	return int(model.ExitGeneralError)
}
