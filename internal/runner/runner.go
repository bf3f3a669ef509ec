package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// Runner executes a test runner process and reports its exit status.
type Runner struct {
	// Program is the binary to run; DefaultProgram when empty.
	Program string

	// Stdout and Stderr receive the process output.
	Stdout io.Writer
	Stderr io.Writer

	// ForceColor keeps status colors on even when Stdout is not a terminal.
	ForceColor bool
}

// New returns a Runner for the go toolchain writing to stdout and stderr.
func New(stdout, stderr io.Writer, forceColor bool) *Runner {
	return &Runner{
		Program:    DefaultProgram,
		Stdout:     stdout,
		Stderr:     stderr,
		ForceColor: forceColor,
	}
}

// Run starts the runner with args in dir and blocks until it exits.
//
// The returned status is the process's own exit code, unchanged. err is
// only set when the process could not be started (or waited on) at all;
// in that case it is a CLIError with ExitToolError.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (int, error) {
	program := r.Program
	if program == "" {
		program = DefaultProgram
	}

	colorizer := NewColorizer(r.Stdout, r.ForceColor)

	// #nosec G204 — program and args come from the session configuration
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = dir
	cmd.Stdout = colorizer
	cmd.Stderr = r.Stderr

	runErr := cmd.Run()
	if err := colorizer.Flush(); err != nil && runErr == nil {
		runErr = err
	}

	return exitStatus(program, runErr)
}

// exitStatus maps the result of cmd.Run to a process exit status.
func exitStatus(program string, err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal; there is no status to relay.
			code = int(model.ExitGeneralError)
		}
		return code, nil
	}

	return int(model.ExitToolError), model.WrapCLIError(model.ExitToolError,
		fmt.Sprintf("cannot run %s", program), err)
}
