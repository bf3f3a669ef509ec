// Package stylecheck gates a test session on source formatting.
//
// The rule set belongs to gofmt: a file is a violation when `gofmt -l`
// lists it. Violations are printed alongside the test output and fail the
// session even when every test passes.
package stylecheck

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// DefaultProgram is the style-check binary.
const DefaultProgram = "gofmt"

// RuleGofmt names the only rule the checker applies.
const RuleGofmt = "not gofmt-formatted"

// Violation is one file that fails the style check.
type Violation struct {
	// File is the path of the offending file, relative to the directory
	// the check ran in.
	File string

	// Rule describes which rule the file breaks.
	Rule string
}

// String renders the violation the way it is reported to the user.
func (v Violation) String() string {
	return fmt.Sprintf("%s: style: %s", v.File, v.Rule)
}

// Checker runs the style-check tool.
type Checker struct {
	// Program is the binary to run; DefaultProgram when empty.
	Program string
}

// New returns a Checker using gofmt.
func New() *Checker {
	return &Checker{Program: DefaultProgram}
}

// Check lists the style violations in target, a directory relative to
// dir. It returns an error (a CLIError with ExitToolError) only when the
// tool cannot run or rejects its input, e.g. a missing directory or a
// file that does not parse.
func (c *Checker) Check(ctx context.Context, dir, target string) ([]Violation, error) {
	program := c.Program
	if program == "" {
		program = DefaultProgram
	}

	// #nosec G204 — target comes from the session configuration
	cmd := exec.CommandContext(ctx, program, "-l", filepath.Clean(target))
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("%s -l %s failed", program, target)
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s:\n%s", message, s)
		}
		return nil, model.WrapCLIError(model.ExitToolError, message, err)
	}

	return parseList(stdout.String()), nil
}

// parseList turns `gofmt -l` output (one path per line) into violations.
func parseList(output string) []Violation {
	var violations []Violation
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		file := strings.TrimSpace(scanner.Text())
		if file == "" {
			continue
		}
		violations = append(violations, Violation{File: filepath.ToSlash(file), Rule: RuleGofmt})
	}
	return violations
}

// Report prints one line per violation to w, followed by a count. Nothing
// is printed for a clean package.
func Report(w io.Writer, violations []Violation, force bool) {
	if len(violations) == 0 {
		return
	}
	red := color.New(color.FgRed)
	if force {
		red.EnableColor()
	}
	for _, v := range violations {
		fmt.Fprintln(w, red.Sprint(v.String()))
	}
	fmt.Fprintf(w, "%d file(s) failed the style check\n", len(violations))
}
