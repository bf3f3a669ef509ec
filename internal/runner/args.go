package runner

import (
	"strings"

	"github.com/alessio/shellescape"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// DefaultProgram is the test runner binary.
const DefaultProgram = "go"

// BuildArgs returns the go command arguments for a session. The order is
// fixed so the same configuration always yields the same invocation:
//
//	test [-v] -coverpkg=./<target>/... -coverprofile=<profile> ./<tests>/...
//
// An empty profilePath drops the -coverprofile flag; coverage is still
// instrumented so the runner prints its own per-package percentage.
func BuildArgs(cfg model.SessionConfig, profilePath string) []string {
	args := []string{"test"}
	if cfg.Verbosity == model.VerbosityHigh {
		args = append(args, "-v")
	}
	args = append(args, "-coverpkg="+cfg.TargetPattern())
	if profilePath != "" {
		args = append(args, "-coverprofile="+profilePath)
	}
	args = append(args, cfg.TestPattern())
	return args
}

// CommandLine renders program and args as a single shell-quoted string,
// suitable for copy-pasting into a terminal.
func CommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellescape.Quote(program))
	for _, a := range args {
		parts = append(parts, shellescape.Quote(a))
	}
	return strings.Join(parts, " ")
}
