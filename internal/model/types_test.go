package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseVerbosity verifies string-to-verbosity conversion,
// including case normalization and error cases.
func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		input    string
		expected Verbosity
		hasError bool
	}{
		{"high", VerbosityHigh, false},
		{"normal", VerbosityNormal, false},
		{"HIGH", VerbosityHigh, false}, // case insensitive
		{"loud", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseVerbosity(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestParseReportMode checks that only the two known report modes parse.
func TestParseReportMode(t *testing.T) {
	m, err := ParseReportMode("Show-Missing-Lines")
	require.NoError(t, err)
	assert.Equal(t, ReportShowMissing, m)

	m, err = ParseReportMode("summary")
	require.NoError(t, err)
	assert.Equal(t, ReportSummary, m)

	_, err = ParseReportMode("html")
	assert.Error(t, err)
	assert.False(t, ReportMode("").IsValid())
}

// TestSessionConfig_Patterns verifies that directory names are turned into
// recursive go package patterns regardless of how they were written.
func TestSessionConfig_Patterns(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"canal", "./canal/..."},
		{"./canal", "./canal/..."},
		{"canal/", "./canal/..."},
		{"pkg/sub", "./pkg/sub/..."},
		{".", "./..."},
		{"", "./..."},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			cfg := SessionConfig{CoverageTarget: tt.dir, TestDir: tt.dir}
			assert.Equal(t, tt.want, cfg.TargetPattern())
			assert.Equal(t, tt.want, cfg.TestPattern())
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitRepoNotFound, "no repository root found")
		assert.Equal(t, ExitRepoNotFound, err.Code)
		assert.Equal(t, "no repository root found", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.False(t, err.Silent())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("executable file not found in $PATH")
		err := WrapCLIError(ExitToolError, "cannot start go", inner)
		assert.Equal(t, ExitToolError, err.Code)
		assert.Contains(t, err.Error(), "executable file not found")
		assert.Equal(t, inner, err.Unwrap())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("relayed status", func(t *testing.T) {
		assert.NoError(t, ExitStatus(0))

		err := ExitStatus(2)
		var cliErr *CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, ExitCode(2), cliErr.Code)
		assert.True(t, cliErr.Silent())
		assert.Equal(t, "exit status 2", err.Error())
	})
}
