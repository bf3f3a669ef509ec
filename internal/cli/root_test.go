package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// TestNewRootCommand_NoArgs verifies that the root command accepts no
// positional arguments.
func TestNewRootCommand_NoArgs(t *testing.T) {
	cmd := NewRootCommand()
	assert.NoError(t, cmd.ValidateArgs(nil))
	assert.Error(t, cmd.ValidateArgs([]string{"./canal"}))
	assert.Equal(t, "testlaunch", cmd.Name())
}

// TestNewRootCommand_NoSessionFlags verifies that the session cannot be
// reshaped from the command line.
func TestNewRootCommand_NoSessionFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"v", "verbose", "cover", "coverpkg", "run"} {
		assert.Nil(t, cmd.Flags().Lookup(name), "unexpected flag %q", name)
	}
}

// TestRun_ExitCodes verifies the mapping from command errors to exit codes.
func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"relayed runner status", model.ExitStatus(2), 2},
		{"config error", model.NewCLIError(model.ExitConfigError, "invalid config file"), int(model.ExitConfigError)},
		{"wrapped tool error", model.WrapCLIError(model.ExitToolError, "cannot run go", errors.New("not found")), int(model.ExitToolError)},
		{"generic error", errors.New("boom"), int(model.ExitGeneralError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{
				Use:           "testlaunch",
				SilenceUsage:  true,
				SilenceErrors: true,
				RunE: func(*cobra.Command, []string) error {
					return tt.err
				},
			}
			cmd.SetArgs([]string{})
			assert.Equal(t, tt.want, Run(cmd))
		})
	}
}

// TestRun_RejectsArguments verifies that an extra argument is a usage
// error with exit code 1 and the session never starts.
func TestRun_RejectsArguments(t *testing.T) {
	cmd := NewRootCommand()
	called := false
	cmd.RunE = func(*cobra.Command, []string) error {
		called = true
		return nil
	}
	cmd.SetArgs([]string{"extra"})

	assert.Equal(t, int(model.ExitGeneralError), Run(cmd))
	assert.False(t, called)
}
