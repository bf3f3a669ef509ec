package repo

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// tempDir returns a symlink-resolved temporary directory so paths compare
// equal to what git reports (macOS maps /var to /private/var).
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// runTestGit runs a git command in dir and fails the test on error.
func runTestGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
}

// writeGoMod creates a go.mod declaring module path in dir.
func writeGoMod(t *testing.T, dir, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "module " + path + "\n\ngo 1.22\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(content), 0644))
}

// TestFindRoot_GitCheckout verifies that the git toplevel is used when it
// holds the go.mod, even when starting deep inside the tree.
func TestFindRoot_GitCheckout(t *testing.T) {
	root := tempDir(t)
	runTestGit(t, root, "init")
	writeGoMod(t, root, "example.com/demo")

	deep := filepath.Join(root, "canal", "sub")
	require.NoError(t, os.MkdirAll(deep, 0755))

	got, err := FindRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

// TestFindRoot_NestedModule verifies that a module nested inside a larger
// git checkout is rooted at its own go.mod.
func TestFindRoot_NestedModule(t *testing.T) {
	root := tempDir(t)
	runTestGit(t, root, "init")

	nested := filepath.Join(root, "tools", "launcher")
	writeGoMod(t, nested, "example.com/launcher")

	got, err := FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, nested, got)
}

// TestFindRoot_GitWithoutModule verifies that a plain git checkout without
// a go.mod is still accepted; the runner reports the missing module itself.
func TestFindRoot_GitWithoutModule(t *testing.T) {
	root := tempDir(t)
	runTestGit(t, root, "init")

	got, err := FindRoot(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

// TestFindRoot_ModuleOnly verifies the go.mod walk outside of git.
func TestFindRoot_ModuleOnly(t *testing.T) {
	root := tempDir(t)
	writeGoMod(t, root, "example.com/demo")
	sub := filepath.Join(root, "tests")
	require.NoError(t, os.MkdirAll(sub, 0755))

	got, err := FindRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

// TestFindRoot_NotFound verifies the error for a directory with neither
// git nor go.mod above it.
func TestFindRoot_NotFound(t *testing.T) {
	_, err := FindRoot(tempDir(t))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitRepoNotFound, cliErr.Code)
	assert.ErrorIs(t, err, ErrNoModule)
}

// TestModulePath verifies go.mod parsing, including quoted module paths
// and files without a module directive.
func TestModulePath(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		root := tempDir(t)
		writeGoMod(t, root, "example.com/demo")

		path, err := ModulePath(root)
		require.NoError(t, err)
		assert.Equal(t, "example.com/demo", path)
	})

	t.Run("quoted", func(t *testing.T) {
		root := tempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"),
			[]byte("// comment\nmodule \"example.com/quoted\"\n"), 0644))

		path, err := ModulePath(root)
		require.NoError(t, err)
		assert.Equal(t, "example.com/quoted", path)
	})

	t.Run("no module directive", func(t *testing.T) {
		root := tempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.22\n"), 0644))

		_, err := ModulePath(root)
		assert.ErrorContains(t, err, "no module directive")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ModulePath(tempDir(t))
		assert.ErrorContains(t, err, "failed to read go.mod")
	})
}

// TestChdir verifies that the working directory is changed and that the
// returned function restores the previous one.
func TestChdir(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	target := tempDir(t)
	restore, err := Chdir(target)
	require.NoError(t, err)

	inside, err := os.Getwd()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(inside)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)

	require.NoError(t, restore())
	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// TestChdir_Missing verifies that a missing directory leaves the working
// directory untouched.
func TestChdir_Missing(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	_, err = Chdir(filepath.Join(tempDir(t), "nope"))
	require.Error(t, err)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
