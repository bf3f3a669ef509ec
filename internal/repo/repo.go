package repo

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// ErrNoModule is returned when no go.mod exists at or above a directory.
var ErrNoModule = errors.New("no go.mod found")

// FindRoot returns the absolute path of the repository root containing
// start.
//
// The git toplevel is used when it also holds a go.mod; otherwise the
// nearest go.mod ancestor of start wins. This keeps nested modules inside
// a larger checkout rooted at their own go.mod.
//
// Returns a CLIError with ExitRepoNotFound if neither lookup succeeds.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", model.WrapCLIError(model.ExitRepoNotFound,
			fmt.Sprintf("cannot resolve %s", start), err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	modRoot, modErr := findModuleRoot(abs)

	if top, err := gitToplevel(abs); err == nil {
		if modErr != nil || modRoot == top {
			return top, nil
		}
	}

	if modErr != nil {
		return "", model.WrapCLIError(model.ExitRepoNotFound,
			fmt.Sprintf("no repository root found from %s", abs), modErr)
	}
	return modRoot, nil
}

// ModulePath returns the module path declared in root/go.mod.
func ModulePath(root string) (string, error) {
	gomod := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}

	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("%s has no module directive", gomod)
	}
	return path, nil
}

// Chdir changes the process working directory to dir and returns a
// function that changes it back. The caller defers the restore so the
// previous directory is re-entered on every exit path.
func Chdir(dir string) (restore func() error, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	return func() error {
		if err := os.Chdir(prev); err != nil {
			return fmt.Errorf("failed to restore working directory %s: %w", prev, err)
		}
		return nil
	}, nil
}

// findModuleRoot walks upward from dir until it finds a go.mod file.
func findModuleRoot(dir string) (string, error) {
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModule
		}
		dir = parent
	}
}

// gitToplevel returns the top-level directory of the git work tree that
// contains dir. It fails when git is not installed or dir is not inside
// a work tree.
func gitToplevel(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	top := strings.TrimSpace(out)
	if resolved, err := filepath.EvalSymlinks(top); err == nil {
		top = resolved
	}
	return top, nil
}

// runGit executes a git command in the given directory and returns its
// stdout. Failures carry git's stderr in the error message.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}

	return stdout.String(), nil
}
