package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// ValidationError represents a specific validation failure in a session
// configuration.
type ValidationError struct {
	// Field is the configuration key that failed validation.
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a session configuration and returns every problem found
// (empty list = valid configuration).
//
// Checks performed:
//   - coverageTarget and testDir are set, relative, and stay inside the
//     repository root
//   - verbosity and reportMode are known values
func Validate(cfg model.SessionConfig) []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateDir("coverageTarget", cfg.CoverageTarget)...)
	errs = append(errs, validateDir("testDir", cfg.TestDir)...)

	if !cfg.Verbosity.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "verbosity",
			Message: fmt.Sprintf("unknown value %q (valid: high, normal)", cfg.Verbosity),
		})
	}

	if !cfg.ReportMode.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "reportMode",
			Message: fmt.Sprintf("unknown value %q (valid: show-missing-lines, summary)", cfg.ReportMode),
		})
	}

	return errs
}

// validateDir checks a repository-relative directory. The launcher joins
// these with the repository root and hands them to go as "./dir/...", so an
// absolute path or one climbing out of the root can never resolve.
func validateDir(field, dir string) []ValidationError {
	if strings.TrimSpace(dir) == "" {
		return []ValidationError{{Field: field, Message: "must not be empty"}}
	}
	if filepath.IsAbs(dir) {
		return []ValidationError{{Field: field, Message: fmt.Sprintf("must be relative to the repository root, got %q", dir)}}
	}
	clean := filepath.ToSlash(filepath.Clean(dir))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return []ValidationError{{Field: field, Message: fmt.Sprintf("must stay inside the repository root, got %q", dir)}}
	}
	if strings.ContainsAny(dir, " \t\n") {
		return []ValidationError{{Field: field, Message: fmt.Sprintf("must not contain whitespace, got %q", dir)}}
	}
	return nil
}
