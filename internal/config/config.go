package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

const (
	// DefaultCoverageTarget is the package whose coverage is measured.
	DefaultCoverageTarget = "canal"

	// DefaultTestDir is the directory of test sources run by the session.
	DefaultTestDir = "tests"
)

// OverrideFileNames lists the override file names searched in the
// repository root, in priority order. The first one found wins.
var OverrideFileNames = []string{
	".testlaunch.jsonc",
	".testlaunch.json",
	".testlaunch.yaml",
	".testlaunch.yml",
}

// Default returns the built-in session configuration.
func Default() model.SessionConfig {
	return model.SessionConfig{
		ForceColor:     true,
		StyleCheck:     true,
		CoverageTarget: DefaultCoverageTarget,
		TestDir:        DefaultTestDir,
		Verbosity:      model.VerbosityHigh,
		ReportMode:     model.ReportShowMissing,
	}
}

// FindOverride returns the path of the override file in root, or an empty
// string when the repository does not carry one.
func FindOverride(root string) string {
	for _, name := range OverrideFileNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load returns the session configuration for the repository at root:
// the defaults, with any override file applied and validated.
//
// Returns a CLIError with ExitConfigError if the override file cannot be
// parsed or fails validation.
func Load(root string) (model.SessionConfig, string, error) {
	cfg := Default()

	path := FindOverride(root)
	if path == "" {
		return cfg, "", nil
	}

	if err := applyFile(&cfg, path); err != nil {
		return cfg, path, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}

	if errs := Validate(cfg); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return cfg, path, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s:\n  %s", path, strings.Join(msgs, "\n  ")))
	}

	return cfg, path, nil
}

// applyFile decodes the override file on top of cfg. Fields absent from
// the file are left untouched by both decoders.
func applyFile(cfg *model.SessionConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return decodeYAML(cfg, data)
	default:
		return decodeJSONC(cfg, data)
	}
}

// decodeJSONC strips comments and trailing commas, then decodes strictly so
// a misspelled key is reported instead of silently ignored.
func decodeJSONC(cfg *model.SessionConfig, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func decodeYAML(cfg *model.SessionConfig, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document decodes to io.EOF; treat it as "no overrides".
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
