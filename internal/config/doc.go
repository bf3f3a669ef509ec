// Package config builds the SessionConfig for a testlaunch run.
//
// The session is fully defined by static defaults: style checking on,
// coverage scoped to the "canal" package, verbose per-test output, a
// show-missing-lines coverage report, and the "tests" directory as the
// test source location. A repository may commit an override file at its
// root to point the same session at a different package:
//
//   - .testlaunch.jsonc / .testlaunch.json (JSON with comments, parsed via
//     github.com/tidwall/jsonc)
//   - .testlaunch.yaml / .testlaunch.yml (parsed via gopkg.in/yaml.v3)
//
// Fields missing from the override keep their default values. The file is
// optional; without it the built-in session runs unchanged.
package config
