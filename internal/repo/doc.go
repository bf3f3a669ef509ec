// Package repo locates the repository a test session runs in and manages
// the session's working directory.
//
// The repository root is asked of git first (`git rev-parse
// --show-toplevel`), exactly as a user would see it from their terminal.
// Outside a git checkout the root is the nearest directory holding a
// go.mod file. The module path declared in that go.mod is what coverage
// profiles use to name source files, so it is read here too, via
// golang.org/x/mod/modfile.
package repo
