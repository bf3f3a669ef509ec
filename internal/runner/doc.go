// Package runner invokes the external test runner (`go test`) for a test
// session and relays its exit status.
//
// The runner is handed a fixed argument set derived from the session
// configuration: verbose output, coverage instrumentation scoped to the
// target package, and a coverage profile the launcher reads afterwards.
// Its stdout is streamed line by line through a colorizer built on
// github.com/fatih/color; the text itself is never altered, filtered, or
// summarized. Whatever the runner prints and whatever status it exits
// with is what the caller sees.
package runner
