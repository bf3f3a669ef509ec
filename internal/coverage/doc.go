// Package coverage turns a Go coverage profile into the session's coverage
// report.
//
// The profile is written by the test runner (-coverprofile) and parsed with
// golang.org/x/tools/cover, which also merges the duplicate blocks emitted
// when several test binaries instrument the same package. Only files inside
// the session's target package are reported. For each file the report
// gives the statement count, the statements never executed, the percentage
// covered, and in show-missing-lines mode the uncovered line numbers
// compacted into ranges ("12-14, 20").
package coverage
