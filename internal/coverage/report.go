package coverage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/cover"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// ErrNoProfile is returned by Load when the runner did not write a
// profile, which happens when the test binaries fail to build.
var ErrNoProfile = errors.New("no coverage profile written")

// FileCoverage is the coverage of a single source file.
type FileCoverage struct {
	// Name is the file path relative to the repository root.
	Name string

	// Statements is the number of statements in the file.
	Statements int

	// Missed is the number of statements no test executed.
	Missed int

	// Missing lists the uncovered line numbers in ascending order.
	Missing []int
}

// Percent returns the share of executed statements, 0-100. A file without
// statements counts as fully covered.
func (f FileCoverage) Percent() float64 {
	return percent(f.Statements, f.Missed)
}

// Report is the coverage of every file in the target package.
type Report struct {
	// Target is the package pattern the report is scoped to.
	Target string

	// Files is sorted by Name.
	Files []FileCoverage
}

// Totals returns the summed statement and missed counts.
func (r *Report) Totals() (statements, missed int) {
	for _, f := range r.Files {
		statements += f.Statements
		missed += f.Missed
	}
	return statements, missed
}

// Load parses the profile at profilePath and builds the report for the
// files of target, a repository-relative package directory inside the
// module modulePath.
func Load(profilePath, modulePath, target string) (*Report, error) {
	if _, err := os.Stat(profilePath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("failed to stat coverage profile: %w", err)
	}

	profiles, err := cover.ParseProfiles(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coverage profile: %w", err)
	}

	return Build(profiles, modulePath, target), nil
}

// Build computes the report from parsed profiles. Profiles for files
// outside target are dropped.
func Build(profiles []*cover.Profile, modulePath, target string) *Report {
	prefix := importPrefix(modulePath, target)

	report := &Report{Target: model.SessionConfig{CoverageTarget: target}.TargetPattern()}
	for _, p := range profiles {
		if !inPackage(p.FileName, prefix) {
			continue
		}
		report.Files = append(report.Files, fileCoverage(p, modulePath))
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Name < report.Files[j].Name
	})
	return report
}

// importPrefix returns the import path of the target directory.
func importPrefix(modulePath, target string) string {
	target = strings.Trim(path.Clean("/"+strings.TrimPrefix(target, "./")), "/")
	if target == "" {
		return modulePath
	}
	return modulePath + "/" + target
}

// inPackage reports whether the profile file name (an import path plus
// file name) belongs to the package at prefix or one of its subpackages.
func inPackage(fileName, prefix string) bool {
	dir := path.Dir(fileName)
	return dir == prefix || strings.HasPrefix(dir, prefix+"/")
}

// fileCoverage sums the blocks of one profile. A line is missing when a
// block that never ran covers it and no block that ran does.
func fileCoverage(p *cover.Profile, modulePath string) FileCoverage {
	fc := FileCoverage{Name: strings.TrimPrefix(p.FileName, modulePath+"/")}

	executed := make(map[int]bool)
	unexecuted := make(map[int]bool)
	for _, b := range p.Blocks {
		fc.Statements += b.NumStmt
		lines := unexecuted
		if b.Count > 0 {
			lines = executed
		} else {
			fc.Missed += b.NumStmt
		}
		for l := b.StartLine; l <= b.EndLine; l++ {
			lines[l] = true
		}
	}

	for l := range unexecuted {
		if !executed[l] {
			fc.Missing = append(fc.Missing, l)
		}
	}
	sort.Ints(fc.Missing)
	return fc
}

// MissingRanges compacts sorted line numbers into "a-b" ranges joined by
// commas: [3 4 5 9 11 12] becomes "3-5, 9, 11-12".
func MissingRanges(lines []int) string {
	var parts []string
	for i := 0; i < len(lines); {
		j := i
		for j+1 < len(lines) && lines[j+1] == lines[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(lines[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", lines[i], lines[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}

func percent(statements, missed int) float64 {
	if statements == 0 {
		return 100
	}
	return float64(statements-missed) * 100 / float64(statements)
}
