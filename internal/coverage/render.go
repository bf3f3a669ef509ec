package coverage

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mmr-tortoise/testlaunch/internal/model"
)

// Render writes the report as a table to w:
//
//	---------- coverage: ./canal/... ----------
//	Name              Stmts   Miss   Cover   Missing
//	------------------------------------------------
//	canal/model.go       10      2   80.0%   12-13
//	------------------------------------------------
//	TOTAL                10      2   80.0%
//
// The Missing column is only present in show-missing-lines mode. Rows of
// files with missed statements are highlighted when color is on.
func (r *Report) Render(w io.Writer, mode model.ReportMode, force bool) error {
	showMissing := mode == model.ReportShowMissing

	if _, err := fmt.Fprintf(w, "---------- coverage: %s ----------\n", r.Target); err != nil {
		return err
	}
	if len(r.Files) == 0 {
		_, err := fmt.Fprintf(w, "no statements found in %s\n", r.Target)
		return err
	}

	warn := color.New(color.FgYellow)
	if force {
		warn.EnableColor()
	}

	nameWidth := len("TOTAL")
	for _, f := range r.Files {
		nameWidth = max(nameWidth, len(f.Name))
	}
	row := func(name, stmts, miss, cover, missing string) string {
		line := fmt.Sprintf("%-*s   %5s   %5s   %6s", nameWidth, name, stmts, miss, cover)
		if showMissing {
			line += "   " + missing
		}
		return strings.TrimRight(line, " ")
	}

	head := row("Name", "Stmts", "Miss", "Cover", "Missing")
	rule := strings.Repeat("-", len(head))

	lines := []string{head, rule}
	for _, f := range r.Files {
		line := row(f.Name, fmt.Sprint(f.Statements), fmt.Sprint(f.Missed),
			formatPercent(f.Percent()), MissingRanges(f.Missing))
		if f.Missed > 0 {
			line = warn.Sprint(line)
		}
		lines = append(lines, line)
	}
	stmts, missed := r.Totals()
	lines = append(lines, rule,
		row("TOTAL", fmt.Sprint(stmts), fmt.Sprint(missed), formatPercent(percent(stmts, missed)), ""))

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
