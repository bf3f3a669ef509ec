package runner

import (
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Colorizer is an io.Writer that recolors go test status lines and passes
// everything else through unchanged. Input is buffered until a newline so
// that a status line split across writes is still recognized.
type Colorizer struct {
	out  io.Writer
	buf  bytes.Buffer
	pass *color.Color
	fail *color.Color
	skip *color.Color
}

// NewColorizer returns a Colorizer writing to out. When force is true the
// colors are emitted even if out is not a terminal.
func NewColorizer(out io.Writer, force bool) *Colorizer {
	c := &Colorizer{
		out:  out,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		skip: color.New(color.FgYellow),
	}
	if force {
		c.pass.EnableColor()
		c.fail.EnableColor()
		c.skip.EnableColor()
	}
	return c
}

// Write implements io.Writer. It always reports len(p) consumed; errors
// from the underlying writer are returned as-is.
func (c *Colorizer) Write(p []byte) (int, error) {
	c.buf.Write(p)
	for {
		i := bytes.IndexByte(c.buf.Bytes(), '\n')
		if i < 0 {
			return len(p), nil
		}
		line := string(c.buf.Next(i + 1))
		if _, err := io.WriteString(c.out, c.paint(strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
			return len(p), err
		}
	}
}

// Flush writes any trailing partial line.
func (c *Colorizer) Flush() error {
	if c.buf.Len() == 0 {
		return nil
	}
	line := c.buf.String()
	c.buf.Reset()
	_, err := io.WriteString(c.out, c.paint(line))
	return err
}

// paint returns line wrapped in the color of its status, if it has one.
func (c *Colorizer) paint(line string) string {
	switch Classify(line) {
	case StatusPass:
		return c.pass.Sprint(line)
	case StatusFail:
		return c.fail.Sprint(line)
	case StatusSkip:
		return c.skip.Sprint(line)
	default:
		return line
	}
}

// Status is the outcome a go test output line reports, if any.
type Status int

const (
	StatusNone Status = iota
	StatusPass
	StatusFail
	StatusSkip
)

// Classify reports the outcome announced by a single line of go test
// output. Per-test lines ("--- PASS: TestX (0.00s)", indented for subtests)
// and the per-package summary lines ("ok", "FAIL", "PASS") are recognized.
func Classify(line string) Status {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "--- PASS:"):
		return StatusPass
	case strings.HasPrefix(trimmed, "--- FAIL:"):
		return StatusFail
	case strings.HasPrefix(trimmed, "--- SKIP:"):
		return StatusSkip
	}

	switch {
	case line == "PASS", strings.HasPrefix(line, "ok "), strings.HasPrefix(line, "ok\t"):
		return StatusPass
	case line == "FAIL", strings.HasPrefix(line, "FAIL\t"), strings.HasPrefix(line, "FAIL "):
		return StatusFail
	}
	return StatusNone
}
