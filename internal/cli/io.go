package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// IO is the output side of one command run.
//
// Warnings go to stderr twice: before the first line of stdout and again
// after the command finishes, so they survive `| head` and `| tail` alike.
// A run that recorded any warning exits 1 even though its output is
// complete; insufficient cipher input is the common case.
type IO struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	warnings []string
	flushed  bool
}

// NewIO creates an IO writing to out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records "issue: action". Repeats of the same warning are dropped.
func (o *IO) Warn(issue string, action string) {
	w := issue + ": " + action
	if slices.Contains(o.warnings, w) {
		return
	}

	o.warnings = append(o.warnings, w)
}

// WarnInsufficient records a warning when trace is empty and reports
// whether it did. The generator's key hint tells the user what a valid
// key looks like.
func (o *IO) WarnInsufficient(g cipher.Generator, trace cipher.Trace) bool {
	if !trace.Empty() {
		return false
	}

	o.Warn(insufficientIssue(g.ID(), trace.Mode), insufficientAction(g))

	return true
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.flushEarly()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.flushEarly()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Out returns stdout for the renderer and encoders.
func (o *IO) Out() io.Writer {
	o.flushEarly()

	return o.out
}

// In returns stdin, or nil when none was provided.
func (o *IO) In() io.Reader {
	return o.in
}

// Finish repeats the warnings on stderr and returns the exit code.
func (o *IO) Finish() int {
	o.flushEarly()
	o.printWarnings()

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}

// flushEarly prints pending warnings ahead of the first stdout write.
func (o *IO) flushEarly() {
	if o.flushed || len(o.warnings) == 0 {
		return
	}

	o.printWarnings()
	o.flushed = true
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}

func insufficientIssue(id cipher.ID, mode cipher.Mode) string {
	return fmt.Sprintf("insufficient input for %s %s", id, mode)
}

func insufficientAction(g cipher.Generator) string {
	return fmt.Sprintf("provide text and a valid key (%s)", g.KeyHint())
}
