// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/creachadair/kdl"
	"github.com/google/go-cmp/cmp"
)

// Recorder is a kdl.Handler that records a line of text for each event.
type Recorder struct {
	buf strings.Builder
}

// OpenNode implements part of kdl.Handler.
func (r *Recorder) OpenNode(ev kdl.Event) error { r.pr("%v", ev); return nil }

// CloseNode implements part of kdl.Handler.
func (r *Recorder) CloseNode(ev kdl.Event) error { r.pr("%v", ev); return nil }

// Output returns the text recorded so far.
func (r *Recorder) Output() string { return r.buf.String() }

func (r *Recorder) pr(msg string, args ...any) {
	fmt.Fprintf(&r.buf, msg, args...)
	r.buf.WriteByte('\n')
}

// Trace parses the remaining input of p and returns the recorded events,
// along with the error that ended parsing, if any.
func Trace(p *kdl.Parser) (string, error) {
	var r Recorder
	err := p.Parse(&r)
	return r.Output(), err
}

// DiffLines reports a line-by-line diff between want and got, ignoring
// leading and trailing whitespace. The result is empty if they agree.
func DiffLines(want, got string) string {
	return cmp.Diff(splitLines(want), splitLines(got))
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
