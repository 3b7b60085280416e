// Package transcript carries the human-readable progress lines of a compile
// or deployment to wherever the operator is watching.
package transcript

import (
	"fmt"
	"io"
)

// Transcript receives progress lines, one call per line.
type Transcript interface {
	Println(line string)
}

// Writer prints lines to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (t *Writer) Println(line string) {
	fmt.Fprintln(t.w, line)
}

// Multi fans every line out to all members in order.
type Multi []Transcript

func (m Multi) Println(line string) {
	for _, t := range m {
		t.Println(line)
	}
}

// Discard drops every line.
var Discard Transcript = discard{}

type discard struct{}

func (discard) Println(string) {}

// Recorder keeps lines in memory.
type Recorder struct {
	Lines []string
}

func (r *Recorder) Println(line string) {
	r.Lines = append(r.Lines, line)
}
