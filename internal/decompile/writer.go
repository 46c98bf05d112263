package decompile

import "strings"

// Writer collects rendered text. Lines written after IndentPush start with
// one more indent unit until the matching IndentPop.
type Writer struct {
	sb     strings.Builder
	unit   string
	depth  int
	fresh  bool // next write starts a line
	ending byte // last byte written
}

// NewWriter returns a writer whose indent unit is width spaces (2 when
// width is not positive).
func NewWriter(width int) *Writer {
	if width <= 0 {
		width = 2
	}
	return &Writer{unit: strings.Repeat(" ", width)}
}

func (w *Writer) String() string { return w.sb.String() }

// WriteString appends s, indenting it when it opens a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.fresh {
		for i := 0; i < w.depth; i++ {
			w.sb.WriteString(w.unit)
		}
	}
	w.sb.WriteString(s)
	w.ending = s[len(s)-1]
	w.fresh = w.ending == '\n'
}

// Newline ends the current line; blank lines are never produced.
func (w *Writer) Newline() {
	if w.sb.Len() > 0 && w.ending != '\n' {
		w.sb.WriteByte('\n')
		w.ending = '\n'
	}
	w.fresh = true
}

func (w *Writer) IndentPush() { w.depth++ }

func (w *Writer) IndentPop() { w.depth = max(w.depth-1, 0) }
