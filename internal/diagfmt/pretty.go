package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/source"
)

type palette struct {
	err, warn, info, note, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		note: color.New(color.FgBlue),
		path: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders the bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  note: <path>:<line>:<col>: <Message>
//
// in bag order (call bag.Sort() first for stable output).
func Pretty(w io.Writer, bag *diag.Bag, strs *source.Interner, opts PrettyOpts) {
	p := newPalette(opts.Color)
	where := func(loc source.Loc) string {
		s := formatPath(lookupPath(strs, loc), opts.PathMode, opts.BaseDir)
		if loc.Line > 0 {
			s = fmt.Sprintf("%s:%d:%d", s, loc.Line, loc.Col)
		}
		return s
	}
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(where(d.Primary)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), where(n.Loc), n.Msg)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}
