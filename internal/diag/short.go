package diag

import (
	"fmt"
	"sort"
	"strings"

	"hdlgraph/internal/source"
)

// FormatShort renders diagnostics one per line as
// "severity CODE file:line:col message", sorted, with notes after their
// diagnostic when includeNotes is set. Locations are resolved through strs.
func FormatShort(diags []Diagnostic, strs *source.Interner, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, lj := sorted[i].Primary, sorted[j].Primary
		if fi, fj := fileName(strs, li), fileName(strs, lj); fi != fj {
			return fi < fj
		}
		if li.Line != lj.Line || li.Col != lj.Col {
			return li.Before(lj)
		}
		if sorted[i].Code != sorted[j].Code {
			return sorted[i].Code < sorted[j].Code
		}
		return sorted[i].Message < sorted[j].Message
	})

	var b strings.Builder
	for i, d := range sorted {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", severityLabel(d.Severity), d.Code.ID(), d.Primary.Format(strs), oneLine(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s %s", d.Code.ID(), n.Loc.Format(strs), oneLine(n.Msg))
		}
	}
	return b.String()
}

func severityLabel(s Severity) string {
	return strings.ToLower(s.String())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func fileName(strs *source.Interner, l source.Loc) string {
	if strs == nil {
		return ""
	}
	s, _ := strs.Lookup(l.File)
	return s
}
