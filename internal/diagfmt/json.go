package diagfmt

import (
	"encoding/json"
	"io"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/source"
)

// LocationJSON is a file position in JSON output.
type LocationJSON struct {
	File    string `json:"file"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
	EndLine uint32 `json:"end_line,omitempty"`
	EndCol  uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Object   uint32       `json:"object,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(loc source.Loc, strs *source.Interner, opts JSONOpts) LocationJSON {
	out := LocationJSON{File: formatPath(lookupPath(strs, loc), opts.PathMode, opts.BaseDir)}
	if opts.IncludePositions {
		out.Line, out.Col = loc.Line, loc.Col
		out.EndLine, out.EndCol = loc.EndLine, loc.EndCol
	}
	return out
}

// BuildDiagnosticsOutput builds the JSON document without serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, strs *source.Interner, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Object:   d.Object,
			Location: makeLocation(d.Primary, strs, opts),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: note.Msg, Location: makeLocation(note.Loc, strs, opts)}
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - maxItems,
	}
}

// JSON writes the bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, strs *source.Interner, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, strs, opts))
}
