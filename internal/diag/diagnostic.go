package diag

import (
	"hdlgraph/internal/source"
)

type Note struct {
	Loc source.Loc
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Loc
	Object   uint32 // object id in the reporting arena, 0 when none
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Loc, object uint32, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Object:   object,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(loc source.Loc, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Loc: loc, Msg: msg})
	return d
}
