package diag

import "hdlgraph/internal/source"

// FilterReporter drops disabled codes and optionally promotes warnings to
// errors before forwarding. Diagnostics below MinSeverity, after
// promotion, are dropped.
type FilterReporter struct {
	Next             Reporter
	Disabled         map[Code]bool
	WarningsAsErrors bool
	MinSeverity      Severity
}

func (r FilterReporter) Report(code Code, sev Severity, primary source.Loc, object uint32, msg string, notes []Note) {
	if r.Next == nil || r.Disabled[code] {
		return
	}
	if r.WarningsAsErrors && sev == SevWarning {
		sev = SevError
	}
	if sev < r.MinSeverity {
		return
	}
	r.Next.Report(code, sev, primary, object, msg, notes)
}
