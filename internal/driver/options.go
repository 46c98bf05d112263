package driver

import (
	"path/filepath"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/pipeline"
)

// Options configure a batch run.
type Options struct {
	// Jobs limits concurrent files; 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int

	Adjust bool
	// NoResize keeps literal widths as found when adjusting.
	NoResize bool

	Lint             bool
	LintDisabled     map[diag.Code]bool
	WarningsAsErrors bool
	// LintMinSeverity drops lint findings below it.
	LintMinSeverity diag.Severity

	// OutputDir receives the processed graphs; empty disables saving.
	OutputDir string
	// BaseDir shortens reported file names and mirrors the input layout
	// below OutputDir.
	BaseDir string
	// KeepArena leaves the restored arena in the result.
	KeepArena bool

	Progress      pipeline.ProgressSink
	PhaseObserver PhaseObserver
}

// OutputPath is where a processed input is written.
func (o Options) OutputPath(input string) string {
	if o.OutputDir == "" {
		return ""
	}
	name := pipeline.DisplayName(input, o.BaseDir)
	if filepath.IsAbs(filepath.FromSlash(name)) {
		name = filepath.Base(input)
	}
	return filepath.Join(o.OutputDir, filepath.FromSlash(name))
}
