package driver

import (
	"hdlgraph/internal/adjust"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/lint"
	"hdlgraph/internal/model"
	"hdlgraph/internal/observ"
	"hdlgraph/internal/pipeline"
	"hdlgraph/internal/source"
)

// FileResult is the outcome for one input file.
type FileResult struct {
	Path   string
	Name   string
	Output string

	Bag     *diag.Bag
	Strings *source.Interner
	Arena   *model.Arena

	Roots   int
	Objects int
	Adjust  adjust.Result
	Lint    lint.Result

	Timings pipeline.Timings
	Timing  observ.Report
	// Err is set when the file could not be restored or saved.
	Err error
}

// Failed reports an I/O failure or an error diagnostic.
func (r *FileResult) Failed() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// Summary totals a batch.
type Summary struct {
	Files    int
	Failed   int
	Errors   int
	Warnings int
	Replaced int
}

// Summarize totals results.
func Summarize(results []FileResult) Summary {
	var s Summary
	for i := range results {
		r := &results[i]
		s.Files++
		if r.Failed() {
			s.Failed++
		}
		s.Replaced += r.Adjust.Replaced
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			}
		}
	}
	return s
}
