package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/diagfmt"
	"hdlgraph/internal/driver"
)

type fileDiagnostics struct {
	File  string `json:"file"`
	Error string `json:"error,omitempty"`
	diagfmt.DiagnosticsOutput
}

// printDiagnostics renders the diagnostics of every result in the
// configured format.
func printDiagnostics(out io.Writer, results []driver.FileResult, s settings) error {
	baseDir, _ := os.Getwd() //nolint:errcheck // relative paths degrade to absolute
	switch s.cfg.Output.Format {
	case "json":
		docs := make([]fileDiagnostics, 0, len(results))
		for i := range results {
			r := &results[i]
			doc := fileDiagnostics{
				File: r.Name,
				DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(r.Bag, r.Strings, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         s.pathMode,
					BaseDir:          baseDir,
					IncludeNotes:     true,
				}),
			}
			if r.Err != nil {
				doc.Error = r.Err.Error()
			}
			docs = append(docs, doc)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case "short":
		for i := range results {
			r := &results[i]
			if r.Bag.Len() == 0 {
				continue
			}
			if _, err := fmt.Fprintln(out, diag.FormatShort(r.Bag.Items(), r.Strings, true)); err != nil {
				return err
			}
		}
		return nil
	default:
		for i := range results {
			r := &results[i]
			diagfmt.Pretty(out, r.Bag, r.Strings, diagfmt.PrettyOpts{
				Color:     s.color,
				PathMode:  s.pathMode,
				BaseDir:   baseDir,
				ShowNotes: true,
			})
		}
		return nil
	}
}

// printSummary writes the one-line batch summary unless quiet.
func printSummary(out io.Writer, results []driver.FileResult, s settings) {
	if s.quiet || s.cfg.Output.Format == "json" {
		return
	}
	sum := driver.Summarize(results)
	fmt.Fprintf(out, "%d file(s): %d error(s), %d warning(s)", sum.Files, sum.Errors, sum.Warnings)
	if sum.Replaced > 0 {
		fmt.Fprintf(out, ", %d expression(s) folded", sum.Replaced)
	}
	if sum.Failed > 0 {
		fmt.Fprintf(out, ", %d failed", sum.Failed)
	}
	fmt.Fprintln(out)
}

// finish prints everything a batch produced and maps findings to the exit
// status.
func finish(out, errOut io.Writer, results []driver.FileResult, s settings) error {
	if err := printDiagnostics(out, results, s); err != nil {
		return err
	}
	if s.timings {
		if s.cfg.Output.Format == "json" {
			if err := driver.WriteTimingsJSON(errOut, results); err != nil {
				return err
			}
		} else {
			printStageTimings(errOut, results)
		}
	}
	printSummary(errOut, results, s)
	for i := range results {
		if results[i].Failed() {
			return errFindings
		}
	}
	return nil
}

// driverOptions maps settings onto a batch run.
func driverOptions(s settings) driver.Options {
	baseDir, _ := os.Getwd() //nolint:errcheck
	return driver.Options{
		Jobs:             s.cfg.Output.Jobs,
		MaxDiagnostics:   s.cfg.Lint.MaxDiagnostics,
		Adjust:           s.cfg.Adjust.Enabled,
		NoResize:         !s.cfg.Adjust.Resize,
		Lint:             true,
		LintDisabled:     s.disabled,
		WarningsAsErrors: s.cfg.Lint.WarningsAsErrors,
		LintMinSeverity:  s.minSev,
		BaseDir:          baseDir,
	}
}
