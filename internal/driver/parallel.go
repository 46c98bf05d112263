package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"hdlgraph/internal/adjust"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/lint"
	"hdlgraph/internal/model"
	"hdlgraph/internal/observ"
	"hdlgraph/internal/pipeline"
	"hdlgraph/internal/serial"
	"hdlgraph/internal/source"
	"hdlgraph/internal/trace"
)

// Run processes every path and returns one result per path in input order.
// A file that fails to load or save records the failure in its result;
// only cancellation aborts the batch.
func Run(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	defer span.Count("files", len(paths)).End("")

	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = pipeline.DisplayName(p, opts.BaseDir)
	}
	pipeline.EmitQueued(opts.Progress, names)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	jobs = min(jobs, len(paths))
	// a free lane is taken for the duration of one file
	lanes := make(chan uint32, jobs)
	for l := 1; l <= jobs; l++ {
		lane, err := safecast.Conv[uint32](l)
		if err != nil {
			return results, fmt.Errorf("jobs: %w", err)
		}
		lanes <- lane
	}

	// each goroutine owns results[i]; no lock needed
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lane := <-lanes
			defer func() { lanes <- lane }()
			results[i] = processFile(trace.WithLane(gctx, lane), path, names[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// RunFile processes a single path.
func RunFile(ctx context.Context, path string, opts Options) FileResult {
	return processFile(ctx, path, pipeline.DisplayName(path, opts.BaseDir), opts)
}

func processFile(ctx context.Context, path, name string, opts Options) (res FileResult) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+name)
	res = FileResult{
		Path: path,
		Name: name,
		Bag:  diag.NewBag(opts.MaxDiagnostics),
	}
	timer := observ.NewTimer()
	run := &fileRun{name: name, opts: opts, res: &res, timer: timer}
	defer func() {
		res.Timing = timer.Report()
		status := pipeline.StatusDone
		if res.Err != nil {
			status = pipeline.StatusError
		}
		pipeline.Emit(opts.Progress, pipeline.Event{File: name, Status: status, Err: res.Err, Elapsed: res.Timings.Sum()})
		span.Count("objects", res.Objects).Count("diagnostics", res.Bag.Len()).EndErr(res.Err)
	}()

	a := model.NewArena(model.Hints{})
	reporter := diag.BagReporter{Bag: res.Bag}

	err := run.stage(pipeline.StageRestore, func() error {
		roots, err := serial.Restore(ctx, a, path)
		res.Roots = len(roots)
		return err
	})
	if err != nil {
		code := diag.IOReadFailed
		if errors.Is(err, model.ErrFormat) {
			code = diag.IOBadFormat
		}
		// the arena keeps its previous (empty) content on failure
		res.Strings = a.Strings()
		diag.ReportError(reporter, code, fileLoc(a, path), 0, fmt.Sprintf("%s: %v", name, err)).Emit()
		res.Err = err
		return res
	}

	if opts.Adjust {
		_ = run.stage(pipeline.StageAdjust, func() error { //nolint:errcheck // never fails
			res.Adjust = adjust.Run(ctx, a, adjust.Options{Reporter: reporter, NoResize: opts.NoResize})
			return nil
		})
	}
	if opts.Lint {
		_ = run.stage(pipeline.StageLint, func() error { //nolint:errcheck // never fails
			res.Lint = lint.Run(ctx, a, lint.Options{
				Reporter:         reporter,
				Disabled:         opts.LintDisabled,
				WarningsAsErrors: opts.WarningsAsErrors,
				MinSeverity:      opts.LintMinSeverity,
			})
			return nil
		})
	}
	if out := opts.OutputPath(path); out != "" {
		res.Output = out
		err := run.stage(pipeline.StageSave, func() error {
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("%w: %w", model.ErrIO, err)
			}
			return serial.Save(ctx, a, out)
		})
		if err != nil {
			diag.ReportError(reporter, diag.IOWriteFailed, fileLoc(a, out), 0, fmt.Sprintf("%s: %v", out, err)).Emit()
			res.Err = err
		}
	}

	res.Bag.Sort()
	res.Strings = a.Strings()
	res.Objects = a.LiveCount()
	if opts.KeepArena {
		res.Arena = a
	}
	return res
}

// fileLoc points a file-level diagnostic at path.
func fileLoc(a *model.Arena, path string) source.Loc {
	return source.Loc{File: a.Strings().Intern(path)}
}

type fileRun struct {
	name  string
	opts  Options
	res   *FileResult
	timer *observ.Timer
}

// stage runs fn as one named phase: progress events, phase observer, timer
// and stage timing are all updated around it.
func (r *fileRun) stage(stage pipeline.Stage, fn func() error) error {
	pipeline.Emit(r.opts.Progress, pipeline.Event{File: r.name, Stage: stage, Status: pipeline.StatusWorking})
	r.observe(stage, PhaseStart, 0)
	done := r.timer.Track(string(stage))
	start := time.Now()

	err := fn()

	elapsed := time.Since(start)
	note := ""
	if err != nil {
		note = err.Error()
	}
	done(note)
	r.res.Timings.Set(stage, elapsed)
	r.observe(stage, PhaseEnd, elapsed)
	status := pipeline.StatusDone
	if err != nil {
		status = pipeline.StatusError
	}
	pipeline.Emit(r.opts.Progress, pipeline.Event{File: r.name, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	return err
}

func (r *fileRun) observe(stage pipeline.Stage, status PhaseStatus, elapsed time.Duration) {
	if r.opts.PhaseObserver == nil {
		return
	}
	r.opts.PhaseObserver(PhaseEvent{File: r.name, Name: string(stage), Status: status, Elapsed: elapsed})
}
