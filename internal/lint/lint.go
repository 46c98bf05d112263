package lint

import (
	"context"
	"fmt"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
	"hdlgraph/internal/walk"
)

// Options configure a lint run.
type Options struct {
	Reporter         diag.Reporter
	Disabled         map[diag.Code]bool
	WarningsAsErrors bool
	MinSeverity      diag.Severity
}

// Result summarises a run.
type Result struct {
	Visited int
	// Complete is false when the walk left live objects unvisited
	// (orphans not reachable from any root).
	Complete bool
}

type checker struct {
	a        *model.Arena
	reporter diag.Reporter
}

// Run checks every object reachable from the arena roots.
func Run(ctx context.Context, a *model.Arena, opts Options) Result {
	c := &checker{
		a: a,
		reporter: diag.FilterReporter{
			Next:             opts.Reporter,
			Disabled:         opts.Disabled,
			WarningsAsErrors: opts.WarningsAsErrors,
			MinSeverity:      opts.MinSeverity,
		},
	}
	w := walk.New(a, c.listener())
	w.WalkRoots(ctx, "lint")
	return Result{Visited: w.VisitedCount(), Complete: w.DidVisitAll()}
}

func (c *checker) listener() *walk.Listener {
	l := &walk.Listener{}
	hooks := []struct {
		kind schema.Kind
		fn   func(model.ObjID)
	}{
		{schema.KindBitSelect, c.checkBitSelect},
		{schema.KindFunction, c.checkFunction},
		{schema.KindStructTypespec, c.checkStruct},
		{schema.KindModule, c.checkModule},
		{schema.KindAssignment, c.checkAssignment},
		{schema.KindNet, c.checkNet},
		{schema.KindEnumTypespec, c.checkEnum},
		{schema.KindPropertySpec, c.checkPropertySpec},
		{schema.KindSysFuncCall, c.checkSysFuncCall},
		{schema.KindPort, c.checkPort},
	}
	for _, h := range hooks {
		fn := h.fn
		l.OnLeave(func(_ *walk.Walker, id model.ObjID) { fn(id) }, h.kind)
	}
	return l
}

// loc falls back to the nearest ancestor with a location.
func (c *checker) loc(id model.ObjID) source.Loc {
	for cur := id; cur != model.NoObjID; cur = c.a.Parent(cur) {
		if l := c.a.Loc(cur); !l.IsZero() {
			return l
		}
	}
	return source.NoLoc
}

func (c *checker) errorf(code diag.Code, id model.ObjID, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(c.reporter, code, c.loc(id), uint32(id), fmt.Sprintf(format, args...))
}

func (c *checker) warnf(code diag.Code, id model.ObjID, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportWarning(c.reporter, code, c.loc(id), uint32(id), fmt.Sprintf(format, args...))
}

// displayName is the name of id or, for unnamed objects, its kind.
func (c *checker) displayName(id model.ObjID) string {
	if n := c.a.Name(id); n != "" {
		return n
	}
	return c.a.Kind(id).String()
}

// items lists the live elements of collection field f of id.
func (c *checker) items(id model.ObjID, f schema.FieldID) []model.ObjID {
	all := c.a.Items(c.a.Coll(id, f))
	out := make([]model.ObjID, 0, len(all))
	for _, it := range all {
		if c.a.Alive(it) {
			out = append(out, it)
		}
	}
	return out
}
