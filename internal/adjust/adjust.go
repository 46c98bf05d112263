package adjust

import (
	"context"
	"fmt"

	"hdlgraph/internal/constval"
	"hdlgraph/internal/decompile"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/walk"
)

// Options configure an adjuster run.
type Options struct {
	// Reporter receives informational notes about expressions left
	// unfolded. May be nil.
	Reporter diag.Reporter
	// NoResize disables sizing literals to their assignment target.
	NoResize bool
}

// Result counts the rewrites of a run.
type Result struct {
	Visited  int
	Replaced int
	Erased   int
}

type adjuster struct {
	a      *model.Arena
	opts   Options
	w      *walk.Walker
	scopes []*scope
	depth  int
	res    Result
}

// Run adjusts every object reachable from the arena roots.
func Run(ctx context.Context, a *model.Arena, opts Options) Result {
	ad := &adjuster{a: a, opts: opts}
	ad.w = walk.New(a, ad.listener())
	ad.w.WalkRoots(ctx, "adjust")
	ad.res.Visited = ad.w.VisitedCount()
	return ad.res
}

func (ad *adjuster) listener() *walk.Listener {
	l := &walk.Listener{}
	l.OnEnter(func(_ *walk.Walker, id model.ObjID) { ad.pushScope(id) },
		schema.KindModule, schema.KindPackage, schema.KindGenScope)
	l.OnLeave(func(_ *walk.Walker, _ model.ObjID) { ad.popScope() },
		schema.KindModule, schema.KindPackage, schema.KindGenScope)
	l.OnLeave(func(_ *walk.Walker, id model.ObjID) { ad.leaveOperation(id) }, schema.KindOperation)
	l.OnLeave(func(_ *walk.Walker, id model.ObjID) { ad.leaveCase(id) }, schema.KindCaseStmt)
	l.OnLeave(func(_ *walk.Walker, id model.ObjID) { ad.leaveFuncCall(id) }, schema.KindFuncCall)
	l.OnLeave(func(_ *walk.Walker, id model.ObjID) { ad.leaveSysFuncCall(id) }, schema.KindSysFuncCall)
	l.OnLeave(func(_ *walk.Walker, id model.ObjID) { ad.leaveConstant(id) }, schema.KindConstant)
	return l
}

// Resize returns a new constant holding the value of id reinterpreted as a
// width-bit integer. It links nothing: the caller decides where the result
// goes. Non-constants, strings, reals and values with x/z digits yield
// model.NoObjID, as does a width outside [0, constval.MaxWidth].
func Resize(a *model.Arena, id model.ObjID, width int, unsigned bool) model.ObjID {
	if width < 0 || width > constval.MaxWidth {
		return model.NoObjID
	}
	v, ok := constval.Of(a, id)
	if !ok || a.Kind(id) != schema.KindConstant {
		return model.NoObjID
	}
	return constval.New(a, v.Resize(width, unsigned), id)
}

func (ad *adjuster) leaveConstant(id model.ObjID) {
	v, ok := constval.Of(ad.a, id)
	if !ok {
		return
	}
	if sized, changed := ad.sizeForContext(v); changed {
		ad.replace(id, sized)
	}
}

func (ad *adjuster) leaveOperation(id model.ObjID) {
	v, st := ad.eval(id)
	switch st {
	case evalOK:
		ad.finish(id, v)
	case evalDivByZero:
		if op, _ := ad.a.Int(id, schema.FOpType); op == schema.OpDiv || op == schema.OpMod {
			ad.info(diag.AdjDivByZero, id, "division by zero left unfolded")
		}
	}
}

// leaveCase sizes constant item expressions to the case condition.
func (ad *adjuster) leaveCase(id model.ObjID) {
	a := ad.a
	w, unsigned, ok := ad.exprWidth(a.Ref(id, schema.FCondition))
	if !ok {
		return
	}
	for _, item := range a.Items(a.Coll(id, schema.FCaseItems)) {
		if !a.Alive(item) {
			continue
		}
		c := a.Coll(item, schema.FExprs)
		for pos := 0; pos < a.Len(c); pos++ {
			e := a.At(c, pos)
			v, ok := constval.Of(a, e)
			if !ok || a.Kind(e) != schema.KindConstant {
				continue
			}
			if nv := v.Resize(w, unsigned); !nv.Equal(v) {
				ad.splice(item, schema.FExprs, pos, e, constval.New(a, nv, e))
			}
		}
	}
}

// finish turns a computed value into a constant replacing id, sized for the
// assignment id feeds when that is known.
func (ad *adjuster) finish(id model.ObjID, v constval.Value) {
	sized, _ := ad.sizeForContext(v)
	ad.replace(id, sized)
}

// sizeForContext resizes v to the left-hand side when the current object
// is the right-hand side of an assignment.
func (ad *adjuster) sizeForContext(v constval.Value) (constval.Value, bool) {
	if ad.opts.NoResize {
		return v, false
	}
	e := ad.w.Edge()
	switch ad.a.Kind(e.Parent) {
	case schema.KindContAssign, schema.KindAssignment:
	default:
		return v, false
	}
	if e.Field != schema.FRhs {
		return v, false
	}
	w, unsigned, ok := ad.exprWidth(ad.a.Ref(e.Parent, schema.FLhs))
	if !ok {
		return v, false
	}
	nv := v.Resize(w, unsigned)
	return nv, !nv.Equal(v)
}

// replace splices a constant holding v into the link the walker reached id
// through.
func (ad *adjuster) replace(id model.ObjID, v constval.Value) {
	e := ad.w.Edge()
	if e.Parent == model.NoObjID {
		return
	}
	ad.splice(e.Parent, e.Field, e.Pos, id, constval.New(ad.a, v, id))
}

func (ad *adjuster) splice(parent model.ObjID, f schema.FieldID, pos int, old, repl model.ObjID) {
	a := ad.a
	// shared links are left alone; only the owner may rewrite a subtree
	if a.Parent(old) != parent || !a.ReplaceLink(parent, f, pos, repl) {
		a.Erase(repl)
		return
	}
	ad.w.MarkVisited(repl)
	decompile.Cached(a, repl)
	ad.res.Replaced++
	ad.res.Erased += a.EraseTree(old)
}

func (ad *adjuster) info(code diag.Code, id model.ObjID, format string, args ...any) {
	if ad.opts.Reporter == nil {
		return
	}
	diag.ReportInfo(ad.opts.Reporter, code, ad.a.Loc(id), uint32(id), fmt.Sprintf(format, args...)).Emit()
}
