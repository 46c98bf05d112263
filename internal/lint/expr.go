package lint

import (
	"strconv"

	"hdlgraph/internal/constval"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

func (c *checker) checkBitSelect(id model.ObjID) {
	a := c.a
	actual := a.Ref(id, schema.FActual)
	ts := a.Ref(actual, schema.FTypespec)
	if a.Kind(ts) != schema.KindLogicTypespec {
		return
	}
	idx, ok := constval.Of(a, a.Ref(id, schema.FIndex))
	if !ok {
		return
	}
	lo, hi := int64(0), int64(0)
	if ranges := c.items(ts, schema.FRanges); len(ranges) > 0 {
		l, r, bok := constval.RangeBounds(a, ranges[0])
		if !bok {
			return
		}
		lo, hi = min(l, r), max(l, r)
	}
	i, fits := idx.Int64()
	if fits && i >= lo && i <= hi {
		return
	}
	c.warnf(diag.LintSelectOutOfRange, id, "index %s is outside [%d:%d] of %s", idx.Int, hi, lo, c.displayName(actual)).
		WithNote(c.loc(actual), "declared here").Emit()
}

func (c *checker) checkAssignment(id model.ObjID) {
	lhs := c.a.Ref(id, schema.FLhs)
	if lhs == model.NoObjID {
		c.errorf(diag.LintNotAssignable, id, "assignment has no left-hand side").Emit()
		return
	}
	if bad := c.unassignable(lhs); bad != model.NoObjID {
		c.errorf(diag.LintNotAssignable, bad, "%s is not assignable", c.describe(bad)).Emit()
	}
}

// unassignable returns the first part of lhs that cannot be written.
func (c *checker) unassignable(lhs model.ObjID) model.ObjID {
	a := c.a
	switch a.Kind(lhs) {
	case schema.KindRefObj, schema.KindBitSelect, schema.KindPartSelect:
		switch a.Kind(a.Ref(lhs, schema.FActual)) {
		case schema.KindParameter, schema.KindEnumConst:
			return lhs
		}
		return model.NoObjID
	case schema.KindOperation:
		if op, _ := a.Int(lhs, schema.FOpType); op != schema.OpConcat {
			return lhs
		}
		for _, o := range c.items(lhs, schema.FOperands) {
			if bad := c.unassignable(o); bad != model.NoObjID {
				return bad
			}
		}
		return model.NoObjID
	}
	return lhs
}

func (c *checker) describe(id model.ObjID) string {
	a := c.a
	switch a.Kind(id) {
	case schema.KindRefObj, schema.KindBitSelect, schema.KindPartSelect:
		actual := a.Ref(id, schema.FActual)
		return a.Kind(actual).String() + " " + c.displayName(actual)
	case schema.KindConstant:
		return "constant"
	case schema.KindFuncCall, schema.KindSysFuncCall:
		return "call of " + c.displayName(id)
	}
	return a.Kind(id).String()
}

func (c *checker) checkPropertySpec(id model.ObjID) {
	if c.a.Ref(id, schema.FPropertyExpr) == model.NoObjID {
		c.errorf(diag.LintMissingPropertyExpr, id, "property specification has no property expression").Emit()
	}
}

// sysFuncArity lists known system functions with their accepted argument
// counts; max -1 means variadic.
var sysFuncArity = map[string]struct{ min, max int }{
	"$clog2":     {1, 1},
	"$bits":      {1, 1},
	"$signed":    {1, 1},
	"$unsigned":  {1, 1},
	"$countones": {1, 1},
	"$onehot":    {1, 1},
	"$onehot0":   {1, 1},
	"$isunknown": {1, 1},
	"$size":      {1, 2},
	"$left":      {1, 2},
	"$right":     {1, 2},
	"$high":      {1, 2},
	"$low":       {1, 2},
	"$random":    {0, 1},
	"$urandom":   {0, 1},
	"$time":      {0, 0},
	"$stime":     {0, 0},
	"$realtime":  {0, 0},
	"$past":      {1, 4},
	"$rose":      {1, 2},
	"$fell":      {1, 2},
	"$stable":    {1, 2},
	"$display":   {0, -1},
	"$write":     {0, -1},
	"$error":     {0, -1},
	"$warning":   {0, -1},
	"$info":      {0, -1},
	"$fatal":     {0, -1},
	"$finish":    {0, 1},
}

func (c *checker) checkSysFuncCall(id model.ObjID) {
	name := c.a.Name(id)
	arity, known := sysFuncArity[name]
	if !known {
		c.warnf(diag.LintSysFuncCall, id, "unknown system function %s", name).Emit()
		return
	}
	n := len(c.items(id, schema.FArguments))
	if n < arity.min || (arity.max >= 0 && n > arity.max) {
		c.errorf(diag.LintSysFuncCall, id, "%s takes %s, got %d", name, arityText(arity.min, arity.max), n).Emit()
	}
}

func arityText(lo, hi int) string {
	plural := func(n int) string {
		if n == 1 {
			return "1 argument"
		}
		return strconv.Itoa(n) + " arguments"
	}
	switch {
	case hi < 0:
		return "at least " + plural(lo)
	case lo == hi:
		return plural(lo)
	}
	return strconv.Itoa(lo) + " to " + plural(hi)
}
