package adjust

import (
	"math/big"

	"hdlgraph/internal/constval"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// maxEvalDepth stops evaluation of recursive functions.
const maxEvalDepth = 64

// eval computes the value of a constant expression without touching the
// graph. Results do not depend on whether subexpressions were already
// folded, which keeps the pass independent of visiting order.
func (ad *adjuster) eval(id model.ObjID) (constval.Value, evalStatus) {
	if ad.depth >= maxEvalDepth {
		return constval.Value{}, evalNotConstant
	}
	ad.depth++
	defer func() { ad.depth-- }()
	a := ad.a
	switch a.Kind(id) {
	case schema.KindConstant:
		if v, ok := constval.Of(a, id); ok {
			return v, evalOK
		}
	case schema.KindOperation:
		operands := a.Items(a.Coll(id, schema.FOperands))
		vs := make([]constval.Value, 0, len(operands))
		for _, o := range operands {
			if !a.Alive(o) {
				continue
			}
			v, st := ad.eval(o)
			if st != evalOK {
				return v, st
			}
			vs = append(vs, v)
		}
		op, _ := a.Int(id, schema.FOpType)
		return evalOp(op, vs)
	case schema.KindSysFuncCall:
		return ad.evalSys(id)
	case schema.KindFuncCall:
		if v, ok := ad.callValue(id); ok {
			return v, evalOK
		}
	}
	return constval.Value{}, evalNotConstant
}

func (ad *adjuster) leaveFuncCall(id model.ObjID) {
	if v, ok := ad.callValue(id); ok {
		ad.finish(id, v)
		return
	}
	fn := ad.a.Ref(id, schema.FFunction)
	if _, ok := ad.returnExpr(fn); ok && ad.a.Ref(fn, schema.FReturn) == model.NoObjID {
		ad.info(diag.AdjUnsizedCall, id, "call of %s not folded: function has no return type", ad.a.Name(fn))
	}
}

// callValue folds a call of a function whose body is a single return of a
// constant expression. The value takes the function's return width.
func (ad *adjuster) callValue(id model.ObjID) (constval.Value, bool) {
	a := ad.a
	fn := a.Ref(id, schema.FFunction)
	expr, ok := ad.returnExpr(fn)
	if !ok {
		return constval.Value{}, false
	}
	ret := a.Ref(fn, schema.FReturn)
	w, wok := constval.Width(a, ret)
	if !wok {
		return constval.Value{}, false
	}
	v, st := ad.eval(expr)
	if st != evalOK {
		return constval.Value{}, false
	}
	signed := a.Bool(fn, schema.FSigned) || constval.Signed(a, ret)
	return v.Resize(w, !signed), true
}

// returnExpr finds the returned expression of a body consisting of exactly
// one return statement, optionally wrapped in a begin block.
func (ad *adjuster) returnExpr(fn model.ObjID) (model.ObjID, bool) {
	a := ad.a
	if a.Kind(fn) != schema.KindFunction {
		return model.NoObjID, false
	}
	body := a.Ref(fn, schema.FStmt)
	if a.Kind(body) == schema.KindBegin {
		var live []model.ObjID
		for _, s := range a.Items(a.Coll(body, schema.FStmts)) {
			if a.Alive(s) {
				live = append(live, s)
			}
		}
		if len(live) != 1 {
			return model.NoObjID, false
		}
		body = live[0]
	}
	if a.Kind(body) != schema.KindReturn {
		return model.NoObjID, false
	}
	expr := a.Ref(body, schema.FExpr)
	return expr, expr != model.NoObjID
}

func (ad *adjuster) leaveSysFuncCall(id model.ObjID) {
	if v, st := ad.evalSys(id); st == evalOK {
		ad.finish(id, v)
	}
}

// evalSys folds $clog2, $bits, $signed and $unsigned.
func (ad *adjuster) evalSys(id model.ObjID) (constval.Value, evalStatus) {
	a := ad.a
	var args []model.ObjID
	for _, arg := range a.Items(a.Coll(id, schema.FArguments)) {
		if a.Alive(arg) {
			args = append(args, arg)
		}
	}
	if len(args) != 1 {
		return constval.Value{}, evalNotConstant
	}
	switch a.Name(id) {
	case "$bits":
		if w, _, ok := ad.exprWidth(args[0]); ok {
			return constval.FromInt64(int64(w), integer, false), evalOK
		}
		return constval.Value{}, evalNotConstant
	case "$clog2":
		v, st := ad.eval(args[0])
		if st != evalOK {
			return v, st
		}
		n := 0
		if v.Int.Cmp(big.NewInt(1)) > 0 {
			n = new(big.Int).Sub(v.Int, big.NewInt(1)).BitLen()
		}
		return constval.FromInt64(int64(n), integer, false), evalOK
	case "$signed", "$unsigned":
		v, st := ad.eval(args[0])
		if st != evalOK {
			return v, st
		}
		return v.Resize(v.Width, a.Name(id) == "$unsigned"), evalOK
	}
	return constval.Value{}, evalNotConstant
}
