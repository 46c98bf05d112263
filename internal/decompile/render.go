package decompile

import (
	"strings"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

type printer struct {
	a *model.Arena
	w *Writer
}

// Render returns the text of id. Expressions render on one line, statements
// and processes may span several.
func Render(a *model.Arena, id model.ObjID) string {
	p := &printer{a: a, w: NewWriter(2)}
	p.print(id)
	return strings.TrimRight(p.w.String(), "\n")
}

// Text returns the cached text of id, or renders it without caching. It
// never writes to the arena, so concurrent readers may share one.
func Text(a *model.Arena, id model.ObjID) string {
	if s, ok := a.Text(id); ok {
		return s
	}
	return Render(a, id)
}

// Cached returns the cached text of id, rendering and caching it first when
// absent.
func Cached(a *model.Arena, id model.ObjID) string {
	if s, ok := a.Text(id); ok {
		return s
	}
	s := Render(a, id)
	if s != "" {
		a.SetText(id, s)
	}
	return s
}

func (p *printer) ref(id model.ObjID, f schema.FieldID) {
	p.print(p.a.Ref(id, f))
}

func (p *printer) list(ids []model.ObjID, sep string) {
	for i, it := range ids {
		if i > 0 {
			p.w.WriteString(sep)
		}
		p.print(it)
	}
}

func (p *printer) print(id model.ObjID) {
	a := p.a
	w := p.w
	switch k := a.Kind(id); k {
	case schema.KindNone:
		return
	case schema.KindConstant:
		v, _ := a.Str(id, schema.FValue)
		size, _ := a.Int(id, schema.FSize)
		w.WriteString(Constant(v, size))
	case schema.KindRefObj:
		w.WriteString(a.Name(id))
	case schema.KindBitSelect:
		w.WriteString(a.Name(id) + "[")
		p.ref(id, schema.FIndex)
		w.WriteString("]")
	case schema.KindPartSelect:
		w.WriteString(a.Name(id) + "[")
		p.ref(id, schema.FLeftRange)
		w.WriteString(":")
		p.ref(id, schema.FRightRange)
		w.WriteString("]")
	case schema.KindRange:
		w.WriteString("[")
		p.ref(id, schema.FLeftRange)
		w.WriteString(":")
		p.ref(id, schema.FRightRange)
		w.WriteString("]")
	case schema.KindOperation:
		p.operation(id)
	case schema.KindFuncCall, schema.KindSysFuncCall:
		w.WriteString(a.Name(id) + "(")
		p.list(a.Items(a.Coll(id, schema.FArguments)), ", ")
		w.WriteString(")")
	case schema.KindContAssign:
		w.WriteString("assign ")
		p.ref(id, schema.FLhs)
		w.WriteString(" = ")
		p.ref(id, schema.FRhs)
	case schema.KindParamAssign:
		p.ref(id, schema.FLhs)
		w.WriteString(" = ")
		p.ref(id, schema.FRhs)
	case schema.KindAssignment:
		p.ref(id, schema.FLhs)
		if a.Bool(id, schema.FBlocking) {
			w.WriteString(" = ")
		} else {
			w.WriteString(" <= ")
		}
		p.ref(id, schema.FRhs)
		w.WriteString(";")
	case schema.KindReturn:
		w.WriteString("return ")
		p.ref(id, schema.FExpr)
		w.WriteString(";")
	case schema.KindBegin:
		w.WriteString("begin")
		w.Newline()
		w.IndentPush()
		for _, s := range a.Items(a.Coll(id, schema.FStmts)) {
			p.print(s)
			w.Newline()
		}
		w.IndentPop()
		w.WriteString("end")
	case schema.KindIfStmt, schema.KindIfElse:
		w.WriteString("if (")
		p.ref(id, schema.FCondition)
		w.WriteString(") ")
		p.ref(id, schema.FStmt)
		if k == schema.KindIfElse {
			w.WriteString(" else ")
			p.ref(id, schema.FElseStmt)
		}
	case schema.KindCaseStmt:
		w.WriteString("case (")
		p.ref(id, schema.FCondition)
		w.WriteString(")")
		w.Newline()
		w.IndentPush()
		for _, it := range a.Items(a.Coll(id, schema.FCaseItems)) {
			p.print(it)
			w.Newline()
		}
		w.IndentPop()
		w.WriteString("endcase")
	case schema.KindCaseItem:
		exprs := a.Items(a.Coll(id, schema.FExprs))
		if len(exprs) == 0 {
			w.WriteString("default")
		}
		p.list(exprs, ", ")
		w.WriteString(": ")
		p.ref(id, schema.FStmt)
	case schema.KindAlways:
		w.WriteString(alwaysKeyword(a, id) + " ")
		p.ref(id, schema.FStmt)
	case schema.KindInitial:
		w.WriteString("initial ")
		p.ref(id, schema.FStmt)
	case schema.KindParameter:
		w.WriteString("parameter " + a.Name(id))
		if e := a.Ref(id, schema.FExpr); e != model.NoObjID {
			w.WriteString(" = ")
			p.print(e)
		}
	case schema.KindLogicTypespec:
		w.WriteString("logic")
		if a.Bool(id, schema.FSigned) {
			w.WriteString(" signed")
		}
		for _, r := range a.Items(a.Coll(id, schema.FRanges)) {
			w.WriteString(" ")
			p.print(r)
		}
	case schema.KindIntTypespec:
		w.WriteString("int")
		if !a.Bool(id, schema.FSigned) {
			w.WriteString(" unsigned")
		}
	default:
		w.WriteString(k.String())
		if n := a.Name(id); n != "" {
			w.WriteString(" " + n)
		}
	}
}

func (p *printer) operation(id model.ObjID) {
	a, w := p.a, p.w
	op, _ := a.Int(id, schema.FOpType)
	ops := a.Items(a.Coll(id, schema.FOperands))
	switch {
	case op == schema.OpConcat:
		w.WriteString("{")
		p.list(ops, ", ")
		w.WriteString("}")
	case op == schema.OpMultiConcat && len(ops) >= 2:
		w.WriteString("{")
		p.operand(ops[0])
		w.WriteString("{")
		p.list(ops[1:], ", ")
		w.WriteString("}}")
	case op == schema.OpCondition && len(ops) == 3:
		p.operand(ops[0])
		w.WriteString(" ? ")
		p.operand(ops[1])
		w.WriteString(" : ")
		p.operand(ops[2])
	case IsUnary(op) && len(ops) == 1:
		sym, _ := OpSymbol(op)
		w.WriteString(sym)
		p.operand(ops[0])
	default:
		sym, ok := OpSymbol(op)
		if !ok {
			sym = "?"
		}
		for i, o := range ops {
			if i > 0 {
				w.WriteString(" " + sym + " ")
			}
			p.operand(o)
		}
	}
}

// operand parenthesizes nested operations.
func (p *printer) operand(id model.ObjID) {
	if p.a.Kind(id) == schema.KindOperation {
		op, _ := p.a.Int(id, schema.FOpType)
		if op != schema.OpConcat && op != schema.OpMultiConcat {
			p.w.WriteString("(")
			p.print(id)
			p.w.WriteString(")")
			return
		}
	}
	p.print(id)
}

func alwaysKeyword(a *model.Arena, id model.ObjID) string {
	t, _ := a.Int(id, schema.FAlwaysType)
	switch t {
	case schema.AlwaysComb:
		return "always_comb"
	case schema.AlwaysFF:
		return "always_ff"
	case schema.AlwaysLatch:
		return "always_latch"
	}
	return "always"
}
