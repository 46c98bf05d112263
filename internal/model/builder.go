package model

import (
	"strconv"

	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
)

// Builder is a thin construction layer over an arena. It keeps a current
// file and line so every object gets a plausible location.
type Builder struct {
	A    *Arena
	file source.StringID
	line uint32
}

// NewBuilder starts building into a; file names the source of every object
// it creates.
func NewBuilder(a *Arena, file string) *Builder {
	return &Builder{A: a, file: a.Strings().Intern(file)}
}

// Line sets the line used for subsequently created objects.
func (b *Builder) Line(n uint32) *Builder {
	b.line = n
	return b
}

func (b *Builder) make(k schema.Kind, name string) ObjID {
	id := b.A.Make(k)
	if name != "" {
		b.A.SetName(id, name)
	}
	if b.line > 0 {
		b.A.SetLoc(id, source.Loc{File: b.file, Line: b.line, Col: 1, EndLine: b.line, EndCol: 1})
	}
	return id
}

// Design creates a design object and records it as a root.
func (b *Builder) Design(name string) ObjID {
	id := b.make(schema.KindDesign, name)
	b.A.AddRoot(id)
	return id
}

// Module creates a module definition in design. Top modules are also
// listed under the design's top_modules.
func (b *Builder) Module(design ObjID, name string, top bool) ObjID {
	id := b.make(schema.KindModule, name)
	b.A.SetStr(id, schema.FDefName, "work@"+name)
	b.A.SetBool(id, schema.FTopModule, top)
	b.A.AppendChild(design, schema.FAllModules, id)
	if top {
		b.A.AppendRef(design, schema.FTopModules, id)
	}
	return id
}

// ChildModule creates a module instance under parent (a module or
// generate scope).
func (b *Builder) ChildModule(parent ObjID, name string) ObjID {
	id := b.make(schema.KindModule, name)
	b.A.SetStr(id, schema.FDefName, "work@"+name)
	b.A.AppendChild(parent, schema.FModules, id)
	return id
}

// Package creates a package in design.
func (b *Builder) Package(design ObjID, name string) ObjID {
	id := b.make(schema.KindPackage, name)
	b.A.SetStr(id, schema.FDefName, "work@"+name)
	b.A.AppendChild(design, schema.FAllPackages, id)
	return id
}

// GenScope creates a generate scope under a module or another scope.
func (b *Builder) GenScope(parent ObjID, name string) ObjID {
	id := b.make(schema.KindGenScope, name)
	b.A.AppendChild(parent, schema.FGenScopes, id)
	return id
}

// LogicTypespec builds logic [width-1:0], owned by scope's typespecs when
// scope is set. A width of 1 has no range.
func (b *Builder) LogicTypespec(scope ObjID, width int, signed bool) ObjID {
	ts := b.make(schema.KindLogicTypespec, "")
	b.A.SetBool(ts, schema.FSigned, signed)
	if width > 1 {
		b.A.AppendChild(ts, schema.FRanges, b.Range(int64(width-1), 0))
	}
	if scope != NoObjID {
		b.A.AppendChild(scope, schema.FTypespecs, ts)
	}
	return ts
}

// Range builds [left:right] with integer bounds.
func (b *Builder) Range(left, right int64) ObjID {
	r := b.make(schema.KindRange, "")
	b.A.SetChild(r, schema.FLeftRange, b.Int(left))
	b.A.SetChild(r, schema.FRightRange, b.Int(right))
	return r
}

// Net declares a logic net of the given width in scope.
func (b *Builder) Net(scope ObjID, name string, width int, signed bool) ObjID {
	id := b.make(schema.KindNet, name)
	b.A.SetInt(id, schema.FNetType, schema.NetLogic)
	b.A.SetBool(id, schema.FSigned, signed)
	b.A.SetRef(id, schema.FTypespec, b.LogicTypespec(scope, width, signed))
	b.A.AppendChild(scope, schema.FNets, id)
	return id
}

// Port declares a port of module connected to lowConn (usually a ref to the
// net of the same name).
func (b *Builder) Port(module ObjID, name string, dir int64, lowConn ObjID) ObjID {
	id := b.make(schema.KindPort, name)
	b.A.SetInt(id, schema.FDirection, dir)
	if lowConn != NoObjID {
		b.A.SetChild(id, schema.FLowConn, lowConn)
	}
	b.A.AppendChild(module, schema.FPorts, id)
	return id
}

// Parameter declares a parameter with a value expression.
func (b *Builder) Parameter(scope ObjID, name string, value ObjID) ObjID {
	id := b.make(schema.KindParameter, name)
	if value != NoObjID {
		b.A.SetChild(id, schema.FExpr, value)
	}
	b.A.AppendChild(scope, schema.FParameters, id)
	return id
}

// Int builds a 32-bit signed integer constant.
func (b *Builder) Int(v int64) ObjID {
	return b.Constant(v, 32, true)
}

// Constant builds a sized integer constant.
func (b *Builder) Constant(v int64, width int, signed bool) ObjID {
	id := b.make(schema.KindConstant, "")
	if signed {
		b.A.SetInt(id, schema.FConstType, schema.ConstInt)
		b.A.SetStr(id, schema.FValue, "INT:"+strconv.FormatInt(v, 10))
	} else {
		b.A.SetInt(id, schema.FConstType, schema.ConstUInt)
		b.A.SetStr(id, schema.FValue, "UINT:"+strconv.FormatUint(uint64(v), 10)) //nolint:gosec // caller passes a non-negative value
	}
	b.A.SetInt(id, schema.FSize, int64(width))
	return id
}

// Literal builds a constant from an already encoded value such as
// "BIN:1010" or "STRING:hello".
func (b *Builder) Literal(value string, constType int64, width int) ObjID {
	id := b.make(schema.KindConstant, "")
	b.A.SetInt(id, schema.FConstType, constType)
	b.A.SetStr(id, schema.FValue, value)
	b.A.SetInt(id, schema.FSize, int64(width))
	return id
}

// RefTo builds a reference to a declared object; the name is copied.
func (b *Builder) RefTo(actual ObjID) ObjID {
	id := b.make(schema.KindRefObj, b.A.Name(actual))
	b.A.SetRef(id, schema.FActual, actual)
	return id
}

// Op builds an operation owning its operands.
func (b *Builder) Op(opType int64, operands ...ObjID) ObjID {
	id := b.make(schema.KindOperation, "")
	b.A.SetInt(id, schema.FOpType, opType)
	c := b.A.EnsureColl(id, schema.FOperands)
	for _, o := range operands {
		if b.A.Append(c, o) {
			b.A.SetParent(o, id)
		}
	}
	return id
}

// BitSelect builds actual[index].
func (b *Builder) BitSelect(actual, index ObjID) ObjID {
	id := b.make(schema.KindBitSelect, b.A.Name(actual))
	b.A.SetRef(id, schema.FActual, actual)
	b.A.SetChild(id, schema.FIndex, index)
	return id
}

// PartSelect builds actual[left:right].
func (b *Builder) PartSelect(actual, left, right ObjID) ObjID {
	id := b.make(schema.KindPartSelect, b.A.Name(actual))
	b.A.SetRef(id, schema.FActual, actual)
	b.A.SetChild(id, schema.FLeftRange, left)
	b.A.SetChild(id, schema.FRightRange, right)
	return id
}

// ContAssign builds "assign lhs = rhs" in scope.
func (b *Builder) ContAssign(scope, lhs, rhs ObjID) ObjID {
	id := b.make(schema.KindContAssign, "")
	b.A.SetChild(id, schema.FLhs, lhs)
	b.A.SetChild(id, schema.FRhs, rhs)
	b.A.AppendChild(scope, schema.FContAssigns, id)
	return id
}

// Assign builds a procedural assignment statement.
func (b *Builder) Assign(lhs, rhs ObjID, blocking bool) ObjID {
	id := b.make(schema.KindAssignment, "")
	b.A.SetBool(id, schema.FBlocking, blocking)
	b.A.SetChild(id, schema.FLhs, lhs)
	b.A.SetChild(id, schema.FRhs, rhs)
	return id
}

// Begin builds a sequential block.
func (b *Builder) Begin(stmts ...ObjID) ObjID {
	id := b.make(schema.KindBegin, "")
	c := b.A.EnsureColl(id, schema.FStmts)
	for _, s := range stmts {
		if b.A.Append(c, s) {
			b.A.SetParent(s, id)
		}
	}
	return id
}

// Always builds an always block of the given type in scope.
func (b *Builder) Always(scope ObjID, alwaysType int64, stmt ObjID) ObjID {
	id := b.make(schema.KindAlways, "")
	b.A.SetInt(id, schema.FAlwaysType, alwaysType)
	b.A.SetChild(id, schema.FStmt, stmt)
	b.A.AppendChild(scope, schema.FProcesses, id)
	return id
}

// Case builds a case statement on cond; items come from CaseItem.
func (b *Builder) Case(cond ObjID, items ...ObjID) ObjID {
	id := b.make(schema.KindCaseStmt, "")
	b.A.SetInt(id, schema.FCaseType, schema.CaseExact)
	b.A.SetChild(id, schema.FCondition, cond)
	c := b.A.EnsureColl(id, schema.FCaseItems)
	for _, it := range items {
		if b.A.Append(c, it) {
			b.A.SetParent(it, id)
		}
	}
	return id
}

// CaseItem builds "exprs: stmt"; no exprs means default.
func (b *Builder) CaseItem(stmt ObjID, exprs ...ObjID) ObjID {
	id := b.make(schema.KindCaseItem, "")
	for _, e := range exprs {
		b.A.AppendChild(id, schema.FExprs, e)
	}
	if stmt != NoObjID {
		b.A.SetChild(id, schema.FStmt, stmt)
	}
	return id
}

// Function declares a function in scope returning ret (may be NoObjID).
func (b *Builder) Function(scope ObjID, name string, ret, body ObjID) ObjID {
	id := b.make(schema.KindFunction, name)
	if ret != NoObjID {
		b.A.SetRef(id, schema.FReturn, ret)
	}
	if body != NoObjID {
		b.A.SetChild(id, schema.FStmt, body)
	}
	b.A.AppendChild(scope, schema.FTaskFuncs, id)
	return id
}

// Return builds "return expr".
func (b *Builder) Return(expr ObjID) ObjID {
	id := b.make(schema.KindReturn, "")
	if expr != NoObjID {
		b.A.SetChild(id, schema.FExpr, expr)
	}
	return id
}

// Call builds a call of fn with args.
func (b *Builder) Call(fn ObjID, args ...ObjID) ObjID {
	id := b.make(schema.KindFuncCall, b.A.Name(fn))
	b.A.SetRef(id, schema.FFunction, fn)
	c := b.A.EnsureColl(id, schema.FArguments)
	for _, arg := range args {
		if b.A.Append(c, arg) {
			b.A.SetParent(arg, id)
		}
	}
	return id
}

// SysCall builds a system function call such as $clog2(args...).
func (b *Builder) SysCall(name string, args ...ObjID) ObjID {
	id := b.make(schema.KindSysFuncCall, name)
	c := b.A.EnsureColl(id, schema.FArguments)
	for _, arg := range args {
		if b.A.Append(c, arg) {
			b.A.SetParent(arg, id)
		}
	}
	return id
}

// Struct builds a struct typespec in scope from members.
func (b *Builder) Struct(scope ObjID, name string, packed bool, members ...ObjID) ObjID {
	id := b.make(schema.KindStructTypespec, name)
	b.A.SetBool(id, schema.FPacked, packed)
	for _, m := range members {
		b.A.AppendChild(id, schema.FMembers, m)
	}
	if scope != NoObjID {
		b.A.AppendChild(scope, schema.FTypespecs, id)
	}
	return id
}

// Member builds a struct member of type ts with an optional default.
func (b *Builder) Member(name string, ts, def ObjID) ObjID {
	id := b.make(schema.KindTypespecMember, name)
	if ts != NoObjID {
		b.A.SetRef(id, schema.FTypespec, ts)
	}
	if def != NoObjID {
		b.A.SetChild(id, schema.FDefaultValue, def)
	}
	return id
}

// Enum builds an enum typespec in scope over base with constants.
func (b *Builder) Enum(scope ObjID, name string, base ObjID, consts ...ObjID) ObjID {
	id := b.make(schema.KindEnumTypespec, name)
	if base != NoObjID {
		b.A.SetRef(id, schema.FBaseTypespec, base)
	}
	for _, c := range consts {
		b.A.AppendChild(id, schema.FEnumConsts, c)
	}
	if scope != NoObjID {
		b.A.AppendChild(scope, schema.FTypespecs, id)
	}
	return id
}

// EnumConst builds name = value.
func (b *Builder) EnumConst(name string, value int64, width int) ObjID {
	id := b.make(schema.KindEnumConst, name)
	b.A.SetStr(id, schema.FValue, "UINT:"+strconv.FormatInt(value, 10))
	b.A.SetInt(id, schema.FSize, int64(width))
	return id
}

// Assert builds a concurrent assertion of a property in module.
func (b *Builder) Assert(module ObjID, name string, clock, prop ObjID) ObjID {
	spec := b.make(schema.KindPropertySpec, "")
	if clock != NoObjID {
		b.A.SetChild(spec, schema.FClockingEvent, clock)
	}
	if prop != NoObjID {
		b.A.SetChild(spec, schema.FPropertyExpr, prop)
	}
	id := b.make(schema.KindAssertProperty, name)
	b.A.SetChild(id, schema.FProperty, spec)
	b.A.AppendChild(module, schema.FAssertions, id)
	return id
}
