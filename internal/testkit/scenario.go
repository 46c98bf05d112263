package testkit

import (
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// Design1 holds the ids of the sample design built by BuildDesign1.
type Design1 struct {
	Design model.ObjID
	M1     model.ObjID
	M2     model.ObjID
	M3     model.ObjID
	Sum    model.ObjID // assign sum = a + b
	Folded model.ObjID // assign c = 2 * 3 (foldable)
}

// BuildDesign1 builds design1 with top module M1 and children M2 and M3,
// plus a few nets and expressions so every pass has something to do.
func BuildDesign1(a *model.Arena) Design1 {
	b := model.NewBuilder(a, "design1.sv")
	var d Design1
	d.Design = b.Line(1).Design("design1")
	d.M1 = b.Line(2).Module(d.Design, "M1", true)
	d.M2 = b.Line(3).ChildModule(d.M1, "M2")
	d.M3 = b.Line(4).ChildModule(d.M1, "M3")

	na := b.Line(5).Net(d.M1, "a", 8, false)
	nb := b.Line(6).Net(d.M1, "b", 8, false)
	sum := b.Line(7).Net(d.M1, "sum", 8, false)
	nc := b.Line(8).Net(d.M1, "c", 16, false)
	b.Line(9).Port(d.M1, "a", schema.DirInput, b.RefTo(na))
	b.Line(10).Port(d.M1, "sum", schema.DirOutput, b.RefTo(sum))

	d.Sum = b.Line(11).ContAssign(d.M1, b.RefTo(sum), b.Op(schema.OpAdd, b.RefTo(na), b.RefTo(nb)))
	d.Folded = b.Line(12).ContAssign(d.M1, b.RefTo(nc), b.Op(schema.OpMult, b.Int(2), b.Int(3)))
	return d
}

// BuildAllKinds builds a design touching every allocatable kind and returns
// the design root.
func BuildAllKinds(a *model.Arena) model.ObjID {
	b := model.NewBuilder(a, "all.sv")
	design := b.Line(1).Design("all")
	pkg := b.Line(2).Package(design, "pkg")
	b.Parameter(pkg, "WIDTH", b.Int(8))

	top := b.Line(10).Module(design, "top", true)
	clk := b.Line(11).Net(top, "clk", 1, false)
	data := b.Line(12).Net(top, "data", 8, false)
	out := b.Line(13).Net(top, "out", 8, true)
	b.Port(top, "clk", schema.DirInput, b.RefTo(clk))
	b.Port(top, "out", schema.DirOutput, b.RefTo(out))

	pa := a.Make(schema.KindParamAssign)
	p := b.Parameter(top, "DEPTH", b.Int(4))
	a.SetChild(pa, schema.FLhs, b.RefTo(p))
	a.SetChild(pa, schema.FRhs, b.Int(16))
	a.AppendChild(top, schema.FParamAssigns, pa)

	it := a.Make(schema.KindIntTypespec)
	a.SetBool(it, schema.FSigned, true)
	a.AppendChild(top, schema.FTypespecs, it)
	logic8 := b.LogicTypespec(top, 8, false)
	b.Struct(top, "pair_t", true, b.Member("lo", logic8, model.NoObjID), b.Member("hi", logic8, model.NoObjID))
	b.Enum(top, "state_t", logic8, b.EnumConst("IDLE", 0, 8), b.EnumConst("RUN", 1, 8))

	b.Line(20).ContAssign(top, b.PartSelect(out, b.Int(3), b.Int(0)),
		b.Op(schema.OpAdd, b.BitSelect(data, b.Int(1)), b.Literal("BIN:1010", schema.ConstBinary, 4)))

	ifs := a.Make(schema.KindIfStmt)
	a.SetChild(ifs, schema.FCondition, b.RefTo(clk))
	a.SetChild(ifs, schema.FStmt, b.Assign(b.RefTo(out), b.RefTo(data), false))
	ife := a.Make(schema.KindIfElse)
	a.SetChild(ife, schema.FCondition, b.RefTo(clk))
	a.SetChild(ife, schema.FStmt, b.Assign(b.RefTo(out), b.Int(0), true))
	a.SetChild(ife, schema.FElseStmt, b.Assign(b.RefTo(out), b.Int(1), true))
	cs := b.Case(b.RefTo(data), b.CaseItem(b.Assign(b.RefTo(out), b.Int(2), true), b.Int(0)))
	b.Line(30).Always(top, schema.AlwaysFF, b.Begin(ifs, ife, cs))

	ini := a.Make(schema.KindInitial)
	a.SetChild(ini, schema.FStmt, b.Assign(b.RefTo(out), b.SysCall("$clog2", b.Int(16)), true))
	a.AppendChild(top, schema.FProcesses, ini)

	fn := b.Line(40).Function(top, "inc", logic8, b.Return(b.Op(schema.OpAdd, b.Int(1), b.Int(1))))
	io := a.Make(schema.KindIODecl)
	a.SetName(io, "x")
	a.SetInt(io, schema.FDirection, schema.DirInput)
	a.AppendChild(fn, schema.FIODecls, io)
	b.ContAssign(top, b.RefTo(data), b.Call(fn, b.Int(3)))

	task := a.Make(schema.KindTask)
	a.SetName(task, "tick")
	a.AppendChild(top, schema.FTaskFuncs, task)

	b.Line(50).Assert(top, "a_clk", b.RefTo(clk), b.RefTo(data))

	gs := b.Line(60).GenScope(top, "g0")
	b.Net(gs, "w", 1, false)
	b.ChildModule(gs, "leaf")
	return design
}
