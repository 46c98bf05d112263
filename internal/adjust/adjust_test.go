package adjust

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hdlgraph/internal/constval"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/testkit"
)

func newArena() (*model.Arena, *model.Builder, model.ObjID) {
	a := model.NewArena(model.Hints{})
	b := model.NewBuilder(a, "adj.sv")
	d := b.Line(1).Design("adj")
	m := b.Line(2).Module(d, "top", true)
	return a, b, m
}

func rhsValue(t *testing.T, a *model.Arena, assign model.ObjID) constval.Value {
	t.Helper()
	rhs := a.Ref(assign, schema.FRhs)
	if a.Kind(rhs) != schema.KindConstant {
		t.Fatalf("rhs is %s, want constant", a.Kind(rhs))
	}
	v, ok := constval.Of(a, rhs)
	if !ok {
		t.Fatalf("rhs does not parse")
	}
	return v
}

func wantValue(t *testing.T, got constval.Value, v int64, width int, unsigned bool) {
	t.Helper()
	if want := constval.FromInt64(v, width, unsigned); !got.Equal(want) {
		t.Errorf("got %s/%d/%v, want %d/%d/%v", got.Int, got.Width, got.Unsigned, v, width, unsigned)
	}
}

func TestFoldDesign1(t *testing.T) {
	a := model.NewArena(model.Hints{})
	d := testkit.BuildDesign1(a)
	oldRhs := a.Ref(d.Folded, schema.FRhs)
	sumRhs := a.Ref(d.Sum, schema.FRhs)

	res := Run(context.Background(), a, Options{})
	if res.Replaced != 1 || res.Erased != 3 {
		t.Errorf("result = %+v, want 1 replacement erasing 3 objects", res)
	}
	// c is 16 bits unsigned
	wantValue(t, rhsValue(t, a, d.Folded), 6, 16, true)
	if a.Alive(oldRhs) {
		t.Error("folded operation still alive")
	}
	if a.Ref(d.Sum, schema.FRhs) != sumRhs {
		t.Error("sum = a + b must not change")
	}
	if a.Parent(a.Ref(d.Folded, schema.FRhs)) != d.Folded {
		t.Error("replacement not owned by the assignment")
	}
	if err := testkit.CheckGraphInvariants(a); err != nil {
		t.Fatal(err)
	}
}

func TestResizeIsPure(t *testing.T) {
	a, b, m := newArena()
	c := b.Constant(0x1ff, 12, false)
	before := testkit.Snapshot(a)

	r := Resize(a, c, 8, true)
	if r == model.NoObjID || r == c {
		t.Fatalf("Resize returned %d", r)
	}
	v, _ := constval.Of(a, r)
	wantValue(t, v, 0xff, 8, true)
	if a.Parent(r) != model.NoObjID {
		t.Error("result is linked")
	}
	if diff := cmp.Diff(before, testkit.Snapshot(a)); diff != "" {
		t.Errorf("reachable graph changed (-before +after):\n%s", diff)
	}

	if Resize(a, m, 8, true) != model.NoObjID {
		t.Error("module resized")
	}
	if Resize(a, b.Literal("STRING:hi", schema.ConstString, 16), 8, true) != model.NoObjID {
		t.Error("string resized")
	}
	if Resize(a, b.Literal("BIN:1x", schema.ConstBinary, 2), 8, true) != model.NoObjID {
		t.Error("x digits resized")
	}
}

func TestResizeSignExtends(t *testing.T) {
	a, b, _ := newArena()
	r := Resize(a, b.Constant(-1, 4, true), 8, false)
	v, _ := constval.Of(a, r)
	wantValue(t, v, -1, 8, false)

	r = Resize(a, b.Constant(0xf, 4, false), 8, false)
	v, _ = constval.Of(a, r)
	wantValue(t, v, 15, 8, false)
}

func TestOversizedWidthsLeftAlone(t *testing.T) {
	a, b, m := newArena()
	w := b.Net(m, "w", 8, false)
	huge := b.Constant(5, 8, false)
	a.SetInt(huge, schema.FSize, 1<<40)
	ca := b.ContAssign(m, b.RefTo(w), huge)

	sum := b.Op(schema.OpAdd, b.Constant(1, 8, false), b.Constant(2, 8, false))
	sel := b.PartSelect(w, b.Constant(1<<40, 64, false), b.Int(0))
	wide := b.ContAssign(m, b.RefTo(b.Net(m, "x", 8, false)), b.Op(schema.OpConcat, sel, sum))

	Run(context.Background(), a, Options{})
	if a.Ref(ca, schema.FRhs) != huge || !a.Alive(huge) {
		t.Error("oversized constant rewritten")
	}
	if got := a.Kind(a.Ref(wide, schema.FRhs)); got != schema.KindOperation {
		t.Errorf("concat over an oversized select became %s", got)
	}

	if Resize(a, b.Constant(1, 8, false), constval.MaxWidth+1, true) != model.NoObjID {
		t.Error("resized past the width cap")
	}
	if Resize(a, b.Constant(1, 8, false), -1, true) != model.NoObjID {
		t.Error("resized to a negative width")
	}
}

func TestCaseItemsSizedToCondition(t *testing.T) {
	a, b, m := newArena()
	sel := b.Net(m, "sel", 2, false)
	out := b.Net(m, "out", 4, false)
	item := b.CaseItem(b.Assign(b.RefTo(out), b.Int(1), true), b.Int(2), b.Int(7))
	cs := b.Case(b.RefTo(sel), item)
	b.Always(m, schema.AlwaysComb, cs)

	Run(context.Background(), a, Options{})
	exprs := a.Items(a.Coll(item, schema.FExprs))
	if len(exprs) != 2 {
		t.Fatalf("got %d exprs", len(exprs))
	}
	v0, _ := constval.Of(a, exprs[0])
	v1, _ := constval.Of(a, exprs[1])
	wantValue(t, v0, 2, 2, true)
	wantValue(t, v1, 3, 2, true)
	wantValue(t, rhsValue(t, a, a.Ref(item, schema.FStmt)), 1, 4, true)
}

func TestFuncCallFolded(t *testing.T) {
	a, b, m := newArena()
	ret := b.LogicTypespec(m, 4, false)
	fn := b.Function(m, "k", ret, b.Begin(b.Return(b.Op(schema.OpAdd, b.Int(9), b.Int(9)))))
	wide := b.Net(m, "wide", 8, false)
	ca := b.ContAssign(m, b.RefTo(wide), b.Call(fn))

	Run(context.Background(), a, Options{})
	// 18 truncated to the 4-bit return type, then widened to 8 bits
	wantValue(t, rhsValue(t, a, ca), 2, 8, true)
}

func TestCallValueWithoutPriorFolding(t *testing.T) {
	a, b, m := newArena()
	fn := b.Function(m, "f", b.LogicTypespec(m, 4, true), b.Return(b.Op(schema.OpSub, b.Int(1), b.Int(3))))
	ad := &adjuster{a: a}
	v, ok := ad.callValue(b.Call(fn))
	if !ok {
		t.Fatal("call not evaluated")
	}
	wantValue(t, v, -2, 4, false)
}

func TestFuncCallAcrossScopes(t *testing.T) {
	a := model.NewArena(model.Hints{})
	b := model.NewBuilder(a, "order.sv")
	d := b.Design("order")
	pkg := b.Package(d, "p")
	m := b.Module(d, "top", true)
	fn := b.Function(m, "f", b.LogicTypespec(m, 8, false), b.Return(b.Op(schema.OpMult, b.Int(3), b.Int(5))))
	// the function is first reached through the call in the package
	p := b.Parameter(pkg, "P", b.Call(fn))

	Run(context.Background(), a, Options{})
	v, ok := constval.Of(a, a.Ref(p, schema.FExpr))
	if !ok {
		t.Fatalf("parameter value is %s", a.Kind(a.Ref(p, schema.FExpr)))
	}
	wantValue(t, v, 15, 8, true)
}

func TestUnsizedCallReported(t *testing.T) {
	a, b, m := newArena()
	fn := b.Function(m, "v", model.NoObjID, b.Return(b.Int(1)))
	n := b.Net(m, "n", 8, false)
	ca := b.ContAssign(m, b.RefTo(n), b.Call(fn))

	bag := diag.NewBag(10)
	Run(context.Background(), a, Options{Reporter: diag.BagReporter{Bag: bag}})
	if a.Kind(a.Ref(ca, schema.FRhs)) != schema.KindFuncCall {
		t.Error("call without return type folded")
	}
	if bag.Count(diag.AdjUnsizedCall) != 1 {
		t.Errorf("diagnostics: %+v", bag.Items())
	}
}

func TestSysFuncCalls(t *testing.T) {
	a, b, m := newArena()
	n8 := b.Net(m, "n8", 8, false)
	n32 := b.Net(m, "n32", 32, true)
	tests := []struct {
		name     string
		call     model.ObjID
		want     int64
		width    int
		unsigned bool
	}{
		{"clog2", b.SysCall("$clog2", b.Int(16)), 4, 32, false},
		{"clog2 of 17", b.SysCall("$clog2", b.Int(17)), 5, 32, false},
		{"clog2 of 1", b.SysCall("$clog2", b.Int(1)), 0, 32, false},
		{"bits", b.SysCall("$bits", b.RefTo(n8)), 8, 32, false},
		{"signed", b.SysCall("$signed", b.Constant(0xff, 8, false)), -1, 8, false},
		{"unsigned", b.SysCall("$unsigned", b.Int(-1)), 0xffffffff, 32, true},
	}
	assigns := make([]model.ObjID, len(tests))
	for i, tt := range tests {
		assigns[i] = b.ContAssign(m, b.RefTo(n32), tt.call)
	}
	Run(context.Background(), a, Options{NoResize: true})
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantValue(t, rhsValue(t, a, assigns[i]), tt.want, tt.width, tt.unsigned)
		})
	}
}

func TestDivByZeroNotFolded(t *testing.T) {
	a, b, m := newArena()
	n := b.Net(m, "n", 8, false)
	op := b.Op(schema.OpDiv, b.Int(4), b.Op(schema.OpSub, b.Int(1), b.Int(1)))
	ca := b.ContAssign(m, b.RefTo(n), op)

	bag := diag.NewBag(10)
	Run(context.Background(), a, Options{Reporter: diag.BagReporter{Bag: bag}})
	if a.Ref(ca, schema.FRhs) != op || !a.Alive(op) {
		t.Fatal("division by zero folded")
	}
	// the divisor itself was reduced
	divisor := a.At(a.Coll(op, schema.FOperands), 1)
	if a.Kind(divisor) != schema.KindConstant {
		t.Errorf("divisor is %s", a.Kind(divisor))
	}
	if bag.Count(diag.AdjDivByZero) != 1 {
		t.Errorf("diagnostics: %+v", bag.Items())
	}
}

func TestNameResolvedThroughScope(t *testing.T) {
	a, b, m := newArena()
	b.Net(m, "w", 4, false)
	lhs := a.Make(schema.KindRefObj)
	a.SetName(lhs, "w")
	ca := b.ContAssign(m, lhs, b.Int(20))

	Run(context.Background(), a, Options{})
	wantValue(t, rhsValue(t, a, ca), 4, 4, true)
}

func TestPropagatesNestedFold(t *testing.T) {
	a, b, m := newArena()
	n := b.Net(m, "n", 32, true)
	inner := b.Op(schema.OpMult, b.Int(2), b.Int(3))
	outer := b.Op(schema.OpAdd, inner, b.Op(schema.OpMinus, b.Int(1)))
	ca := b.ContAssign(m, b.RefTo(n), outer)

	res := Run(context.Background(), a, Options{})
	wantValue(t, rhsValue(t, a, ca), 5, 32, false)
	if a.Alive(inner) || a.Alive(outer) {
		t.Error("replaced operations still alive")
	}
	if res.Replaced < 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestIdempotent(t *testing.T) {
	builders := map[string]func(*model.Arena){
		"design1":   func(a *model.Arena) { testkit.BuildDesign1(a) },
		"all kinds": func(a *model.Arena) { testkit.BuildAllKinds(a) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			a := model.NewArena(model.Hints{})
			build(a)
			Run(context.Background(), a, Options{})
			once := testkit.Snapshot(a)
			live := a.LiveCount()

			res := Run(context.Background(), a, Options{})
			if res.Replaced != 0 || res.Erased != 0 {
				t.Errorf("second run rewrote: %+v", res)
			}
			if diff := cmp.Diff(once, testkit.Snapshot(a)); diff != "" {
				t.Errorf("second run changed the graph (-once +twice):\n%s", diff)
			}
			if a.LiveCount() != live {
				t.Errorf("live objects %d -> %d", live, a.LiveCount())
			}
			if err := testkit.CheckGraphInvariants(a); err != nil {
				t.Fatal(err)
			}
		})
	}
}
