package lint

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/testkit"
)

// buildFaulty builds a module with at least one violation per check.
func buildFaulty(a *model.Arena) {
	b := model.NewBuilder(a, "bad.sv")
	d := b.Line(1).Design("bad")
	m := b.Line(2).Module(d, "top", true)
	n := b.Line(3).Net(m, "n", 8, false)
	b.Line(4).ContAssign(m, b.RefTo(n), b.Int(1))
	b.Line(5).ContAssign(m, b.RefTo(n), b.Int(2))

	x := b.Line(6).Net(m, "x", 1, false)
	b.Line(7).ContAssign(m, b.RefTo(x), b.BitSelect(n, b.Int(9)))

	b.Line(8).Function(m, "f", b.LogicTypespec(m, 4, false), b.Begin())

	ts := b.Line(9).LogicTypespec(m, 8, false)
	b.Struct(m, "s", true, b.Member("a", ts, model.NoObjID), b.Member("a", ts, b.Int(0)))

	p := b.Line(10).Parameter(m, "P", b.Int(1))
	b.Line(11).Always(m, schema.AlwaysComb, b.Begin(
		b.Assign(b.Int(3), b.Int(4), true),
		b.Assign(b.RefTo(p), b.Int(2), true),
	))

	neg := b.Line(12).Net(m, "neg", 1, false)
	a.AppendChild(a.Ref(neg, schema.FTypespec), schema.FRanges, b.Range(-1, 0))
	dyn := b.Line(13).Net(m, "dyn", 1, false)
	r := a.Make(schema.KindRange)
	a.SetChild(r, schema.FLeftRange, b.RefTo(n))
	a.SetChild(r, schema.FRightRange, b.Int(0))
	a.AppendChild(a.Ref(dyn, schema.FTypespec), schema.FRanges, r)

	ts2 := b.Line(14).LogicTypespec(m, 2, false)
	b.Enum(m, "e", ts2, b.EnumConst("A", 0, 2), b.EnumConst("B", 0, 2), b.EnumConst("C", 5, 2))

	b.Line(15).Assert(m, "chk", model.NoObjID, model.NoObjID)

	y := b.Line(16).Net(m, "y", 32, false)
	z := b.Line(17).Net(m, "z", 32, false)
	b.ContAssign(m, b.RefTo(y), b.SysCall("$clog2"))
	b.ContAssign(m, b.RefTo(z), b.SysCall("$bogus", b.Int(1)))

	b.Line(18).Port(m, "p", schema.DirNone, model.NoObjID)
}

func run(t *testing.T, a *model.Arena, opts Options) (*diag.Bag, Result) {
	t.Helper()
	bag := diag.NewBag(100)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res := Run(context.Background(), a, opts)
	return bag, res
}

func counts(bag *diag.Bag) map[diag.Code]int {
	out := make(map[diag.Code]int)
	for _, d := range bag.Items() {
		out[d.Code]++
	}
	return out
}

func TestDesign1IsClean(t *testing.T) {
	a := model.NewArena(model.Hints{})
	testkit.BuildDesign1(a)
	bag, res := run(t, a, Options{})
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics:\n%s", diag.FormatShort(bag.Items(), a.Strings(), true))
	}
	if !res.Complete || res.Visited == 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestFaultyDesign(t *testing.T) {
	a := model.NewArena(model.Hints{})
	buildFaulty(a)
	bag, _ := run(t, a, Options{})

	want := map[diag.Code]int{
		diag.LintMultipleDrivers:     1,
		diag.LintSelectOutOfRange:    1,
		diag.LintMissingReturn:       1,
		diag.LintStructMember:        2,
		diag.LintNotAssignable:       2,
		diag.LintNetRange:            2,
		diag.LintEnumValue:           2,
		diag.LintMissingPropertyExpr: 1,
		diag.LintSysFuncCall:         2,
		diag.LintPort:                2,
	}
	if diff := cmp.Diff(want, counts(bag)); diff != "" {
		t.Errorf("diagnostic counts (-want +got):\n%s\n%s", diff, diag.FormatShort(bag.Items(), a.Strings(), false))
	}
}

func TestMultipleDriversNotes(t *testing.T) {
	a := model.NewArena(model.Hints{})
	buildFaulty(a)
	bag, _ := run(t, a, Options{})
	for _, d := range bag.Items() {
		if d.Code != diag.LintMultipleDrivers {
			continue
		}
		if d.Severity != diag.SevError || d.Message != "net n has 2 continuous drivers" {
			t.Errorf("got %s %q", d.Severity, d.Message)
		}
		var lines []uint32
		for _, n := range d.Notes {
			lines = append(lines, n.Loc.Line)
		}
		if diff := cmp.Diff([]uint32{4, 5}, lines); diff != "" {
			t.Errorf("note lines (-want +got):\n%s", diff)
		}
		if a.Name(model.ObjID(d.Object)) != "n" {
			t.Errorf("object = %d", d.Object)
		}
		return
	}
	t.Fatal("no multiple-driver diagnostic")
}

func TestLintDoesNotMutate(t *testing.T) {
	a := model.NewArena(model.Hints{})
	buildFaulty(a)
	before := testkit.Snapshot(a)
	run(t, a, Options{})
	if diff := cmp.Diff(before, testkit.Snapshot(a)); diff != "" {
		t.Errorf("lint changed the graph (-before +after):\n%s", diff)
	}
}

func TestOptions(t *testing.T) {
	a := model.NewArena(model.Hints{})
	buildFaulty(a)

	bag, _ := run(t, a, Options{Disabled: map[diag.Code]bool{diag.LintPort: true}})
	if n := bag.Count(diag.LintPort); n != 0 {
		t.Errorf("disabled code reported %d times", n)
	}

	bag, _ = run(t, a, Options{WarningsAsErrors: true})
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			t.Errorf("warning left with WarningsAsErrors: %s", d.Message)
		}
	}
	if bag.Count(diag.LintSelectOutOfRange) != 1 {
		t.Error("promoted diagnostic missing")
	}
}

func TestArityText(t *testing.T) {
	tests := []struct {
		lo, hi int
		want   string
	}{
		{1, 1, "1 argument"},
		{0, 0, "0 arguments"},
		{1, 2, "1 to 2 arguments"},
		{0, -1, "at least 0 arguments"},
	}
	for _, tt := range tests {
		if got := arityText(tt.lo, tt.hi); got != tt.want {
			t.Errorf("arityText(%d, %d) = %q, want %q", tt.lo, tt.hi, got, tt.want)
		}
	}
}
