package walk

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/testkit"
)

func TestWalkVisitsEachReachableObjectOnce(t *testing.T) {
	a := model.NewArena(model.Hints{})
	testkit.BuildAllKinds(a)
	order, _ := testkit.Reachable(a)

	enters := map[model.ObjID]int{}
	leaves := map[model.ObjID]int{}
	l := Listener{
		EnterAny: func(_ *Walker, id model.ObjID) { enters[id]++ },
		LeaveAny: func(_ *Walker, id model.ObjID) { leaves[id]++ },
	}
	w := New(a, &l)
	w.WalkRoots(context.Background(), "test")

	if w.VisitedCount() != len(order) {
		t.Errorf("VisitedCount = %d, want %d", w.VisitedCount(), len(order))
	}
	if len(enters) != len(order) || len(leaves) != len(order) {
		t.Errorf("entered %d, left %d, want %d", len(enters), len(leaves), len(order))
	}
	for id, n := range enters {
		if n != 1 || leaves[id] != 1 {
			t.Errorf("object %d (%s): entered %d, left %d", id, a.Kind(id), n, leaves[id])
		}
	}
	if !w.DidVisitAll() {
		t.Error("DidVisitAll = false on a fully reachable graph")
	}
}

func TestDidVisitAllDetectsOrphans(t *testing.T) {
	a := model.NewArena(model.Hints{})
	testkit.BuildDesign1(a)
	a.Make(schema.KindConstant)
	w := New(a, nil)
	w.WalkRoots(context.Background(), "test")
	if w.DidVisitAll() {
		t.Error("DidVisitAll = true with an unreachable object")
	}
}

func TestEnterLeaveOrder(t *testing.T) {
	a := model.NewArena(model.Hints{})
	b := model.NewBuilder(a, "t.sv")
	d := b.Design("d")
	m1 := b.Module(d, "M1", true)
	b.ChildModule(m1, "M2")
	b.ChildModule(m1, "M3")

	var events []string
	var l Listener
	l.OnEnter(func(w *Walker, id model.ObjID) { events = append(events, "+"+a.Name(id)) },
		schema.KindDesign, schema.KindModule)
	l.OnLeave(func(w *Walker, id model.ObjID) { events = append(events, "-"+a.Name(id)) },
		schema.KindDesign, schema.KindModule)
	New(a, &l).Walk(d)

	want := []string{"+d", "+M1", "+M2", "-M2", "+M3", "-M3", "-M1", "-d"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("event order (-want +got):\n%s", diff)
	}
}

func TestEdgeAndAncestor(t *testing.T) {
	a := model.NewArena(model.Hints{})
	d := testkit.BuildDesign1(a)
	op := a.Ref(d.Sum, schema.FRhs)

	var l Listener
	var gotEdge Edge
	var gotModule model.ObjID
	l.OnEnter(func(w *Walker, id model.ObjID) {
		if id == op {
			gotEdge = w.Edge()
			gotModule = w.Ancestor(schema.KindModule)
		}
	}, schema.KindOperation)
	New(a, &l).Walk(d.Design)

	if want := (Edge{Parent: d.Sum, Field: schema.FRhs, Pos: -1}); gotEdge != want {
		t.Errorf("Edge = %+v, want %+v", gotEdge, want)
	}
	if gotModule != d.M1 {
		t.Errorf("Ancestor = %d, want M1 (%d)", gotModule, d.M1)
	}
}

func TestAbortStopsTraversal(t *testing.T) {
	a := model.NewArena(model.Hints{})
	d := testkit.BuildDesign1(a)

	var entered, left []model.ObjID
	var l Listener
	l.EnterAny = func(w *Walker, id model.ObjID) {
		entered = append(entered, id)
		if id == d.M2 {
			w.Abort()
		}
	}
	l.LeaveAny = func(_ *Walker, id model.ObjID) { left = append(left, id) }
	w := New(a, &l)
	w.WalkRoots(context.Background(), "test")

	if !w.Aborted() {
		t.Fatal("walker not aborted")
	}
	if last := entered[len(entered)-1]; last != d.M2 {
		t.Errorf("entered %d after abort", last)
	}
	for _, id := range entered {
		if id == d.M3 {
			t.Error("M3 entered after abort")
		}
	}
	for _, id := range left {
		if id == d.M2 || id == d.M1 {
			t.Errorf("leave hook ran for %s after abort", a.Name(id))
		}
	}
}
