package testkit

import (
	"testing"

	"hdlgraph/internal/model"
)

func TestDesign1Invariants(t *testing.T) {
	a := model.NewArena(model.Hints{})
	d := BuildDesign1(a)
	if err := CheckGraphInvariants(a); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	snap := Snapshot(a)
	if len(snap) == 0 || snap[0].Kind != "design" || snap[0].Name != "design1" {
		t.Fatalf("unexpected first node: %+v", snap[0])
	}
	_, index := Reachable(a)
	if _, ok := index[d.M3]; !ok {
		t.Error("M3 not reachable")
	}
}

func TestParentInvariantDetectsForeignParent(t *testing.T) {
	a := model.NewArena(model.Hints{})
	d := BuildDesign1(a)
	// M2 does not own M3
	a.SetParent(d.M3, d.M2)
	if err := CheckGraphInvariants(a); err == nil {
		t.Fatal("expected a parent invariant error")
	}
}
