package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"hdlgraph/internal/schema"
)

func TestMakeDefaults(t *testing.T) {
	a := NewArena(Hints{})
	id := a.Make(schema.KindConstant)
	if !id.IsValid() {
		t.Fatal("Make returned NoObjID")
	}
	if got := a.Kind(id); got != schema.KindConstant {
		t.Errorf("Kind = %s, want constant", got)
	}
	if v, ok := a.Int(id, schema.FSize); !ok || v != 0 {
		t.Errorf("default size = %d, %v", v, ok)
	}
	if s, ok := a.Str(id, schema.FValue); !ok || s != "" {
		t.Errorf("default value = %q, %v", s, ok)
	}
	if a.Parent(id) != NoObjID {
		t.Error("new object should have no parent")
	}
	if a.Make(schema.KindNone) != NoObjID || a.Make(schema.KindIterator) != NoObjID {
		t.Error("non-allocatable kinds must yield NoObjID")
	}
}

func TestFieldAccessRejectsForeignFields(t *testing.T) {
	a := NewArena(Hints{})
	c := a.Make(schema.KindConstant)
	if a.SetInt(c, schema.FOpType, 3) {
		t.Error("constant accepted op_type")
	}
	if _, ok := a.Int(c, schema.FOpType); ok {
		t.Error("constant reported op_type")
	}
	if a.SetInt(c, schema.FValue, 1) {
		t.Error("SetInt accepted a string field")
	}
	if a.Coll(c, schema.FOperands) != NoCollID {
		t.Error("constant reported operands")
	}
}

func TestCollectionGroupInvariant(t *testing.T) {
	a := NewArena(Hints{})
	op := a.Make(schema.KindOperation)
	c := a.EnsureColl(op, schema.FOperands)
	k1 := a.Make(schema.KindConstant)
	k2 := a.Make(schema.KindConstant)
	mod := a.Make(schema.KindModule)

	if !a.Append(c, k1) {
		t.Fatal("Append(constant) failed")
	}
	if a.Append(c, mod) {
		t.Fatal("Append(module) into exprs succeeded")
	}
	if a.Len(c) != 1 {
		t.Fatalf("Len = %d after rejected insert, want 1", a.Len(c))
	}
	if got := a.At(c, 1); got != NoObjID {
		t.Errorf("At(1) = %d, want NoObjID", got)
	}
	if got := a.At(c, 0); got != k1 {
		t.Errorf("existing element corrupted: At(0) = %d", got)
	}
	if a.SetAt(c, 0, mod) {
		t.Error("SetAt(module) into exprs succeeded")
	}
	if !a.Append(c, k2) || a.Len(c) != 2 {
		t.Error("valid append after rejection failed")
	}
}

func TestSetRefGroupCheck(t *testing.T) {
	a := NewArena(Hints{})
	ca := a.Make(schema.KindContAssign)
	net := a.Make(schema.KindNet)
	k := a.Make(schema.KindConstant)
	if a.SetRef(ca, schema.FRhs, net) {
		t.Error("rhs accepted a net")
	}
	if a.Ref(ca, schema.FRhs) != NoObjID {
		t.Error("rejected ref was stored")
	}
	if !a.SetChild(ca, schema.FRhs, k) {
		t.Fatal("rhs rejected a constant")
	}
	if a.Parent(k) != ca {
		t.Error("SetChild did not adopt")
	}
}

func TestSetCollRequiresMatchingGroup(t *testing.T) {
	a := NewArena(Hints{})
	m := a.Make(schema.KindModule)
	exprs := a.MakeCollection(schema.GroupExpr)
	if a.SetColl(m, schema.FNets, exprs) {
		t.Error("nets accepted an expr collection")
	}
	nets := a.MakeCollection(schema.GroupNet)
	if !a.SetColl(m, schema.FNets, nets) {
		t.Fatal("nets rejected a net collection")
	}
	if a.Collection(nets).Owner != m {
		t.Error("collection owner not recorded")
	}
}

func TestEraseInvalidatesRefs(t *testing.T) {
	a := NewArena(Hints{})
	id := a.Make(schema.KindNet)
	r := a.RefOf(id)
	if got, err := a.Resolve(r); err != nil || got != id {
		t.Fatalf("Resolve = %d, %v", got, err)
	}
	if !a.Erase(id) {
		t.Fatal("Erase failed")
	}
	if _, err := a.Resolve(r); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Resolve after erase: %v", err)
	}
	if a.Erase(id) {
		t.Error("double erase succeeded")
	}
	other := NewArena(Hints{})
	if _, err := other.Resolve(a.RefOf(a.Make(schema.KindNet))); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("cross-arena resolve: %v", err)
	}
}

func TestPurgeBumpsEpoch(t *testing.T) {
	a := NewArena(Hints{})
	id := a.Make(schema.KindModule)
	a.AddRoot(id)
	r := a.RefOf(id)
	a.Purge()
	if a.NumObjects() != 0 || len(a.Roots()) != 0 {
		t.Error("Purge left content behind")
	}
	if _, err := a.Resolve(r); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Resolve after purge: %v", err)
	}
}

func TestAllObjectsReportsLiveness(t *testing.T) {
	a := NewArena(Hints{})
	x := a.Make(schema.KindNet)
	y := a.Make(schema.KindNet)
	a.Erase(x)
	all := a.AllObjects()
	if len(all) != 2 {
		t.Fatalf("AllObjects len = %d", len(all))
	}
	if all[0].ID != x || all[0].Alive {
		t.Errorf("entry 0 = %+v", all[0])
	}
	if all[1].ID != y || !all[1].Alive || all[1].Kind != schema.KindNet {
		t.Errorf("entry 1 = %+v", all[1])
	}
	if a.LiveCount() != 1 {
		t.Errorf("LiveCount = %d", a.LiveCount())
	}
}

func TestEraseTreeKeepsSharedObjects(t *testing.T) {
	a := NewArena(Hints{})
	b := NewBuilder(a, "t.sv")
	d := b.Design("d")
	m := b.Module(d, "m", true)
	n := b.Net(m, "n", 4, false)
	ref := b.RefTo(n)
	op := b.Op(schema.OpAdd, ref, b.Int(1))
	erased := a.EraseTree(op)
	if erased != 3 {
		t.Errorf("EraseTree erased %d, want 3", erased)
	}
	if !a.Alive(n) {
		t.Error("shared net was erased")
	}
	if a.Alive(ref) {
		t.Error("owned ref survived")
	}
}

func TestReplaceLinkInCollection(t *testing.T) {
	a := NewArena(Hints{})
	b := NewBuilder(a, "t.sv")
	x, y := b.Int(1), b.Int(2)
	op := b.Op(schema.OpAdd, x, y)
	a.SetText(op, "1 + 2")
	z := b.Int(3)
	if !a.ReplaceLink(op, schema.FOperands, 1, z) {
		t.Fatal("ReplaceLink failed")
	}
	if got := a.At(a.Coll(op, schema.FOperands), 1); got != z {
		t.Errorf("operand 1 = %d, want %d", got, z)
	}
	if a.Parent(z) != op {
		t.Error("replacement not adopted")
	}
	if _, ok := a.Text(op); ok {
		t.Error("cached text survived a splice")
	}
}

func TestStagingRejectsBadGraph(t *testing.T) {
	a := NewArena(Hints{})
	keep := a.Make(schema.KindModule)
	a.AddRoot(keep)
	epoch := a.Epoch()

	st := NewStaging(Hints{})
	ca := st.AddObject(Object{Kind: schema.KindContAssign, Slots: []int64{2, 0}})
	st.AddObject(Object{Kind: schema.KindModule, Slots: make([]int64, schema.NumSlots(schema.KindModule))})
	st.SetRoots([]ObjID{ca})

	err := a.Install(st, uuid.New())
	if !errors.Is(err, ErrFormat) || !errors.Is(err, ErrGroupMembership) {
		t.Fatalf("Install err = %v", err)
	}
	if a.Epoch() != epoch || len(a.Roots()) != 1 || a.Roots()[0] != keep {
		t.Error("failed install changed the arena")
	}
}

func TestStagingRejectsDuplicateStrings(t *testing.T) {
	st := NewStaging(Hints{})
	if err := st.AddString("a"); err != nil {
		t.Fatal(err)
	}
	if err := st.AddString("a"); !errors.Is(err, ErrFormat) {
		t.Errorf("duplicate string err = %v", err)
	}
}

func TestBuilderHierarchy(t *testing.T) {
	a := NewArena(Hints{})
	b := NewBuilder(a, "top.sv").Line(1)
	d := b.Design("design1")
	m1 := b.Module(d, "M1", true)
	m2 := b.ChildModule(m1, "M2")
	if a.Parent(m1) != d || a.Parent(m2) != m1 {
		t.Error("parents not wired")
	}
	if !a.Bool(m1, schema.FTopModule) || a.Bool(m2, schema.FTopModule) {
		t.Error("top flags wrong")
	}
	tops := a.Coll(d, schema.FTopModules)
	if a.Len(tops) != 1 || a.At(tops, 0) != m1 {
		t.Error("top module list wrong")
	}
	if got := a.File(m2); got != "top.sv" {
		t.Errorf("File = %q", got)
	}
}

func TestSetParentRefusesCycles(t *testing.T) {
	a := NewArena(Hints{})
	b := NewBuilder(a, "top.sv")
	d := b.Design("design1")
	m1 := b.Module(d, "M1", true)
	m2 := b.ChildModule(m1, "M2")

	if a.SetParent(m1, m1) {
		t.Error("object became its own parent")
	}
	if a.SetParent(m1, m2) {
		t.Error("object became the parent of its ancestor")
	}
	if a.Parent(m1) != d {
		t.Errorf("Parent(M1) = %d, want %d", a.Parent(m1), d)
	}
	if !a.SetParent(m2, d) || a.Parent(m2) != d {
		t.Error("moving M2 under the design was refused")
	}
}

func TestAddRootOnce(t *testing.T) {
	a := NewArena(Hints{})
	d := NewBuilder(a, "top.sv").Design("design1")
	a.AddRoot(d)
	if a.AddRoot(d) {
		t.Error("AddRoot accepted an existing root")
	}
	if got := a.Roots(); len(got) != 1 || got[0] != d {
		t.Errorf("Roots = %v, want [%d]", got, d)
	}
}

func stagedModule(parent ObjID, modules CollID) Object {
	slots := make([]int64, schema.NumSlots(schema.KindModule))
	slots[len(slots)-1] = int64(modules) // FModules is the last field
	return Object{Kind: schema.KindModule, Parent: parent, Slots: slots}
}

func TestStagingRejectsBrokenOwnership(t *testing.T) {
	tests := []struct {
		name  string
		build func(st *Staging)
	}{
		{"parent without link", func(st *Staging) {
			st.AddObject(stagedModule(NoObjID, NoCollID))
			st.AddObject(stagedModule(1, NoCollID))
		}},
		{"self parent", func(st *Staging) {
			c := st.AddCollection(Collection{Group: schema.GroupModule, Items: []ObjID{1}})
			st.AddObject(stagedModule(1, c))
		}},
		{"owned collection lists its owner", func(st *Staging) {
			c := st.AddCollection(Collection{Group: schema.GroupExpr, Items: []ObjID{1}})
			st.AddObject(Object{Kind: schema.KindOperation, Slots: []int64{schema.OpConcat, int64(c)}})
		}},
		{"two module cycle", func(st *Staging) {
			c1 := st.AddCollection(Collection{Group: schema.GroupModule, Items: []ObjID{2}})
			c2 := st.AddCollection(Collection{Group: schema.GroupModule, Items: []ObjID{1}})
			st.AddObject(stagedModule(2, c1))
			st.AddObject(stagedModule(1, c2))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStaging(Hints{})
			tt.build(st)
			st.SetRoots([]ObjID{1})
			if err := st.Validate(); !errors.Is(err, ErrFormat) {
				t.Errorf("Validate err = %v, want ErrFormat", err)
			}
		})
	}
}

func TestStagingAcceptsCrossLinkCycle(t *testing.T) {
	// f calls itself: the call reaches f only through its cross link
	st := NewStaging(Hints{})
	args := st.AddCollection(Collection{Group: schema.GroupExpr})
	st.AddObject(Object{Kind: schema.KindFunction, Slots: []int64{0, 0, 0, 2}})
	st.AddObject(Object{Kind: schema.KindReturn, Parent: 1, Slots: []int64{3}})
	st.AddObject(Object{Kind: schema.KindFuncCall, Parent: 2, Slots: []int64{1, int64(args)}})
	st.SetRoots([]ObjID{1})
	if err := st.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
