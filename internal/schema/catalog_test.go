package schema

import (
	"testing"
)

func TestCatalogLinkFieldsAreComplete(t *testing.T) {
	seenRel := make(map[Rel]FieldID)
	for f := FNone + 1; f < numFields; f++ {
		fd := f.Def()
		if fd.ID != f {
			t.Errorf("field %d: ID = %d", f, fd.ID)
		}
		if fd.Name == "" {
			t.Errorf("field %d has no name", f)
		}
		if fd.Cross && fd.Type != FieldRef {
			t.Errorf("cross field %s is not a single link", fd.Name)
		}
		if !fd.Type.IsLink() {
			if fd.Rel != RelNone || fd.Group != GroupNone {
				t.Errorf("scalar field %s carries link metadata", fd.Name)
			}
			continue
		}
		if !fd.Group.Valid() {
			t.Errorf("link field %s has invalid group", fd.Name)
		}
		if !fd.Rel.Valid() {
			t.Errorf("link field %s has invalid relation", fd.Name)
		}
		if prev, dup := seenRel[fd.Rel]; dup {
			t.Errorf("relation %d shared by %s and %s", fd.Rel, prev, f)
		}
		seenRel[fd.Rel] = f
	}
}

func TestCatalogSlotsMatchDefs(t *testing.T) {
	for _, k := range Kinds() {
		def := DefOf(k)
		if def.Kind != k || def.Name != k.String() {
			t.Errorf("def for %s is mislabeled: %+v", k, def)
		}
		for i, f := range def.Fields {
			slot, ok := Slot(k, f)
			if !ok || slot != i {
				t.Errorf("%s.%s: slot = %d, %v; want %d", k, f, slot, ok, i)
			}
		}
		if NumSlots(k) != len(def.Fields) {
			t.Errorf("%s: NumSlots mismatch", k)
		}
	}
	if _, ok := Slot(KindConstant, FOperands); ok {
		t.Error("constant should not carry operands")
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if KindIterator.Valid() {
		t.Error("iterator discriminant must not be allocatable")
	}
	if KindNone.Valid() {
		t.Error("KindNone must not be allocatable")
	}
}

func TestGroupMembership(t *testing.T) {
	tests := []struct {
		group Group
		kind  Kind
		want  bool
	}{
		{GroupExpr, KindConstant, true},
		{GroupExpr, KindModule, false},
		{GroupModule, KindModule, true},
		{GroupProcess, KindAlways, true},
		{GroupProcess, KindAssignment, false},
		{GroupLhs, KindParameter, true},
		{GroupStmt, KindFuncCall, true},
		{GroupAny, KindEnumConst, true},
		{GroupAny, KindIterator, false},
		{GroupNone, KindModule, false},
	}
	for _, tt := range tests {
		if got := tt.group.Contains(tt.kind); got != tt.want {
			t.Errorf("%s.Contains(%s) = %v, want %v", tt.group, tt.kind, got, tt.want)
		}
	}
}

func TestRelLookup(t *testing.T) {
	f, ok := FieldForRel(KindOperation, RelOperands)
	if !ok || f != FOperands {
		t.Fatalf("FieldForRel(operation, operands) = %v, %v", f, ok)
	}
	if _, ok := FieldForRel(KindConstant, RelOperands); ok {
		t.Error("constant has no operands relation")
	}
	r, ok := ParseRel("cont_assigns")
	if !ok || r != RelContAssigns {
		t.Errorf("ParseRel(cont_assigns) = %v, %v", r, ok)
	}
	if r.String() != "cont_assigns" {
		t.Errorf("RelContAssigns.String() = %q", r.String())
	}
	if p, ok := FieldForProp(KindModule, PropTopModule); !ok || p != FTopModule {
		t.Errorf("FieldForProp(module, top_module) = %v, %v", p, ok)
	}
}
