package testkit

import (
	"fmt"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// CheckGraphInvariants runs the structural invariants of an arena:
// 1) every live object carries the slot layout of its kind
// 2) every collection holds only live objects of its group
// 3) a set parent transitively owns the child (the child is reachable from it)
// 4) every root is alive
func CheckGraphInvariants(a *model.Arena) error {
	if a == nil {
		return fmt.Errorf("nil arena")
	}
	for _, info := range a.AllObjects() {
		if !info.Alive {
			continue
		}
		o := a.Get(info.ID)
		if n := schema.NumSlots(o.Kind); len(o.Slots) != n {
			return fmt.Errorf("object %d (%s): %d slots, want %d", info.ID, o.Kind, len(o.Slots), n)
		}

		// 2) collections of this object
		var err error
		for _, f := range schema.DefOf(o.Kind).Fields {
			if f.Def().Type != schema.FieldColl {
				continue
			}
			c := a.Coll(info.ID, f)
			if c == model.NoCollID {
				continue
			}
			col := a.Collection(c)
			if col.Group != f.Def().Group {
				return fmt.Errorf("object %d (%s).%s: collection group %s", info.ID, o.Kind, f, col.Group)
			}
			for pos, item := range col.Items {
				if !col.Group.Contains(a.Kind(item)) {
					err = fmt.Errorf("object %d (%s).%s[%d]: %s not in %s", info.ID, o.Kind, f, pos, a.Kind(item), col.Group)
					break
				}
			}
			if err != nil {
				return err
			}
		}

		// 3) parent owns child
		if p := o.Parent; p != model.NoObjID {
			if !a.Alive(p) {
				return fmt.Errorf("object %d (%s): parent %d is not alive", info.ID, o.Kind, p)
			}
			if !reaches(a, p, info.ID) {
				return fmt.Errorf("object %d (%s): parent %d (%s) does not reach it", info.ID, o.Kind, p, a.Kind(p))
			}
		}
	}

	// 4) roots
	for i, r := range a.Roots() {
		if !a.Alive(r) {
			return fmt.Errorf("root %d (object %d) is not alive", i, r)
		}
	}
	return nil
}

func reaches(a *model.Arena, from, to model.ObjID) bool {
	seen := map[model.ObjID]bool{from: true}
	stack := []model.ObjID{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		found := false
		a.EachLink(cur, func(_ schema.FieldID, _ int, t model.ObjID) bool {
			if t == to {
				found = true
				return false
			}
			if !seen[t] {
				seen[t] = true
				stack = append(stack, t)
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}
