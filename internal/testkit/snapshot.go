package testkit

import (
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// Node is the identity-free form of one object: links are indices into the
// snapshot, so two arenas holding the same graph produce equal snapshots.
type Node struct {
	Kind    string
	Name    string
	File    string
	Line    uint32
	Col     uint32
	EndLine uint32
	EndCol  uint32
	Parent  int // -1 when unset or not in the snapshot
	Text    string
	Fields  []Field
}

// Field is one kind-specific value. Scalars fill Int or Str, links fill
// Links (a single entry for refs).
type Field struct {
	Name  string
	Int   int64
	Str   string
	Links []int
}

// Snapshot lists every object reachable from the roots in breadth-first
// order, root by root.
func Snapshot(a *model.Arena) []Node {
	order, index := Reachable(a)
	nodes := make([]Node, len(order))
	for i, id := range order {
		o := a.Get(id)
		loc := a.Loc(id)
		text, _ := a.Text(id)
		n := Node{
			Kind:    o.Kind.String(),
			Name:    a.Name(id),
			File:    a.File(id),
			Line:    loc.Line,
			Col:     loc.Col,
			EndLine: loc.EndLine,
			EndCol:  loc.EndCol,
			Parent:  -1,
			Text:    text,
		}
		if p, ok := index[o.Parent]; ok {
			n.Parent = p
		}
		for _, f := range schema.DefOf(o.Kind).Fields {
			fv := Field{Name: f.String()}
			switch f.Def().Type {
			case schema.FieldInt, schema.FieldBool:
				fv.Int, _ = a.Int(id, f)
			case schema.FieldString:
				fv.Str, _ = a.Str(id, f)
			case schema.FieldRef:
				if t := a.Ref(id, f); a.Alive(t) {
					fv.Links = []int{index[t]}
				}
			case schema.FieldColl:
				for _, t := range a.Items(a.Coll(id, f)) {
					if a.Alive(t) {
						fv.Links = append(fv.Links, index[t])
					}
				}
			}
			n.Fields = append(n.Fields, fv)
		}
		nodes[i] = n
	}
	return nodes
}

// Reachable returns the live objects reachable from the roots in
// breadth-first order and their positions in that order.
func Reachable(a *model.Arena) ([]model.ObjID, map[model.ObjID]int) {
	index := make(map[model.ObjID]int)
	var order []model.ObjID
	push := func(id model.ObjID) {
		if _, ok := index[id]; ok || !a.Alive(id) {
			return
		}
		index[id] = len(order)
		order = append(order, id)
	}
	for _, r := range a.Roots() {
		push(r)
	}
	for i := 0; i < len(order); i++ {
		a.EachLink(order[i], func(_ schema.FieldID, _ int, t model.ObjID) bool {
			push(t)
			return true
		})
	}
	return order, index
}
