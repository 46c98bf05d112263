package walk

import (
	"context"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/trace"
)

// Edge is the link through which the walker reached an object. Root objects
// have no parent; Pos is -1 for single-link fields.
type Edge struct {
	Parent model.ObjID
	Field  schema.FieldID
	Pos    int
}

type frame struct {
	id   model.ObjID
	edge Edge
}

// Walker performs one visited-once traversal. Every object is entered and
// left at most once, even when it is reachable through several links.
// Children are visited in field declaration order, collection elements in
// sequence order.
type Walker struct {
	a       *model.Arena
	l       *Listener
	visited []bool // indexed by ObjID
	count   int
	stack   []frame
	aborted bool
}

func New(a *model.Arena, l *Listener) *Walker {
	if l == nil {
		l = &Listener{}
	}
	return &Walker{a: a, l: l, visited: make([]bool, a.NumObjects()+1)}
}

func (w *Walker) Arena() *model.Arena { return w.a }

// Abort stops the traversal: no new object is entered and the hooks of
// objects still on the stack are not run.
func (w *Walker) Abort() { w.aborted = true }

func (w *Walker) Aborted() bool { return w.aborted }

// Edge is the incoming link of the object whose hook is running.
func (w *Walker) Edge() Edge {
	if len(w.stack) == 0 {
		return Edge{Pos: -1}
	}
	return w.stack[len(w.stack)-1].edge
}

// Stack lists the objects being visited, outermost first; the last entry is
// the current object.
func (w *Walker) Stack() []model.ObjID {
	out := make([]model.ObjID, len(w.stack))
	for i, f := range w.stack {
		out[i] = f.id
	}
	return out
}

// Ancestor returns the nearest enclosing object of one of kinds, or
// model.NoObjID.
func (w *Walker) Ancestor(kinds ...schema.Kind) model.ObjID {
	set := schema.SetOf(kinds...)
	for i := len(w.stack) - 2; i >= 0; i-- {
		if set.Has(w.a.Kind(w.stack[i].id)) {
			return w.stack[i].id
		}
	}
	return model.NoObjID
}

// MarkVisited excludes id from the rest of the traversal. Passes call it on
// objects they splice in.
func (w *Walker) MarkVisited(id model.ObjID) {
	if id == model.NoObjID {
		return
	}
	for int(id) >= len(w.visited) {
		w.visited = append(w.visited, false)
	}
	if !w.visited[id] {
		w.visited[id] = true
		w.count++
	}
}

func (w *Walker) Visited(id model.ObjID) bool {
	return int(id) < len(w.visited) && w.visited[id]
}

// VisitedCount is the number of distinct objects visited so far.
func (w *Walker) VisitedCount() int { return w.count }

// DidVisitAll reports whether every live object of the arena was visited.
func (w *Walker) DidVisitAll() bool {
	for _, info := range w.a.AllObjects() {
		if info.Alive && !w.Visited(info.ID) {
			return false
		}
	}
	return true
}

// Walk traverses the graph below id.
func (w *Walker) Walk(id model.ObjID) {
	w.visit(id, Edge{Pos: -1})
}

// WalkRoots traverses from every recorded root in order under a trace span.
func (w *Walker) WalkRoots(ctx context.Context, name string) {
	_, span := trace.Start(ctx, trace.ScopePass, name)
	for _, r := range w.a.Roots() {
		if w.aborted {
			break
		}
		w.Walk(r)
	}
	span.Count("visited", w.count)
	if w.aborted {
		span.End("aborted")
		return
	}
	span.End("")
}

func (w *Walker) visit(id model.ObjID, edge Edge) {
	if w.aborted || !w.a.Alive(id) || w.Visited(id) {
		return
	}
	w.MarkVisited(id)
	w.stack = append(w.stack, frame{id: id, edge: edge})
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()

	k := w.a.Kind(id)
	if !w.call(w.l.EnterAny, id) || !w.call(w.l.Enter[k], id) {
		return
	}

	// links are re-read on every step: leave hooks of children may replace
	// the child in its slot
	for _, f := range schema.DefOf(k).Fields {
		switch f.Def().Type {
		case schema.FieldRef:
			w.visit(w.a.Ref(id, f), Edge{Parent: id, Field: f, Pos: -1})
		case schema.FieldColl:
			c := w.a.Coll(id, f)
			for pos := 0; pos < w.a.Len(c); pos++ {
				w.visit(w.a.At(c, pos), Edge{Parent: id, Field: f, Pos: pos})
				if w.aborted {
					return
				}
			}
		}
		if w.aborted {
			return
		}
	}

	if w.call(w.l.Leave[k], id) {
		w.call(w.l.LeaveAny, id)
	}
}

// call runs h and reports whether the traversal may continue.
func (w *Walker) call(h Hook, id model.ObjID) bool {
	if h != nil {
		h(w, id)
	}
	return !w.aborted
}
