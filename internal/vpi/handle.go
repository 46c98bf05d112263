package vpi

import (
	"fmt"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// Handle is a weak view of one object or of an iteration cursor. It never
// owns what it points to.
type Handle struct {
	typ      schema.Kind
	a        *model.Arena
	ref      model.Ref
	coll     model.CollID // iterators only
	pos      int          // next element, iterators only
	released bool
}

// Make returns a handle to id, whose kind must be typ. It returns nil when
// id is not a live object of that kind.
func Make(a *model.Arena, typ schema.Kind, id model.ObjID) *Handle {
	if a == nil || !typ.Valid() || a.Kind(id) != typ {
		return nil
	}
	return &Handle{typ: typ, a: a, ref: a.RefOf(id)}
}

// HandleOf is Make with the kind taken from the object.
func HandleOf(a *model.Arena, id model.ObjID) *Handle {
	if a == nil {
		return nil
	}
	return Make(a, a.Kind(id), id)
}

// Release drops the view. The object and the arena are not affected.
func Release(h *Handle) {
	if h != nil {
		h.released = true
	}
}

// Type returns the discriminant, schema.KindIterator for iterators and
// schema.KindNone for nil.
func (h *Handle) Type() schema.Kind {
	if h == nil {
		return schema.KindNone
	}
	return h.typ
}

// Arena returns the arena h was made from.
func (h *Handle) Arena() *model.Arena {
	if h == nil {
		return nil
	}
	return h.a
}

// Check resolves h to its object, reporting stale or released handles.
func Check(h *Handle) (model.ObjID, error) {
	switch {
	case h == nil:
		return model.NoObjID, fmt.Errorf("%w: null handle", model.ErrLookup)
	case h.released:
		return model.NoObjID, fmt.Errorf("%w: handle was released", model.ErrStaleHandle)
	case h.typ == schema.KindIterator:
		return model.NoObjID, fmt.Errorf("%w: iterator handles have no object", model.ErrLookup)
	}
	id, err := h.a.Resolve(h.ref)
	if err != nil {
		return model.NoObjID, err
	}
	return id, nil
}

// ID resolves h and returns model.NoObjID when it no longer does.
func (h *Handle) ID() model.ObjID {
	id, _ := Check(h) //nolint:errcheck // sentinel path
	return id
}

func (h *Handle) String() string {
	if h == nil {
		return "<null>"
	}
	if h.typ == schema.KindIterator {
		return fmt.Sprintf("<iterator coll=%d pos=%d>", h.coll, h.pos)
	}
	return fmt.Sprintf("<%s #%d>", h.typ, h.ref.Index)
}
