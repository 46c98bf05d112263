package vpi

import (
	"fmt"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// Relate follows a single-valued relation. It returns nil when the relation
// is unset, unsupported for the kind, or h is stale.
func Relate(rel schema.Rel, h *Handle) *Handle {
	out, _ := LookupRelate(rel, h) //nolint:errcheck // sentinel path
	return out
}

// LookupRelate is Relate reporting the reason of a null result. An unset
// but supported relation returns (nil, nil).
func LookupRelate(rel schema.Rel, h *Handle) (*Handle, error) {
	id, err := Check(h)
	if err != nil {
		return nil, err
	}
	a := h.a
	if rel == schema.RelParent {
		return HandleOf(a, a.Parent(id)), nil
	}
	f, ok := schema.FieldForRel(a.Kind(id), rel)
	if !ok || f.Def().Type != schema.FieldRef {
		return nil, fmt.Errorf("%w: %s has no relation %s", model.ErrLookup, a.Kind(id), rel)
	}
	return HandleOf(a, a.Ref(id, f)), nil
}

// Iterate opens a cursor over a one-to-many relation. It returns nil when
// the relation is empty, unsupported, or h is stale.
func Iterate(rel schema.Rel, h *Handle) *Handle {
	it, _ := LookupIterate(rel, h) //nolint:errcheck // sentinel path
	return it
}

// LookupIterate is Iterate reporting the reason of a null result. An empty
// relation returns (nil, nil).
func LookupIterate(rel schema.Rel, h *Handle) (*Handle, error) {
	id, err := Check(h)
	if err != nil {
		return nil, err
	}
	a := h.a
	f, ok := schema.FieldForRel(a.Kind(id), rel)
	if !ok || f.Def().Type != schema.FieldColl {
		return nil, fmt.Errorf("%w: %s has no collection %s", model.ErrLookup, a.Kind(id), rel)
	}
	c := a.Coll(id, f)
	if a.Len(c) == 0 {
		return nil, nil
	}
	return &Handle{typ: schema.KindIterator, a: a, ref: h.ref, coll: c}, nil
}

// Scan returns the next element of an iterator, or nil when it is
// exhausted. Erased elements are skipped. The cursor only moves forward.
func Scan(it *Handle) *Handle {
	if it == nil || it.typ != schema.KindIterator || it.released {
		return nil
	}
	// the owner must still be the object the cursor was opened on
	if _, err := it.a.Resolve(it.ref); err != nil {
		return nil
	}
	for it.pos < it.a.Len(it.coll) {
		id := it.a.At(it.coll, it.pos)
		it.pos++
		if h := HandleOf(it.a, id); h != nil {
			return h
		}
	}
	return nil
}

// Collect drains an iterator into a slice.
func Collect(it *Handle) []*Handle {
	var out []*Handle
	for h := Scan(it); h != nil; h = Scan(it) {
		out = append(out, h)
	}
	return out
}
