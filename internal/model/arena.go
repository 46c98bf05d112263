package model

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
)

var arenaSeq uint32

// Hints sizes the initial storage of a new arena.
type Hints struct{ Objects, Collections uint }

// store is the swappable content of an arena. Restore builds a fresh store
// and installs it only after validation.
type store struct {
	objs  *slab[Object]
	colls *slab[Collection]
	gens  []uint32
	dead  []bool
	strs  *source.Interner
	roots []ObjID
}

func newStore(h Hints) *store {
	return &store{
		objs:  newSlab[Object](h.Objects),
		colls: newSlab[Collection](h.Collections),
		gens:  make([]uint32, 0, h.Objects),
		dead:  make([]bool, 0, h.Objects),
		strs:  source.NewInterner(),
	}
}

// Arena owns every object and collection of one design session. It is not
// safe for concurrent use; callers serialize access externally.
type Arena struct {
	id      uint32
	epoch   uint32
	session uuid.UUID
	origin  uuid.UUID
	st      *store
}

// NewArena creates an empty arena. Zero hints pick defaults.
func NewArena(h Hints) *Arena {
	if h.Objects == 0 {
		h.Objects = 1 << 8
	}
	if h.Collections == 0 {
		h.Collections = 1 << 7
	}
	s := uuid.New()
	return &Arena{
		id:      atomic.AddUint32(&arenaSeq, 1),
		epoch:   1,
		session: s,
		origin:  s,
		st:      newStore(h),
	}
}

// ID is unique per process.
func (a *Arena) ID() uint32 { return a.id }

// Epoch changes whenever the arena content is replaced wholesale.
func (a *Arena) Epoch() uint32 { return a.epoch }

// Session identifies this arena instance across processes.
func (a *Arena) Session() uuid.UUID { return a.session }

// Origin is the session that produced the current content: the arena's own
// session for a fresh graph, the writer's session after a restore.
func (a *Arena) Origin() uuid.UUID { return a.origin }

// Strings is the interner backing names, locations and string fields.
func (a *Arena) Strings() *source.Interner { return a.st.strs }

func (a *Arena) NumObjects() int { return int(a.st.objs.len()) }

func (a *Arena) NumCollections() int { return int(a.st.colls.len()) }

// Make allocates an object of kind k with default field values. Invalid
// kinds yield NoObjID.
func (a *Arena) Make(k schema.Kind) ObjID {
	if !k.Valid() {
		return NoObjID
	}
	id := ObjID(a.st.objs.allocate(Object{
		Kind:  k,
		Slots: make([]int64, schema.NumSlots(k)),
	}))
	a.st.gens = append(a.st.gens, 1)
	a.st.dead = append(a.st.dead, false)
	return id
}

// MakeCollection allocates an empty collection restricted to g.
func (a *Arena) MakeCollection(g schema.Group) CollID {
	if !g.Valid() {
		return NoCollID
	}
	return CollID(a.st.colls.allocate(Collection{Group: g}))
}

// Get returns the live object for id, or nil.
func (a *Arena) Get(id ObjID) *Object {
	if !a.Alive(id) {
		return nil
	}
	return a.st.objs.get(uint32(id))
}

// Alive reports whether id names an allocated, non-erased object.
func (a *Arena) Alive(id ObjID) bool {
	if id == NoObjID || uint32(id) > a.st.objs.len() {
		return false
	}
	return !a.st.dead[id-1]
}

// Kind returns KindNone for dead or unknown ids.
func (a *Arena) Kind(id ObjID) schema.Kind {
	if o := a.Get(id); o != nil {
		return o.Kind
	}
	return schema.KindNone
}

// Erase marks id dead and bumps its generation so outstanding references
// stop resolving. Storage is reclaimed only by Purge or Restore.
func (a *Arena) Erase(id ObjID) bool {
	if !a.Alive(id) {
		return false
	}
	a.st.dead[id-1] = true
	a.st.gens[id-1]++
	return true
}

// EraseTree erases id and every object it transitively owns, i.e. linked
// objects whose parent chain leads back to id. Shared references are kept.
func (a *Arena) EraseTree(id ObjID) int {
	if !a.Alive(id) {
		return 0
	}
	n := 0
	var rec func(ObjID)
	rec = func(cur ObjID) {
		a.EachLink(cur, func(_ schema.FieldID, _ int, child ObjID) bool {
			if a.Alive(child) && a.st.objs.get(uint32(child)).Parent == cur {
				rec(child)
			}
			return true
		})
		if a.Erase(cur) {
			n++
		}
	}
	rec(id)
	return n
}

// Purge drops every object and collection. References taken before Purge
// become stale.
func (a *Arena) Purge() {
	a.st = newStore(Hints{Objects: 1 << 8, Collections: 1 << 7})
	a.epoch++
	a.origin = a.session
}

// AddRoot records id as a traversal and persistence entry point. An id
// that already is a root is not added again.
func (a *Arena) AddRoot(id ObjID) bool {
	if !a.Alive(id) || slices.Contains(a.st.roots, id) {
		return false
	}
	a.st.roots = append(a.st.roots, id)
	return true
}

// Roots lists the recorded roots in declaration order. READONLY
func (a *Arena) Roots() []ObjID {
	return a.st.roots
}

// AllObjects enumerates every allocated object with its liveness flag. It is
// meant for diagnostics and tests.
func (a *Arena) AllObjects() []ObjectInfo {
	objs := a.st.objs.slice()
	out := make([]ObjectInfo, len(objs))
	for i := range objs {
		out[i] = ObjectInfo{
			ID:    ObjID(i + 1),
			Kind:  objs[i].Kind,
			Alive: !a.st.dead[i],
		}
	}
	return out
}

// LiveCount is the number of allocated, non-erased objects.
func (a *Arena) LiveCount() int {
	n := 0
	for _, d := range a.st.dead {
		if !d {
			n++
		}
	}
	return n
}

// RefOf captures a validated reference to id.
func (a *Arena) RefOf(id ObjID) Ref {
	if !a.Alive(id) {
		return Ref{}
	}
	return Ref{Arena: a.id, Epoch: a.epoch, Index: id, Gen: a.st.gens[id-1]}
}

// Resolve checks r against the current arena state.
func (a *Arena) Resolve(r Ref) (ObjID, error) {
	if r.Arena != a.id {
		return NoObjID, fmt.Errorf("%w: reference belongs to arena %d, not %d", ErrStaleHandle, r.Arena, a.id)
	}
	if r.Epoch != a.epoch {
		return NoObjID, fmt.Errorf("%w: epoch %d, arena is at %d", ErrStaleHandle, r.Epoch, a.epoch)
	}
	if !a.Alive(r.Index) || a.st.gens[r.Index-1] != r.Gen {
		return NoObjID, fmt.Errorf("%w: object %d was erased", ErrStaleHandle, r.Index)
	}
	return r.Index, nil
}
