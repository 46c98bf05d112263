package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
)

// maxStagingErrors caps how many structural problems Validate reports.
const maxStagingErrors = 16

// Staging accumulates a decoded graph outside any arena. It is installed
// only after Validate passes, so a failed restore never touches the target.
type Staging struct {
	st *store
}

// NewStaging prepares an empty graph sized by h.
func NewStaging(h Hints) *Staging {
	return &Staging{st: newStore(h)}
}

// AddString appends the next entry of the string table. Entries must be
// unique and arrive in id order, starting after the implicit empty string.
func (s *Staging) AddString(v string) error {
	want := source.StringID(s.st.strs.Len()) //nolint:gosec // bounded by decoder
	if got := s.st.strs.Intern(v); got != want {
		return fmt.Errorf("%w: duplicate string table entry %q", ErrFormat, v)
	}
	return nil
}

// AddObject appends a decoded object and returns its id.
func (s *Staging) AddObject(o Object) ObjID {
	id := ObjID(s.st.objs.allocate(o))
	s.st.gens = append(s.st.gens, 1)
	s.st.dead = append(s.st.dead, false)
	return id
}

// AddCollection appends a decoded collection and returns its id.
func (s *Staging) AddCollection(c Collection) CollID {
	return CollID(s.st.colls.allocate(c))
}

func (s *Staging) SetRoots(roots []ObjID) {
	s.st.roots = roots
}

// Validate checks every id, kind and group constraint of the staged graph.
func (s *Staging) Validate() error {
	var errs []error
	add := func(err error) bool {
		errs = append(errs, err)
		return len(errs) < maxStagingErrors
	}
	nstr := s.st.strs.Len()
	nobj := s.st.objs.len()
	ncoll := s.st.colls.len()
	strOK := func(id int64) bool { return id >= 0 && id < int64(nstr) }
	kindOf := func(id ObjID) schema.Kind {
		if o := s.st.objs.get(uint32(id)); o != nil {
			return o.Kind
		}
		return schema.KindNone
	}

	objs := s.st.objs.slice()
	for i := range objs {
		id := ObjID(i + 1)
		o := &objs[i]
		if !o.Kind.Valid() {
			if !add(fmt.Errorf("object %d: invalid kind %d", id, o.Kind)) {
				break
			}
			continue
		}
		def := schema.DefOf(o.Kind)
		if len(o.Slots) != len(def.Fields) {
			if !add(fmt.Errorf("object %d (%s): %d slots, want %d", id, o.Kind, len(o.Slots), len(def.Fields))) {
				break
			}
			continue
		}
		if !strOK(int64(o.Name)) || !strOK(int64(o.Text)) || !strOK(int64(o.Loc.File)) {
			if !add(fmt.Errorf("object %d (%s): string id out of range", id, o.Kind)) {
				break
			}
		}
		if uint32(o.Parent) > nobj {
			if !add(fmt.Errorf("object %d (%s): parent %d out of range", id, o.Kind, o.Parent)) {
				break
			}
		}
		for si, f := range def.Fields {
			v := o.Slots[si]
			fd := f.Def()
			var err error
			switch fd.Type {
			case schema.FieldInt:
				if f == schema.FSize && v > schema.MaxWidth {
					err = fmt.Errorf("object %d (%s).%s: %d bits exceeds %d", id, o.Kind, fd.Name, v, schema.MaxWidth)
				}
			case schema.FieldBool:
				if v != 0 && v != 1 {
					err = fmt.Errorf("object %d (%s).%s: bool value %d", id, o.Kind, fd.Name, v)
				}
			case schema.FieldString:
				if !strOK(v) {
					err = fmt.Errorf("object %d (%s).%s: string id %d out of range", id, o.Kind, fd.Name, v)
				}
			case schema.FieldRef:
				switch {
				case v == 0:
				case v < 0 || v > int64(nobj):
					err = fmt.Errorf("object %d (%s).%s: ref %d out of range", id, o.Kind, fd.Name, v)
				case !fd.Group.Contains(kindOf(ObjID(v))):
					err = fmt.Errorf("object %d (%s).%s: %s not in group %s: %w",
						id, o.Kind, fd.Name, kindOf(ObjID(v)), fd.Group, ErrGroupMembership)
				}
			case schema.FieldColl:
				switch {
				case v == 0:
				case v < 0 || v > int64(ncoll):
					err = fmt.Errorf("object %d (%s).%s: collection %d out of range", id, o.Kind, fd.Name, v)
				case s.st.colls.get(uint32(v)).Group != fd.Group:
					err = fmt.Errorf("object %d (%s).%s: collection group %s, want %s",
						id, o.Kind, fd.Name, s.st.colls.get(uint32(v)).Group, fd.Group)
				default:
					s.st.colls.get(uint32(v)).Owner = id
				}
			}
			if err != nil && !add(err) {
				break
			}
		}
		if len(errs) >= maxStagingErrors {
			break
		}
	}

	colls := s.st.colls.slice()
	for i := range colls {
		c := &colls[i]
		if !c.Group.Valid() {
			add(fmt.Errorf("collection %d: invalid group %d", i+1, c.Group))
			continue
		}
		for pos, item := range c.Items {
			if item == NoObjID || uint32(item) > nobj {
				add(fmt.Errorf("collection %d[%d]: object %d out of range", i+1, pos, item))
				continue
			}
			if !c.Group.Contains(kindOf(item)) {
				add(fmt.Errorf("collection %d[%d]: %s not in group %s: %w",
					i+1, pos, kindOf(item), c.Group, ErrGroupMembership))
			}
		}
		if len(errs) >= maxStagingErrors {
			break
		}
	}

	for i, r := range s.st.roots {
		switch {
		case r == NoObjID || uint32(r) > nobj:
			add(fmt.Errorf("root %d: object %d out of range", i, r))
		case slices.Contains(s.st.roots[:i], r):
			add(fmt.Errorf("root %d: object %d listed twice", i, r))
		}
	}

	// ownership is only meaningful once every id resolves
	if len(errs) == 0 {
		for _, err := range s.checkOwnership() {
			if !add(err) {
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrFormat, errors.Join(errs...))
}

// ownedLinks calls fn for every non-cross link of object id.
func (st *store) ownedLinks(id ObjID, fn func(target ObjID)) {
	o := st.objs.get(uint32(id))
	for si, f := range schema.DefOf(o.Kind).Fields {
		fd := f.Def()
		if fd.Cross {
			continue
		}
		switch fd.Type {
		case schema.FieldRef:
			if t := ObjID(o.Slots[si]); t != NoObjID { //nolint:gosec // validated ref
				fn(t)
			}
		case schema.FieldColl:
			if c := st.colls.get(uint32(o.Slots[si])); c != nil { //nolint:gosec // validated coll
				for _, t := range c.Items {
					fn(t)
				}
			}
		}
	}
}

// checkOwnership requires every set parent to hold a non-cross link to its
// child and the non-cross links to be acyclic, so parent chains and
// recursive descents over the graph terminate.
func (s *Staging) checkOwnership() []error {
	var errs []error
	n := s.st.objs.len()
	owned := make(map[[2]ObjID]struct{}, n)
	for i := uint32(1); i <= n; i++ {
		src := ObjID(i)
		s.st.ownedLinks(src, func(t ObjID) { owned[[2]ObjID{src, t}] = struct{}{} })
	}
	objs := s.st.objs.slice()
	for i := range objs {
		id, p := ObjID(i+1), objs[i].Parent
		if p == NoObjID {
			continue
		}
		if _, ok := owned[[2]ObjID{p, id}]; !ok {
			errs = append(errs, fmt.Errorf("object %d (%s): parent %d does not own it", id, objs[i].Kind, p))
			if len(errs) >= maxStagingErrors {
				return errs
			}
		}
	}

	// iterative depth-first search; reaching an object still on the path
	// closes a cycle
	const (
		unseen = iota
		onPath
		done
	)
	state := make([]uint8, n+1)
	type frame struct {
		id      ObjID
		targets []ObjID
	}
	for i := uint32(1); i <= n; i++ {
		if state[i] != unseen {
			continue
		}
		stack := []frame{{id: ObjID(i)}}
		state[i] = onPath
		s.st.ownedLinks(ObjID(i), func(t ObjID) { stack[0].targets = append(stack[0].targets, t) })
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.targets) == 0 {
				state[top.id] = done
				stack = stack[:len(stack)-1]
				continue
			}
			t := top.targets[0]
			top.targets = top.targets[1:]
			switch state[t] {
			case onPath:
				return append(errs, fmt.Errorf("object %d (%s): ownership cycle through object %d",
					top.id, s.st.objs.get(uint32(top.id)).Kind, t))
			case unseen:
				state[t] = onPath
				next := frame{id: t}
				s.st.ownedLinks(t, func(u ObjID) { next.targets = append(next.targets, u) })
				stack = append(stack, next)
			}
		}
	}
	return errs
}

// Install validates s and, on success, replaces the arena content with it.
// On failure the arena is left exactly as it was.
func (a *Arena) Install(s *Staging, origin uuid.UUID) error {
	if err := s.Validate(); err != nil {
		return err
	}
	a.st = s.st
	a.epoch++
	a.origin = origin
	return nil
}
