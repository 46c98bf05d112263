package model

import (
	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
)

type (
	// ObjID addresses an object inside one arena (1-based).
	ObjID uint32
	// CollID addresses a collection inside one arena (1-based).
	CollID uint32
)

const (
	NoObjID  ObjID  = 0
	NoCollID CollID = 0
)

func (id ObjID) IsValid() bool  { return id != NoObjID }
func (id CollID) IsValid() bool { return id != NoCollID }

// Object is the tagged variant every graph node is stored as: the common
// header plus one slot per kind-specific field, laid out as in schema.DefOf.
// Slot encoding: ints and bools as-is, strings as interned ids, refs as
// ObjID, collections as CollID.
type Object struct {
	Kind   schema.Kind
	Name   source.StringID
	Loc    source.Loc
	Parent ObjID
	Text   source.StringID
	Slots  []int64
}

// Collection is an ordered, owned sequence of object ids restricted to a
// group.
type Collection struct {
	Group schema.Group
	Owner ObjID
	Items []ObjID
}

// ObjectInfo is one entry of Arena.AllObjects.
type ObjectInfo struct {
	ID    ObjID
	Kind  schema.Kind
	Alive bool
}

// Ref is a validated external reference: arena identity, epoch and
// generation must all match for it to resolve.
type Ref struct {
	Arena uint32
	Epoch uint32
	Index ObjID
	Gen   uint32
}

func (r Ref) IsZero() bool { return r == Ref{} }
