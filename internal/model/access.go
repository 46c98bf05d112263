package model

import (
	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
)

func (a *Arena) Name(id ObjID) string {
	o := a.Get(id)
	if o == nil {
		return ""
	}
	s, _ := a.st.strs.Lookup(o.Name)
	return s
}

func (a *Arena) SetName(id ObjID, name string) bool {
	o := a.Get(id)
	if o == nil {
		return false
	}
	o.Name = a.st.strs.Intern(name)
	return true
}

// MakeLoc interns file and builds a location in this arena.
func (a *Arena) MakeLoc(file string, line, col, endLine, endCol uint32) source.Loc {
	return source.Loc{
		File:    a.st.strs.Intern(file),
		Line:    line,
		Col:     col,
		EndLine: endLine,
		EndCol:  endCol,
	}
}

func (a *Arena) Loc(id ObjID) source.Loc {
	if o := a.Get(id); o != nil {
		return o.Loc
	}
	return source.NoLoc
}

func (a *Arena) SetLoc(id ObjID, loc source.Loc) bool {
	o := a.Get(id)
	if o == nil || !a.st.strs.Has(loc.File) {
		return false
	}
	o.Loc = loc
	return true
}

// File resolves the file name of id's location.
func (a *Arena) File(id ObjID) string {
	s, _ := a.st.strs.Lookup(a.Loc(id).File)
	return s
}

func (a *Arena) Parent(id ObjID) ObjID {
	if o := a.Get(id); o != nil {
		return o.Parent
	}
	return NoObjID
}

// SetParent records parent as the owner of id. A parent that is id itself
// or one of its descendants is refused, keeping parent chains finite.
func (a *Arena) SetParent(id, parent ObjID) bool {
	o := a.Get(id)
	if o == nil || (parent != NoObjID && !a.Alive(parent)) {
		return false
	}
	for cur := parent; cur != NoObjID; cur = a.Parent(cur) {
		if cur == id {
			return false
		}
	}
	o.Parent = parent
	return true
}

// Text returns the cached rendering of id, if any.
func (a *Arena) Text(id ObjID) (string, bool) {
	o := a.Get(id)
	if o == nil || o.Text == source.NoStringID {
		return "", false
	}
	return a.st.strs.Lookup(o.Text)
}

func (a *Arena) SetText(id ObjID, text string) {
	if o := a.Get(id); o != nil {
		o.Text = a.st.strs.Intern(text)
	}
}

// ClearText drops the cached rendering of id and of its ancestors, whose
// renderings may embed it.
func (a *Arena) ClearText(id ObjID) {
	for cur := id; cur != NoObjID; {
		o := a.Get(cur)
		if o == nil {
			return
		}
		o.Text = source.NoStringID
		cur = o.Parent
	}
}

// slot resolves the slot of f in id, checking the field type.
func (a *Arena) slot(id ObjID, f schema.FieldID, want ...schema.FieldType) (*Object, int) {
	o := a.Get(id)
	if o == nil {
		return nil, -1
	}
	i, ok := schema.Slot(o.Kind, f)
	if !ok {
		return nil, -1
	}
	t := f.Def().Type
	for _, w := range want {
		if t == w {
			return o, i
		}
	}
	return nil, -1
}

// Int reads an int or bool field. ok is false when id's kind lacks f.
func (a *Arena) Int(id ObjID, f schema.FieldID) (int64, bool) {
	o, i := a.slot(id, f, schema.FieldInt, schema.FieldBool)
	if o == nil {
		return 0, false
	}
	return o.Slots[i], true
}

func (a *Arena) SetInt(id ObjID, f schema.FieldID, v int64) bool {
	o, i := a.slot(id, f, schema.FieldInt)
	if o == nil {
		return false
	}
	o.Slots[i] = v
	return true
}

func (a *Arena) Bool(id ObjID, f schema.FieldID) bool {
	o, i := a.slot(id, f, schema.FieldBool)
	return o != nil && o.Slots[i] != 0
}

func (a *Arena) SetBool(id ObjID, f schema.FieldID, v bool) bool {
	o, i := a.slot(id, f, schema.FieldBool)
	if o == nil {
		return false
	}
	o.Slots[i] = 0
	if v {
		o.Slots[i] = 1
	}
	return true
}

func (a *Arena) Str(id ObjID, f schema.FieldID) (string, bool) {
	o, i := a.slot(id, f, schema.FieldString)
	if o == nil {
		return "", false
	}
	return a.st.strs.Lookup(source.StringID(o.Slots[i])) //nolint:gosec // interned id
}

func (a *Arena) SetStr(id ObjID, f schema.FieldID, v string) bool {
	o, i := a.slot(id, f, schema.FieldString)
	if o == nil {
		return false
	}
	o.Slots[i] = int64(a.st.strs.Intern(v))
	return true
}

// Ref reads a single-link field.
func (a *Arena) Ref(id ObjID, f schema.FieldID) ObjID {
	o, i := a.slot(id, f, schema.FieldRef)
	if o == nil {
		return NoObjID
	}
	return ObjID(o.Slots[i]) //nolint:gosec // slot holds an ObjID
}

// SetRef stores a non-owning link. A target whose kind is outside the
// field's group is rejected and the slot keeps its previous value.
func (a *Arena) SetRef(id ObjID, f schema.FieldID, target ObjID) bool {
	o, i := a.slot(id, f, schema.FieldRef)
	if o == nil {
		return false
	}
	if target != NoObjID && !f.Def().Group.Contains(a.Kind(target)) {
		return false
	}
	o.Slots[i] = int64(target)
	return true
}

// SetChild stores an owning link: target's parent becomes id.
func (a *Arena) SetChild(id ObjID, f schema.FieldID, child ObjID) bool {
	if !a.SetRef(id, f, child) {
		return false
	}
	if child != NoObjID {
		a.SetParent(child, id)
	}
	return true
}

// Coll reads a collection field; NoCollID when never attached.
func (a *Arena) Coll(id ObjID, f schema.FieldID) CollID {
	o, i := a.slot(id, f, schema.FieldColl)
	if o == nil {
		return NoCollID
	}
	return CollID(o.Slots[i]) //nolint:gosec // slot holds a CollID
}

// SetColl attaches c to id. The collection group must match the field's.
func (a *Arena) SetColl(id ObjID, f schema.FieldID, c CollID) bool {
	o, i := a.slot(id, f, schema.FieldColl)
	if o == nil {
		return false
	}
	if c != NoCollID {
		col := a.st.colls.get(uint32(c))
		if col == nil || col.Group != f.Def().Group {
			return false
		}
		col.Owner = id
	}
	o.Slots[i] = int64(c)
	return true
}

// EnsureColl returns the collection of f on id, creating it on first use.
func (a *Arena) EnsureColl(id ObjID, f schema.FieldID) CollID {
	if _, i := a.slot(id, f, schema.FieldColl); i < 0 {
		return NoCollID
	}
	if c := a.Coll(id, f); c != NoCollID {
		return c
	}
	c := a.MakeCollection(f.Def().Group)
	a.SetColl(id, f, c)
	return c
}

// AppendChild appends child to the collection f of id and adopts it.
func (a *Arena) AppendChild(id ObjID, f schema.FieldID, child ObjID) bool {
	c := a.EnsureColl(id, f)
	if c == NoCollID || !a.Append(c, child) {
		return false
	}
	a.SetParent(child, id)
	return true
}

// AppendRef appends a non-owned member to the collection f of id.
func (a *Arena) AppendRef(id ObjID, f schema.FieldID, member ObjID) bool {
	c := a.EnsureColl(id, f)
	return c != NoCollID && a.Append(c, member)
}

// Collection returns the stored collection, or nil. READONLY
func (a *Arena) Collection(c CollID) *Collection {
	return a.st.colls.get(uint32(c))
}

func (a *Arena) Len(c CollID) int {
	if col := a.Collection(c); col != nil {
		return len(col.Items)
	}
	return 0
}

// At returns the i-th element, or NoObjID when out of range.
func (a *Arena) At(c CollID, i int) ObjID {
	col := a.Collection(c)
	if col == nil || i < 0 || i >= len(col.Items) {
		return NoObjID
	}
	return col.Items[i]
}

// Items returns the elements of c. READONLY
func (a *Arena) Items(c CollID) []ObjID {
	if col := a.Collection(c); col != nil {
		return col.Items
	}
	return nil
}

// Append adds obj to c. An object whose kind lies outside c's group is not
// inserted and false is returned; the collection is left untouched.
func (a *Arena) Append(c CollID, obj ObjID) bool {
	col := a.Collection(c)
	if col == nil || !col.Group.Contains(a.Kind(obj)) {
		return false
	}
	col.Items = append(col.Items, obj)
	return true
}

// SetAt overwrites the i-th element under the same group rule as Append.
func (a *Arena) SetAt(c CollID, i int, obj ObjID) bool {
	col := a.Collection(c)
	if col == nil || i < 0 || i >= len(col.Items) || !col.Group.Contains(a.Kind(obj)) {
		return false
	}
	col.Items[i] = obj
	return true
}

// EachLink calls fn for every linked object of id in declaration order:
// ref fields with pos -1, collection elements with their position. fn
// returning false stops the iteration.
func (a *Arena) EachLink(id ObjID, fn func(f schema.FieldID, pos int, target ObjID) bool) {
	o := a.Get(id)
	if o == nil {
		return
	}
	for i, f := range schema.DefOf(o.Kind).Fields {
		switch f.Def().Type {
		case schema.FieldRef:
			if t := ObjID(o.Slots[i]); t != NoObjID { //nolint:gosec // slot holds an ObjID
				if !fn(f, -1, t) {
					return
				}
			}
		case schema.FieldColl:
			c := CollID(o.Slots[i]) //nolint:gosec // slot holds a CollID
			for pos := 0; pos < a.Len(c); pos++ {
				if !fn(f, pos, a.At(c, pos)) {
					return
				}
			}
		}
	}
}

// ReplaceLink overwrites the link that reaches the old object: a ref field
// when pos is negative, otherwise element pos of the collection field. The
// replacement is adopted by id.
func (a *Arena) ReplaceLink(id ObjID, f schema.FieldID, pos int, repl ObjID) bool {
	var ok bool
	if pos < 0 {
		ok = a.SetRef(id, f, repl)
	} else {
		ok = a.SetAt(a.Coll(id, f), pos, repl)
	}
	if ok {
		a.SetParent(repl, id)
		a.ClearText(id)
	}
	return ok
}
