package vpi

import (
	"fmt"
	"strings"

	"hdlgraph/internal/decompile"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// Property reads an integer property. Unset or inapplicable properties
// return schema.Undefined.
func Property(prop schema.Prop, h *Handle) int64 {
	v, err := LookupProperty(prop, h)
	if err != nil {
		return schema.Undefined
	}
	return v
}

// LookupProperty is Property reporting why no value is available.
func LookupProperty(prop schema.Prop, h *Handle) (int64, error) {
	if prop == schema.PropType && h != nil && h.typ == schema.KindIterator {
		return int64(schema.KindIterator), nil
	}
	id, err := Check(h)
	if err != nil {
		return schema.Undefined, err
	}
	a := h.a
	loc := a.Loc(id)
	pos := func(v uint32) (int64, error) {
		if loc.IsZero() {
			return schema.Undefined, fmt.Errorf("%w: %s has no location", model.ErrLookup, a.Kind(id))
		}
		return int64(v), nil
	}
	switch prop {
	case schema.PropType:
		return int64(a.Kind(id)), nil
	case schema.PropLineNo:
		return pos(loc.Line)
	case schema.PropColumnNo:
		return pos(loc.Col)
	case schema.PropEndLineNo:
		return pos(loc.EndLine)
	case schema.PropEndColumnNo:
		return pos(loc.EndCol)
	}
	f, ok := schema.FieldForProp(a.Kind(id), prop)
	if !ok || f.Def().Type == schema.FieldString {
		return schema.Undefined, fmt.Errorf("%w: %s has no integer property %s", model.ErrLookup, a.Kind(id), prop)
	}
	v, _ := a.Int(id, f)
	return v, nil
}

// StringProperty reads a string property. Unset or inapplicable properties
// return "".
func StringProperty(prop schema.Prop, h *Handle) string {
	s, err := LookupStringProperty(prop, h)
	if err != nil {
		return ""
	}
	return s
}

// LookupStringProperty is StringProperty reporting why no value is
// available.
func LookupStringProperty(prop schema.Prop, h *Handle) (string, error) {
	id, err := Check(h)
	if err != nil {
		return "", err
	}
	a := h.a
	switch prop {
	case schema.PropName:
		return a.Name(id), nil
	case schema.PropFullName:
		return FullName(a, id), nil
	case schema.PropFile:
		return a.File(id), nil
	case schema.PropDecompile:
		return decompile.Text(a, id), nil
	}
	f, ok := schema.FieldForProp(a.Kind(id), prop)
	if !ok || f.Def().Type != schema.FieldString {
		return "", fmt.Errorf("%w: %s has no string property %s", model.ErrLookup, a.Kind(id), prop)
	}
	s, _ := a.Str(id, f)
	return s, nil
}

// FullName joins the names of id and its named ancestors below the design
// with dots, e.g. "M1.M2.sum".
func FullName(a *model.Arena, id model.ObjID) string {
	var parts []string
	for cur := id; cur != model.NoObjID; cur = a.Parent(cur) {
		if a.Kind(cur) == schema.KindDesign {
			break
		}
		if n := a.Name(cur); n != "" {
			parts = append(parts, n)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}
