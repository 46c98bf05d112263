package constval

import (
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// maxTypeDepth bounds typespec nesting followed by Width and Signed.
const maxTypeDepth = 64

// Width computes the bit width of a typespec. Logic typespecs multiply
// their range spans and default to one bit; ok is false when a bound is
// not constant or the width exceeds MaxWidth.
func Width(a *model.Arena, ts model.ObjID) (int, bool) {
	return typeWidth(a, ts, 0)
}

func typeWidth(a *model.Arena, ts model.ObjID, depth int) (int, bool) {
	if depth > maxTypeDepth {
		return 0, false
	}
	switch a.Kind(ts) {
	case schema.KindIntTypespec:
		return 32, true
	case schema.KindLogicTypespec:
		width := 1
		for _, r := range a.Items(a.Coll(ts, schema.FRanges)) {
			n, ok := RangeSpan(a, r)
			if !ok || width > MaxWidth/n {
				return 0, false
			}
			width *= n
		}
		return width, true
	case schema.KindEnumTypespec:
		return typeWidth(a, a.Ref(ts, schema.FBaseTypespec), depth+1)
	case schema.KindStructTypespec:
		if !a.Bool(ts, schema.FPacked) {
			return 0, false
		}
		width := 0
		for _, m := range a.Items(a.Coll(ts, schema.FMembers)) {
			w, ok := typeWidth(a, a.Ref(m, schema.FTypespec), depth+1)
			if !ok || width+w > MaxWidth {
				return 0, false
			}
			width += w
		}
		return width, true
	}
	return 0, false
}

// Signed reports the signedness of a typespec.
func Signed(a *model.Arena, ts model.ObjID) bool {
	for i := 0; i < maxTypeDepth; i++ {
		if a.Kind(ts) != schema.KindEnumTypespec {
			break
		}
		ts = a.Ref(ts, schema.FBaseTypespec)
	}
	return a.Bool(ts, schema.FSigned)
}

// RangeBounds returns the constant bounds of a range object.
func RangeBounds(a *model.Arena, r model.ObjID) (left, right int64, ok bool) {
	lv, lok := Of(a, a.Ref(r, schema.FLeftRange))
	rv, rok := Of(a, a.Ref(r, schema.FRightRange))
	if !lok || !rok {
		return 0, 0, false
	}
	left, lok = lv.Int64()
	right, rok = rv.Int64()
	return left, right, lok && rok
}

// Span is |left-right|+1, or false when it exceeds MaxWidth.
func Span(left, right int64) (int, bool) {
	if left < right {
		left, right = right, left
	}
	// a difference past MaxInt64 wraps negative
	d := left - right
	if d < 0 || d >= MaxWidth {
		return 0, false
	}
	return int(d) + 1, true
}

// RangeSpan is the Span of a range object's constant bounds.
func RangeSpan(a *model.Arena, r model.ObjID) (int, bool) {
	l, rr, ok := RangeBounds(a, r)
	if !ok {
		return 0, false
	}
	return Span(l, rr)
}

// ObjectWidth is the width and signedness of a declared object (net, port,
// parameter, io decl) or of a constant.
func ObjectWidth(a *model.Arena, id model.ObjID) (width int, unsigned, ok bool) {
	switch a.Kind(id) {
	case schema.KindConstant:
		v, vok := Of(a, id)
		if !vok || v.Width == 0 {
			return 0, false, false
		}
		return v.Width, v.Unsigned, true
	case schema.KindNet, schema.KindPort, schema.KindParameter, schema.KindIODecl:
		ts := a.Ref(id, schema.FTypespec)
		if ts == model.NoObjID {
			return 0, false, false
		}
		w, wok := Width(a, ts)
		return w, !Signed(a, ts) && !a.Bool(id, schema.FSigned), wok
	}
	return 0, false, false
}
