package adjust

import (
	"hdlgraph/internal/constval"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// exprWidth is the self-determined width of an assignable or referencing
// expression: a declared object, a select or a concatenation of those.
func (ad *adjuster) exprWidth(id model.ObjID) (width int, unsigned, ok bool) {
	a := ad.a
	switch a.Kind(id) {
	case schema.KindRefObj:
		return constval.ObjectWidth(a, ad.declOf(id))
	case schema.KindConstant:
		return constval.ObjectWidth(a, id)
	case schema.KindBitSelect:
		return 1, true, true
	case schema.KindPartSelect:
		l, lok := constval.Of(a, a.Ref(id, schema.FLeftRange))
		r, rok := constval.Of(a, a.Ref(id, schema.FRightRange))
		if !lok || !rok {
			return 0, false, false
		}
		li, lok := l.Int64()
		ri, rok := r.Int64()
		if !lok || !rok {
			return 0, false, false
		}
		n, sok := constval.Span(li, ri)
		return n, true, sok
	case schema.KindOperation:
		if op, _ := a.Int(id, schema.FOpType); op != schema.OpConcat {
			return 0, false, false
		}
		total := 0
		for _, o := range a.Items(a.Coll(id, schema.FOperands)) {
			w, _, wok := ad.exprWidth(o)
			if !wok || total+w > constval.MaxWidth {
				return 0, false, false
			}
			total += w
		}
		return total, true, total > 0
	}
	return 0, false, false
}
