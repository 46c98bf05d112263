package adjust

import (
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

type scope struct {
	owner model.ObjID
	names map[string]model.ObjID // built on first lookup
}

var declFields = []schema.FieldID{schema.FNets, schema.FParameters, schema.FPorts}

func (s *scope) lookup(a *model.Arena, name string) model.ObjID {
	if s.names == nil {
		s.names = make(map[string]model.ObjID)
		for _, f := range declFields {
			if !schema.Has(a.Kind(s.owner), f) {
				continue
			}
			for _, id := range a.Items(a.Coll(s.owner, f)) {
				if n := a.Name(id); n != "" && a.Alive(id) {
					if _, dup := s.names[n]; !dup {
						s.names[n] = id
					}
				}
			}
		}
	}
	return s.names[name]
}

func (ad *adjuster) pushScope(id model.ObjID) {
	ad.scopes = append(ad.scopes, &scope{owner: id})
}

func (ad *adjuster) popScope() {
	if len(ad.scopes) > 0 {
		ad.scopes = ad.scopes[:len(ad.scopes)-1]
	}
}

// resolve finds a declaration by name, innermost scope first.
func (ad *adjuster) resolve(name string) model.ObjID {
	if name == "" {
		return model.NoObjID
	}
	for i := len(ad.scopes) - 1; i >= 0; i-- {
		if id := ad.scopes[i].lookup(ad.a, name); id != model.NoObjID {
			return id
		}
	}
	return model.NoObjID
}

// declOf returns the declaration a reference points to, falling back to a
// scope lookup by name for unresolved references.
func (ad *adjuster) declOf(ref model.ObjID) model.ObjID {
	if actual := ad.a.Ref(ref, schema.FActual); actual != model.NoObjID {
		return actual
	}
	return ad.resolve(ad.a.Name(ref))
}
