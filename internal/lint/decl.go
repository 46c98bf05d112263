package lint

import (
	"math/big"

	"hdlgraph/internal/constval"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

func (c *checker) checkNet(id model.ObjID) {
	a := c.a
	ts := a.Ref(id, schema.FTypespec)
	if a.Kind(ts) != schema.KindLogicTypespec {
		return
	}
	for _, r := range c.items(ts, schema.FRanges) {
		for _, f := range []schema.FieldID{schema.FLeftRange, schema.FRightRange} {
			bound := a.Ref(r, f)
			v, ok := constval.Of(a, bound)
			if !ok {
				c.warnf(diag.LintNetRange, id, "range bound of net %s is not an integer constant", c.displayName(id)).
					WithNote(c.loc(bound), "bound is here").Emit()
				continue
			}
			if v.Int.Sign() < 0 {
				c.errorf(diag.LintNetRange, id, "negative range bound %s on net %s", v.Int, c.displayName(id)).Emit()
			}
		}
	}
}

func (c *checker) checkPort(id model.ObjID) {
	dir, _ := c.a.Int(id, schema.FDirection)
	if dir == schema.DirNone {
		c.errorf(diag.LintPort, id, "port %s has no direction", c.displayName(id)).Emit()
	}
	if c.a.Ref(id, schema.FLowConn) == model.NoObjID {
		c.warnf(diag.LintPort, id, "port %s is not connected inside its module", c.displayName(id)).Emit()
	}
}

func (c *checker) checkStruct(id model.ObjID) {
	a := c.a
	packed := a.Bool(id, schema.FPacked)
	first := make(map[string]model.ObjID)
	for _, m := range c.items(id, schema.FMembers) {
		name := a.Name(m)
		if prev, dup := first[name]; dup && name != "" {
			c.errorf(diag.LintStructMember, m, "duplicate member %s in struct %s", name, c.displayName(id)).
				WithNote(c.loc(prev), "first declared here").Emit()
		} else {
			first[name] = m
		}
		if packed && a.Ref(m, schema.FDefaultValue) != model.NoObjID {
			c.errorf(diag.LintStructMember, m, "member %s of packed struct %s has a default value", name, c.displayName(id)).Emit()
		}
	}
}

func (c *checker) checkEnum(id model.ObjID) {
	a := c.a
	width, unsigned := 32, false
	if base := a.Ref(id, schema.FBaseTypespec); base != model.NoObjID {
		w, ok := constval.Width(a, base)
		if !ok {
			return
		}
		width, unsigned = w, !constval.Signed(a, base)
	}
	type seen struct {
		value *big.Int
		obj   model.ObjID
	}
	var values []seen
	for _, ec := range c.items(id, schema.FEnumConsts) {
		encoded, _ := a.Str(ec, schema.FValue)
		v, ok := constval.Parse(encoded, 0, 0)
		if !ok {
			continue
		}
		if !constval.Fits(v.Int, width, unsigned) {
			c.errorf(diag.LintEnumValue, ec, "value %s of %s does not fit in %d bits", v.Int, c.displayName(ec), width).Emit()
		}
		for _, s := range values {
			if s.value.Cmp(v.Int) == 0 {
				c.errorf(diag.LintEnumValue, ec, "%s duplicates the value %s of %s", c.displayName(ec), v.Int, c.displayName(s.obj)).
					WithNote(c.loc(s.obj), "first used here").Emit()
				break
			}
		}
		values = append(values, seen{value: v.Int, obj: ec})
	}
}
