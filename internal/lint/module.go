package lint

import (
	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// checkModule reports nets driven by more than one continuous assignment
// of the module. Partial drivers (bit and part selects) are not counted.
func (c *checker) checkModule(id model.ObjID) {
	a := c.a
	drivers := make(map[model.ObjID][]model.ObjID)
	var order []model.ObjID
	for _, ca := range c.items(id, schema.FContAssigns) {
		for _, net := range c.drivenNets(a.Ref(ca, schema.FLhs)) {
			if _, seen := drivers[net]; !seen {
				order = append(order, net)
			}
			drivers[net] = append(drivers[net], ca)
		}
	}
	for _, net := range order {
		ds := drivers[net]
		if len(ds) < 2 {
			continue
		}
		b := c.errorf(diag.LintMultipleDrivers, net, "net %s has %d continuous drivers", c.displayName(net), len(ds))
		for _, d := range ds {
			b.WithNote(c.loc(d), "driven here")
		}
		b.Emit()
	}
}

func (c *checker) drivenNets(lhs model.ObjID) []model.ObjID {
	a := c.a
	switch a.Kind(lhs) {
	case schema.KindRefObj:
		if actual := a.Ref(lhs, schema.FActual); a.Kind(actual) == schema.KindNet {
			return []model.ObjID{actual}
		}
	case schema.KindOperation:
		if op, _ := a.Int(lhs, schema.FOpType); op != schema.OpConcat {
			return nil
		}
		var out []model.ObjID
		for _, o := range c.items(lhs, schema.FOperands) {
			out = append(out, c.drivenNets(o)...)
		}
		return out
	}
	return nil
}

// checkFunction reports functions with a return type whose body never
// returns.
func (c *checker) checkFunction(id model.ObjID) {
	if c.a.Ref(id, schema.FReturn) == model.NoObjID {
		return
	}
	if !c.returns(c.a.Ref(id, schema.FStmt)) {
		c.warnf(diag.LintMissingReturn, id, "function %s has a return type but no return statement", c.displayName(id)).Emit()
	}
}

func (c *checker) returns(stmt model.ObjID) bool {
	a := c.a
	switch a.Kind(stmt) {
	case schema.KindReturn:
		return true
	case schema.KindBegin:
		for _, s := range c.items(stmt, schema.FStmts) {
			if c.returns(s) {
				return true
			}
		}
	case schema.KindIfStmt, schema.KindCaseItem:
		return c.returns(a.Ref(stmt, schema.FStmt))
	case schema.KindIfElse:
		return c.returns(a.Ref(stmt, schema.FStmt)) || c.returns(a.Ref(stmt, schema.FElseStmt))
	case schema.KindCaseStmt:
		for _, it := range c.items(stmt, schema.FCaseItems) {
			if c.returns(it) {
				return true
			}
		}
	}
	return false
}
