package schema

// Rel identifies a one-to-one or one-to-many relation reachable from a
// handle. Values are part of the ABI contract.
type Rel int32

const (
	RelNone Rel = iota
	RelParent
	RelAllModules
	RelTopModules
	RelAllPackages
	RelModules
	RelPorts
	RelNets
	RelContAssigns
	RelProcesses
	RelParameters
	RelParamAssigns
	RelTaskFuncs
	RelTypespecs
	RelGenScopes
	RelAssertions
	RelLhs
	RelRhs
	RelStmt
	RelStmts
	RelElseStmt
	RelCondition
	RelCaseItems
	RelExprs
	RelExpr
	RelOperands
	RelActual
	RelIndex
	RelLeftRange
	RelRightRange
	RelFunction
	RelArguments
	RelTypespec
	RelRanges
	RelMembers
	RelDefaultValue
	RelBaseTypespec
	RelEnumConsts
	RelReturn
	RelIODecls
	RelLowConn
	RelHighConn
	RelProperty
	RelPropertyExpr
	RelClockingEvent
	numRels
)

func (r Rel) Valid() bool {
	return r > RelNone && r < numRels
}

func (r Rel) String() string {
	if r == RelParent {
		return "parent"
	}
	for _, fd := range fieldDefs {
		if fd.Rel == r {
			return fd.Name
		}
	}
	return "unknown"
}

// ParseRel resolves a relation by its field name ("parent", "operands", ...).
func ParseRel(name string) (Rel, bool) {
	if name == "parent" {
		return RelParent, true
	}
	for _, fd := range fieldDefs {
		if fd.Rel != RelNone && fd.Name == name {
			return fd.Rel, true
		}
	}
	return RelNone, false
}
