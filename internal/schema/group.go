package schema

// Group names a set of kinds that may legally occupy a collection or a
// reference slot.
type Group uint8

const (
	GroupNone Group = iota
	GroupAny
	GroupModule
	GroupPackage
	GroupGenScope
	GroupPort
	GroupNet
	GroupContAssign
	GroupProcess
	GroupParameter
	GroupParamAssign
	GroupTaskFunc
	GroupFunction
	GroupTypespec
	GroupExpr
	GroupLhs
	GroupStmt
	GroupCaseItem
	GroupIODecl
	GroupRange
	GroupMember
	GroupEnumConst
	GroupActual
	GroupAssertion
	GroupPropertySpec
	numGroups
)

var (
	exprKinds = SetOf(KindOperation, KindConstant, KindRefObj, KindBitSelect,
		KindPartSelect, KindFuncCall, KindSysFuncCall)
	stmtKinds = SetOf(KindBegin, KindAssignment, KindIfStmt, KindIfElse,
		KindCaseStmt, KindReturn, KindFuncCall, KindSysFuncCall)
	typespecKinds = SetOf(KindLogicTypespec, KindIntTypespec, KindStructTypespec,
		KindEnumTypespec)
)

var groupSets = [numGroups]KindSet{
	GroupAny:          ^KindSet(0),
	GroupModule:       SetOf(KindModule),
	GroupPackage:      SetOf(KindPackage),
	GroupGenScope:     SetOf(KindGenScope),
	GroupPort:         SetOf(KindPort),
	GroupNet:          SetOf(KindNet),
	GroupContAssign:   SetOf(KindContAssign),
	GroupProcess:      SetOf(KindAlways, KindInitial),
	GroupParameter:    SetOf(KindParameter),
	GroupParamAssign:  SetOf(KindParamAssign),
	GroupTaskFunc:     SetOf(KindFunction, KindTask),
	GroupFunction:     SetOf(KindFunction),
	GroupTypespec:     typespecKinds,
	GroupExpr:         exprKinds,
	GroupLhs:          exprKinds.Union(SetOf(KindParameter)),
	GroupStmt:         stmtKinds,
	GroupCaseItem:     SetOf(KindCaseItem),
	GroupIODecl:       SetOf(KindIODecl),
	GroupRange:        SetOf(KindRange),
	GroupMember:       SetOf(KindTypespecMember),
	GroupEnumConst:    SetOf(KindEnumConst),
	GroupActual:       SetOf(KindNet, KindParameter, KindPort, KindIODecl, KindEnumConst),
	GroupAssertion:    SetOf(KindAssertProperty),
	GroupPropertySpec: SetOf(KindPropertySpec),
}

var groupNames = [numGroups]string{
	GroupNone:         "none",
	GroupAny:          "any",
	GroupModule:       "modules",
	GroupPackage:      "packages",
	GroupGenScope:     "gen_scopes",
	GroupPort:         "ports",
	GroupNet:          "nets",
	GroupContAssign:   "cont_assigns",
	GroupProcess:      "processes",
	GroupParameter:    "parameters",
	GroupParamAssign:  "param_assigns",
	GroupTaskFunc:     "task_funcs",
	GroupFunction:     "functions",
	GroupTypespec:     "typespecs",
	GroupExpr:         "exprs",
	GroupLhs:          "lhs",
	GroupStmt:         "stmts",
	GroupCaseItem:     "case_items",
	GroupIODecl:       "io_decls",
	GroupRange:        "ranges",
	GroupMember:       "members",
	GroupEnumConst:    "enum_consts",
	GroupActual:       "actuals",
	GroupAssertion:    "assertions",
	GroupPropertySpec: "property_specs",
}

func (g Group) Valid() bool {
	return g > GroupNone && g < numGroups
}

// Kinds returns the member set; invalid groups are empty.
func (g Group) Kinds() KindSet {
	if !g.Valid() {
		return 0
	}
	return groupSets[g]
}

// Contains reports whether objects of kind k may be stored under g.
func (g Group) Contains(k Kind) bool {
	return g.Kinds().Has(k)
}

func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return "unknown"
}
