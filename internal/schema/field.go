package schema

// FieldType is the storage class of a kind-specific field.
type FieldType uint8

const (
	FieldInt FieldType = iota + 1
	FieldBool
	FieldString
	FieldRef
	FieldColl
)

func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldBool:
		return "bool"
	case FieldString:
		return "string"
	case FieldRef:
		return "ref"
	case FieldColl:
		return "coll"
	}
	return "unknown"
}

// IsLink reports whether values of this type are object or collection ids.
func (t FieldType) IsLink() bool {
	return t == FieldRef || t == FieldColl
}

// FieldID names a field across the whole catalog. A kind carries a subset of
// fields; the position of a field inside its kind's Def is its slot.
type FieldID uint8

const (
	FNone FieldID = iota
	// scalars
	FDefName
	FTopModule
	FDirection
	FNetType
	FSigned
	FLocalParam
	FAlwaysType
	FOpType
	FBlocking
	FCaseType
	FConstType
	FSize
	FValue
	FPacked
	// single links
	FLhs
	FRhs
	FStmt
	FElseStmt
	FCondition
	FExpr
	FActual
	FIndex
	FLeftRange
	FRightRange
	FFunction
	FTypespec
	FDefaultValue
	FBaseTypespec
	FReturn
	FLowConn
	FHighConn
	FProperty
	FPropertyExpr
	FClockingEvent
	// collections
	FAllPackages
	FAllModules
	FTopModules
	FModules
	FPorts
	FNets
	FContAssigns
	FProcesses
	FParameters
	FParamAssigns
	FTaskFuncs
	FTypespecs
	FGenScopes
	FAssertions
	FStmts
	FCaseItems
	FExprs
	FOperands
	FArguments
	FRanges
	FMembers
	FEnumConsts
	FIODecls
	numFields
)

// Field describes one catalog field.
type Field struct {
	ID    FieldID
	Name  string
	Type  FieldType
	Group Group // links only
	Prop  Prop  // scalars exposed as properties, 0 otherwise
	Rel   Rel   // links only
	// Cross marks a link to a declaration elsewhere in the graph. It never
	// owns its target and may close a cycle (a recursive call, a reference
	// to the parameter being defined). All other links form a DAG.
	Cross bool
}

var fieldDefs = [numFields]Field{
	FDefName:    {Name: "def_name", Type: FieldString, Prop: PropDefName},
	FTopModule:  {Name: "top_module", Type: FieldBool, Prop: PropTopModule},
	FDirection:  {Name: "direction", Type: FieldInt, Prop: PropDirection},
	FNetType:    {Name: "net_type", Type: FieldInt, Prop: PropNetType},
	FSigned:     {Name: "signed", Type: FieldBool, Prop: PropSigned},
	FLocalParam: {Name: "local_param", Type: FieldBool, Prop: PropLocalParam},
	FAlwaysType: {Name: "always_type", Type: FieldInt, Prop: PropAlwaysType},
	FOpType:     {Name: "op_type", Type: FieldInt, Prop: PropOpType},
	FBlocking:   {Name: "blocking", Type: FieldBool, Prop: PropBlocking},
	FCaseType:   {Name: "case_type", Type: FieldInt, Prop: PropCaseType},
	FConstType:  {Name: "const_type", Type: FieldInt, Prop: PropConstType},
	FSize:       {Name: "size", Type: FieldInt, Prop: PropSize},
	FValue:      {Name: "value", Type: FieldString, Prop: PropValue},
	FPacked:     {Name: "packed", Type: FieldBool, Prop: PropPacked},

	FLhs:          {Name: "lhs", Type: FieldRef, Group: GroupLhs, Rel: RelLhs},
	FRhs:          {Name: "rhs", Type: FieldRef, Group: GroupExpr, Rel: RelRhs},
	FStmt:         {Name: "stmt", Type: FieldRef, Group: GroupStmt, Rel: RelStmt},
	FElseStmt:     {Name: "else_stmt", Type: FieldRef, Group: GroupStmt, Rel: RelElseStmt},
	FCondition:    {Name: "condition", Type: FieldRef, Group: GroupExpr, Rel: RelCondition},
	FExpr:         {Name: "expr", Type: FieldRef, Group: GroupExpr, Rel: RelExpr},
	FActual:       {Name: "actual", Type: FieldRef, Group: GroupActual, Rel: RelActual, Cross: true},
	FIndex:        {Name: "index", Type: FieldRef, Group: GroupExpr, Rel: RelIndex},
	FLeftRange:    {Name: "left_range", Type: FieldRef, Group: GroupExpr, Rel: RelLeftRange},
	FRightRange:   {Name: "right_range", Type: FieldRef, Group: GroupExpr, Rel: RelRightRange},
	FFunction:     {Name: "function", Type: FieldRef, Group: GroupFunction, Rel: RelFunction, Cross: true},
	FTypespec:     {Name: "typespec", Type: FieldRef, Group: GroupTypespec, Rel: RelTypespec},
	FDefaultValue: {Name: "default_value", Type: FieldRef, Group: GroupExpr, Rel: RelDefaultValue},
	FBaseTypespec: {Name: "base_typespec", Type: FieldRef, Group: GroupTypespec, Rel: RelBaseTypespec},
	FReturn:       {Name: "return", Type: FieldRef, Group: GroupTypespec, Rel: RelReturn},
	FLowConn:      {Name: "low_conn", Type: FieldRef, Group: GroupExpr, Rel: RelLowConn},
	FHighConn:     {Name: "high_conn", Type: FieldRef, Group: GroupExpr, Rel: RelHighConn},
	FProperty:     {Name: "property", Type: FieldRef, Group: GroupPropertySpec, Rel: RelProperty},
	FPropertyExpr: {Name: "property_expr", Type: FieldRef, Group: GroupExpr, Rel: RelPropertyExpr},
	FClockingEvent: {Name: "clocking_event", Type: FieldRef, Group: GroupExpr, Rel: RelClockingEvent},

	FAllPackages:  {Name: "all_packages", Type: FieldColl, Group: GroupPackage, Rel: RelAllPackages},
	FAllModules:   {Name: "all_modules", Type: FieldColl, Group: GroupModule, Rel: RelAllModules},
	FTopModules:   {Name: "top_modules", Type: FieldColl, Group: GroupModule, Rel: RelTopModules},
	FModules:      {Name: "modules", Type: FieldColl, Group: GroupModule, Rel: RelModules},
	FPorts:        {Name: "ports", Type: FieldColl, Group: GroupPort, Rel: RelPorts},
	FNets:         {Name: "nets", Type: FieldColl, Group: GroupNet, Rel: RelNets},
	FContAssigns:  {Name: "cont_assigns", Type: FieldColl, Group: GroupContAssign, Rel: RelContAssigns},
	FProcesses:    {Name: "processes", Type: FieldColl, Group: GroupProcess, Rel: RelProcesses},
	FParameters:   {Name: "parameters", Type: FieldColl, Group: GroupParameter, Rel: RelParameters},
	FParamAssigns: {Name: "param_assigns", Type: FieldColl, Group: GroupParamAssign, Rel: RelParamAssigns},
	FTaskFuncs:    {Name: "task_funcs", Type: FieldColl, Group: GroupTaskFunc, Rel: RelTaskFuncs},
	FTypespecs:    {Name: "typespecs", Type: FieldColl, Group: GroupTypespec, Rel: RelTypespecs},
	FGenScopes:    {Name: "gen_scopes", Type: FieldColl, Group: GroupGenScope, Rel: RelGenScopes},
	FAssertions:   {Name: "assertions", Type: FieldColl, Group: GroupAssertion, Rel: RelAssertions},
	FStmts:        {Name: "stmts", Type: FieldColl, Group: GroupStmt, Rel: RelStmts},
	FCaseItems:    {Name: "case_items", Type: FieldColl, Group: GroupCaseItem, Rel: RelCaseItems},
	FExprs:        {Name: "exprs", Type: FieldColl, Group: GroupExpr, Rel: RelExprs},
	FOperands:     {Name: "operands", Type: FieldColl, Group: GroupExpr, Rel: RelOperands},
	FArguments:    {Name: "arguments", Type: FieldColl, Group: GroupExpr, Rel: RelArguments},
	FRanges:       {Name: "ranges", Type: FieldColl, Group: GroupRange, Rel: RelRanges},
	FMembers:      {Name: "members", Type: FieldColl, Group: GroupMember, Rel: RelMembers},
	FEnumConsts:   {Name: "enum_consts", Type: FieldColl, Group: GroupEnumConst, Rel: RelEnumConsts},
	FIODecls:      {Name: "io_decls", Type: FieldColl, Group: GroupIODecl, Rel: RelIODecls},
}

func (f FieldID) Valid() bool {
	return f > FNone && f < numFields
}

// Def returns the catalog entry for f.
func (f FieldID) Def() Field {
	if !f.Valid() {
		return Field{}
	}
	return fieldDefs[f]
}

func (f FieldID) String() string {
	if !f.Valid() {
		return "none"
	}
	return fieldDefs[f].Name
}
