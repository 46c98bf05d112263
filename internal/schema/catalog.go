package schema

// Version identifies this catalog. Persisted graphs record it and restore
// refuses any other value.
const Version uint32 = 3

// Def is the layout of one concrete kind: its fields in declaration order.
// Traversal, persistence and the handle layer all iterate Fields in this
// order.
type Def struct {
	Kind   Kind
	Name   string
	Fields []FieldID
}

var defs = [numKinds]Def{
	KindDesign: {Fields: []FieldID{FAllPackages, FAllModules, FTopModules}},
	KindModule: {Fields: []FieldID{FDefName, FTopModule, FPorts, FNets, FParameters,
		FParamAssigns, FTypespecs, FTaskFuncs, FContAssigns, FProcesses, FAssertions,
		FGenScopes, FModules}},
	KindPackage: {Fields: []FieldID{FDefName, FParameters, FParamAssigns, FTypespecs,
		FTaskFuncs, FNets}},
	KindGenScope: {Fields: []FieldID{FNets, FParameters, FParamAssigns, FContAssigns,
		FProcesses, FGenScopes, FModules}},
	KindPort:           {Fields: []FieldID{FDirection, FTypespec, FLowConn, FHighConn}},
	KindNet:            {Fields: []FieldID{FNetType, FSigned, FTypespec}},
	KindParameter:      {Fields: []FieldID{FLocalParam, FTypespec, FExpr}},
	KindParamAssign:    {Fields: []FieldID{FLhs, FRhs}},
	KindContAssign:     {Fields: []FieldID{FLhs, FRhs}},
	KindAlways:         {Fields: []FieldID{FAlwaysType, FStmt}},
	KindInitial:        {Fields: []FieldID{FStmt}},
	KindBegin:          {Fields: []FieldID{FStmts}},
	KindAssignment:     {Fields: []FieldID{FOpType, FBlocking, FLhs, FRhs}},
	KindIfStmt:         {Fields: []FieldID{FCondition, FStmt}},
	KindIfElse:         {Fields: []FieldID{FCondition, FStmt, FElseStmt}},
	KindCaseStmt:       {Fields: []FieldID{FCaseType, FCondition, FCaseItems}},
	KindCaseItem:       {Fields: []FieldID{FExprs, FStmt}},
	KindReturn:         {Fields: []FieldID{FExpr}},
	KindFunction:       {Fields: []FieldID{FSigned, FReturn, FIODecls, FStmt}},
	KindTask:           {Fields: []FieldID{FIODecls, FStmt}},
	KindIODecl:         {Fields: []FieldID{FDirection, FTypespec}},
	KindOperation:      {Fields: []FieldID{FOpType, FOperands}},
	KindConstant:       {Fields: []FieldID{FConstType, FSize, FValue}},
	KindRefObj:         {Fields: []FieldID{FActual}},
	KindBitSelect:      {Fields: []FieldID{FActual, FIndex}},
	KindPartSelect:     {Fields: []FieldID{FActual, FLeftRange, FRightRange}},
	KindFuncCall:       {Fields: []FieldID{FFunction, FArguments}},
	KindSysFuncCall:    {Fields: []FieldID{FArguments}},
	KindLogicTypespec:  {Fields: []FieldID{FSigned, FRanges}},
	KindIntTypespec:    {Fields: []FieldID{FSigned}},
	KindRange:          {Fields: []FieldID{FLeftRange, FRightRange}},
	KindStructTypespec: {Fields: []FieldID{FPacked, FMembers}},
	KindTypespecMember: {Fields: []FieldID{FTypespec, FDefaultValue}},
	KindEnumTypespec:   {Fields: []FieldID{FBaseTypespec, FEnumConsts}},
	KindEnumConst:      {Fields: []FieldID{FValue, FSize}},
	KindPropertySpec:   {Fields: []FieldID{FClockingEvent, FPropertyExpr}},
	KindAssertProperty: {Fields: []FieldID{FProperty}},
}

// slots[k][f] is the slot of field f in kind k, or -1.
var slots [numKinds][numFields]int8

func init() {
	for k := range defs {
		for f := range slots[k] {
			slots[k][f] = -1
		}
		defs[k].Kind = Kind(k)
		defs[k].Name = Kind(k).String()
		for i, f := range defs[k].Fields {
			slots[k][f] = int8(i)
		}
	}
	for f := range fieldDefs {
		fieldDefs[f].ID = FieldID(f)
	}
}

// DefOf returns the layout of k. Invalid kinds yield an empty Def.
func DefOf(k Kind) *Def {
	if !k.Valid() {
		return &Def{}
	}
	return &defs[k]
}

// NumSlots is the number of kind-specific slots an object of kind k carries.
func NumSlots(k Kind) int {
	return len(DefOf(k).Fields)
}

// Slot returns the slot index of f in k.
func Slot(k Kind, f FieldID) (int, bool) {
	if !k.Valid() || !f.Valid() {
		return -1, false
	}
	s := slots[k][f]
	return int(s), s >= 0
}

// Has reports whether kind k carries field f.
func Has(k Kind, f FieldID) bool {
	_, ok := Slot(k, f)
	return ok
}

// FieldForRel finds the link field of k that implements rel.
func FieldForRel(k Kind, rel Rel) (FieldID, bool) {
	for _, f := range DefOf(k).Fields {
		if fieldDefs[f].Rel == rel && rel != RelNone {
			return f, true
		}
	}
	return FNone, false
}

// FieldForProp finds the scalar field of k exposed as prop.
func FieldForProp(k Kind, prop Prop) (FieldID, bool) {
	for _, f := range DefOf(k).Fields {
		if fieldDefs[f].Prop == prop && prop != 0 {
			return f, true
		}
	}
	return FNone, false
}

// Kinds lists every allocatable kind.
func Kinds() []Kind {
	out := make([]Kind, 0, NumKinds-1)
	for k := KindDesign; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}
