package schema

// Kind is the type discriminant of a graph object. The set is closed; every
// kind below has a Def in the catalog.
type Kind uint8

const (
	KindNone Kind = iota
	KindDesign
	KindModule
	KindPackage
	KindGenScope
	KindPort
	KindNet
	KindParameter
	KindParamAssign
	KindContAssign
	KindAlways
	KindInitial
	KindBegin
	KindAssignment
	KindIfStmt
	KindIfElse
	KindCaseStmt
	KindCaseItem
	KindReturn
	KindFunction
	KindTask
	KindIODecl
	KindOperation
	KindConstant
	KindRefObj
	KindBitSelect
	KindPartSelect
	KindFuncCall
	KindSysFuncCall
	KindLogicTypespec
	KindIntTypespec
	KindRange
	KindStructTypespec
	KindTypespecMember
	KindEnumTypespec
	KindEnumConst
	KindPropertySpec
	KindAssertProperty
	numKinds
)

// NumKinds sizes per-kind dispatch tables.
const NumKinds = int(numKinds)

// KindIterator tags iterator handles. It never names an allocatable object.
const KindIterator Kind = 0xFE

var kindNames = [...]string{
	KindNone:           "none",
	KindDesign:         "design",
	KindModule:         "module",
	KindPackage:        "package",
	KindGenScope:       "gen_scope",
	KindPort:           "port",
	KindNet:            "net",
	KindParameter:      "parameter",
	KindParamAssign:    "param_assign",
	KindContAssign:     "cont_assign",
	KindAlways:         "always",
	KindInitial:        "initial",
	KindBegin:          "begin",
	KindAssignment:     "assignment",
	KindIfStmt:         "if_stmt",
	KindIfElse:         "if_else",
	KindCaseStmt:       "case_stmt",
	KindCaseItem:       "case_item",
	KindReturn:         "return_stmt",
	KindFunction:       "function",
	KindTask:           "task",
	KindIODecl:         "io_decl",
	KindOperation:      "operation",
	KindConstant:       "constant",
	KindRefObj:         "ref_obj",
	KindBitSelect:      "bit_select",
	KindPartSelect:     "part_select",
	KindFuncCall:       "func_call",
	KindSysFuncCall:    "sys_func_call",
	KindLogicTypespec:  "logic_typespec",
	KindIntTypespec:    "int_typespec",
	KindRange:          "range",
	KindStructTypespec: "struct_typespec",
	KindTypespecMember: "typespec_member",
	KindEnumTypespec:   "enum_typespec",
	KindEnumConst:      "enum_const",
	KindPropertySpec:   "property_spec",
	KindAssertProperty: "assert_property",
}

// Valid reports whether k names an allocatable kind.
func (k Kind) Valid() bool {
	return k > KindNone && k < numKinds
}

func (k Kind) String() string {
	if k == KindIterator {
		return "iterator"
	}
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String for allocatable kinds.
func ParseKind(name string) (Kind, bool) {
	for k := KindDesign; k < numKinds; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}

// KindSet is a bitset over kinds.
type KindSet uint64

func SetOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s KindSet) Has(k Kind) bool {
	return k.Valid() && s&(1<<k) != 0
}

func (s KindSet) Union(o KindSet) KindSet {
	return s | o
}

// Kinds lists the members in discriminant order.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for k := KindDesign; k < numKinds; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
