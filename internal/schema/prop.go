package schema

// Prop identifies a scalar or string property. Values are part of the
// persisted/ABI contract: append only, never renumber.
type Prop int32

const (
	PropType        Prop = 1
	PropName        Prop = 2
	PropFullName    Prop = 3
	PropSize        Prop = 4
	PropFile        Prop = 5
	PropLineNo      Prop = 6
	PropTopModule   Prop = 7
	PropDefName     Prop = 9
	PropDirection   Prop = 20
	PropNetType     Prop = 22
	PropOpType      Prop = 39
	PropConstType   Prop = 40
	PropBlocking    Prop = 41
	PropCaseType    Prop = 42
	PropAlwaysType  Prop = 43
	PropColumnNo    Prop = 44
	PropEndLineNo   Prop = 45
	PropEndColumnNo Prop = 46
	PropSigned      Prop = 65
	PropLocalParam  Prop = 70
	PropPacked      Prop = 71
	PropValue       Prop = 80
	PropDecompile   Prop = 81
)

// Undefined is returned for integer properties that are unset or do not
// apply to the object's kind.
const Undefined int64 = -1

var propNames = map[Prop]string{
	PropType:        "type",
	PropName:        "name",
	PropFullName:    "full_name",
	PropSize:        "size",
	PropFile:        "file",
	PropLineNo:      "line_no",
	PropTopModule:   "top_module",
	PropDefName:     "def_name",
	PropDirection:   "direction",
	PropNetType:     "net_type",
	PropOpType:      "op_type",
	PropConstType:   "const_type",
	PropBlocking:    "blocking",
	PropCaseType:    "case_type",
	PropAlwaysType:  "always_type",
	PropColumnNo:    "column_no",
	PropEndLineNo:   "end_line_no",
	PropEndColumnNo: "end_column_no",
	PropSigned:      "signed",
	PropLocalParam:  "local_param",
	PropPacked:      "packed",
	PropValue:       "value",
	PropDecompile:   "decompile",
}

func (p Prop) String() string {
	if s, ok := propNames[p]; ok {
		return s
	}
	return "unknown"
}
