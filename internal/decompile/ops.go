package decompile

import "hdlgraph/internal/schema"

var unaryOps = map[int64]string{
	schema.OpMinus:     "-",
	schema.OpPlus:      "+",
	schema.OpNot:       "!",
	schema.OpBitNeg:    "~",
	schema.OpUnaryAnd:  "&",
	schema.OpUnaryNand: "~&",
	schema.OpUnaryOr:   "|",
	schema.OpUnaryNor:  "~|",
	schema.OpUnaryXor:  "^",
	schema.OpUnaryXnor: "~^",
}

var binaryOps = map[int64]string{
	schema.OpSub:         "-",
	schema.OpDiv:         "/",
	schema.OpMod:         "%",
	schema.OpEq:          "==",
	schema.OpNeq:         "!=",
	schema.OpCaseEq:      "===",
	schema.OpCaseNeq:     "!==",
	schema.OpGt:          ">",
	schema.OpGe:          ">=",
	schema.OpLt:          "<",
	schema.OpLe:          "<=",
	schema.OpLShift:      "<<",
	schema.OpRShift:      ">>",
	schema.OpAdd:         "+",
	schema.OpMult:        "*",
	schema.OpLogAnd:      "&&",
	schema.OpLogOr:       "||",
	schema.OpBitAnd:      "&",
	schema.OpBitOr:       "|",
	schema.OpBitXor:      "^",
	schema.OpBitXnor:     "~^",
	schema.OpArithLShift: "<<<",
	schema.OpArithRShift: ">>>",
	schema.OpPower:       "**",
}

// OpSymbol returns the operator token of a unary or binary op type.
func OpSymbol(op int64) (string, bool) {
	if s, ok := binaryOps[op]; ok {
		return s, true
	}
	s, ok := unaryOps[op]
	return s, ok
}

// IsUnary reports whether op takes a single operand.
func IsUnary(op int64) bool {
	_, ok := unaryOps[op]
	return ok
}
