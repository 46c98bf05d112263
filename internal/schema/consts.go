package schema

// MaxWidth is the largest size, in bits, a constant may declare.
const MaxWidth = 1 << 16

// Operation types (PropOpType).
const (
	OpMinus       = 1
	OpPlus        = 2
	OpNot         = 3
	OpBitNeg      = 4
	OpUnaryAnd    = 5
	OpUnaryNand   = 6
	OpUnaryOr     = 7
	OpUnaryNor    = 8
	OpUnaryXor    = 9
	OpUnaryXnor   = 10
	OpSub         = 11
	OpDiv         = 12
	OpMod         = 13
	OpEq          = 14
	OpNeq         = 15
	OpCaseEq      = 16
	OpCaseNeq     = 17
	OpGt          = 18
	OpGe          = 19
	OpLt          = 20
	OpLe          = 21
	OpLShift      = 22
	OpRShift      = 23
	OpAdd         = 24
	OpMult        = 25
	OpLogAnd      = 26
	OpLogOr       = 27
	OpBitAnd      = 28
	OpBitOr       = 29
	OpBitXor      = 30
	OpBitXnor     = 31
	OpCondition   = 32
	OpConcat      = 33
	OpMultiConcat = 34
	OpArithLShift = 41
	OpArithRShift = 42
	OpPower       = 43
)

// Constant types (PropConstType).
const (
	ConstDec    = 1
	ConstReal   = 2
	ConstBinary = 3
	ConstOct    = 4
	ConstHex    = 5
	ConstString = 6
	ConstInt    = 7
	ConstTime   = 8
	ConstUInt   = 9
)

// Port and io directions (PropDirection).
const (
	DirNone   = 0
	DirInput  = 1
	DirOutput = 2
	DirInout  = 3
)

// Net types (PropNetType).
const (
	NetWire  = 1
	NetTri   = 4
	NetLogic = 36
	NetReg   = 48
)

// Case statement types (PropCaseType).
const (
	CaseExact = 1
	CaseX     = 2
	CaseZ     = 3
)

// Always block types (PropAlwaysType).
const (
	AlwaysPlain = 1
	AlwaysComb  = 2
	AlwaysFF    = 3
	AlwaysLatch = 4
)
