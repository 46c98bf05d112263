package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lint
	LintInfo                Code = 1000
	LintSelectOutOfRange    Code = 1001
	LintMissingReturn       Code = 1002
	LintStructMember        Code = 1003
	LintMultipleDrivers     Code = 1004
	LintNotAssignable       Code = 1005
	LintNetRange            Code = 1006
	LintEnumValue           Code = 1007
	LintMissingPropertyExpr Code = 1008
	LintSysFuncCall         Code = 1009
	LintPort                Code = 1010

	// Adjuster
	AdjInfo        Code = 2000
	AdjDivByZero   Code = 2001
	AdjUnsizedCall Code = 2002

	// I/O and persisted graphs
	IOInfo        Code = 4000
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002
	IOBadFormat   Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LintInfo:                "Lint information",
	LintSelectOutOfRange:    "Select index outside declared range",
	LintMissingReturn:       "Function without return statement",
	LintStructMember:        "Invalid struct member",
	LintMultipleDrivers:     "Net driven by multiple continuous assignments",
	LintNotAssignable:       "Left-hand side is not assignable",
	LintNetRange:            "Invalid net range",
	LintEnumValue:           "Invalid enum value",
	LintMissingPropertyExpr: "Property without expression",
	LintSysFuncCall:         "Invalid system function call",
	LintPort:                "Incomplete port declaration",
	AdjInfo:                 "Adjuster information",
	AdjDivByZero:            "Division by zero left unfolded",
	AdjUnsizedCall:          "Function call result has no known width",
	IOInfo:                  "I/O information",
	IOReadFailed:            "Cannot read graph",
	IOWriteFailed:           "Cannot write graph",
	IOBadFormat:             "Corrupt or incompatible graph file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LINT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ADJ%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode accepts "LINT1004" or a bare number.
func ParseCode(s string) (Code, bool) {
	for c := range codeDescription {
		if c.ID() == s {
			return c, true
		}
	}
	var n uint16
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		if _, ok := codeDescription[Code(n)]; ok {
			return Code(n), true
		}
	}
	return UnknownCode, false
}
