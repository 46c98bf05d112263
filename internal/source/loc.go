package source

import (
	"fmt"
)

// Loc is a source range in line/column coordinates. Lines and columns are
// 1-based; zero means unknown.
type Loc struct {
	File    StringID
	Line    uint32
	Col     uint32
	EndLine uint32
	EndCol  uint32
}

// NoLoc is the zero location.
var NoLoc = Loc{}

func (l Loc) IsZero() bool {
	return l == NoLoc
}

// Before reports whether l starts strictly before other.
func (l Loc) Before(other Loc) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Col < other.Col
}

// Cover returns a location spanning both l and other. Locations in different
// files are not merged.
func (l Loc) Cover(other Loc) Loc {
	if l.IsZero() {
		return other
	}
	if other.IsZero() || l.File != other.File {
		return l
	}
	if other.Before(l) {
		l.Line, l.Col = other.Line, other.Col
	}
	if l.EndLine < other.EndLine || (l.EndLine == other.EndLine && l.EndCol < other.EndCol) {
		l.EndLine, l.EndCol = other.EndLine, other.EndCol
	}
	return l
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d:%d-%d:%d", l.File, l.Line, l.Col, l.EndLine, l.EndCol)
}

// Format renders the location with a resolved file name, e.g. "top.sv:3:5".
func (l Loc) Format(in *Interner) string {
	name := "<unknown>"
	if in != nil {
		if s, ok := in.Lookup(l.File); ok && s != "" {
			name = s
		}
	}
	if l.Line == 0 {
		return name
	}
	return fmt.Sprintf("%s:%d:%d", name, l.Line, l.Col)
}
