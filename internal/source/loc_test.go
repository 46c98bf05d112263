package source

import (
	"testing"
)

func TestLocCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Loc
		expected Loc
	}{
		{
			name:     "b extends end",
			a:        Loc{File: 1, Line: 1, Col: 1, EndLine: 2, EndCol: 4},
			b:        Loc{File: 1, Line: 2, Col: 1, EndLine: 5, EndCol: 2},
			expected: Loc{File: 1, Line: 1, Col: 1, EndLine: 5, EndCol: 2},
		},
		{
			name:     "b starts earlier",
			a:        Loc{File: 1, Line: 3, Col: 2, EndLine: 3, EndCol: 9},
			b:        Loc{File: 1, Line: 3, Col: 1, EndLine: 3, EndCol: 4},
			expected: Loc{File: 1, Line: 3, Col: 1, EndLine: 3, EndCol: 9},
		},
		{
			name:     "different files keep receiver",
			a:        Loc{File: 1, Line: 3, Col: 2, EndLine: 3, EndCol: 9},
			b:        Loc{File: 2, Line: 1, Col: 1, EndLine: 9, EndCol: 9},
			expected: Loc{File: 1, Line: 3, Col: 2, EndLine: 3, EndCol: 9},
		},
		{
			name:     "zero receiver takes other",
			a:        NoLoc,
			b:        Loc{File: 2, Line: 1, Col: 1, EndLine: 1, EndCol: 3},
			expected: Loc{File: 2, Line: 1, Col: 1, EndLine: 1, EndCol: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLocFormat(t *testing.T) {
	in := NewInterner()
	f := in.Intern("top.sv")
	if got := (Loc{File: f, Line: 3, Col: 5}).Format(in); got != "top.sv:3:5" {
		t.Errorf("Format = %q", got)
	}
	if got := (Loc{File: f}).Format(in); got != "top.sv" {
		t.Errorf("Format without line = %q", got)
	}
	if got := (Loc{Line: 1, Col: 1}).Format(nil); got != "<unknown>:1:1" {
		t.Errorf("Format nil interner = %q", got)
	}
}
