package diag

import (
	"testing"

	"hdlgraph/internal/source"
)

func TestFormatShort(t *testing.T) {
	strs := source.NewInterner()
	file := strs.Intern("rtl/top.sv")
	at := func(line uint32) source.Loc { return source.Loc{File: file, Line: line, Col: 1} }

	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportWarning(r, LintMultipleDrivers, at(7), 12, "net y is driven\nby 2 assignments").
		WithNote(at(9), "second driver").
		Emit()
	ReportError(r, LintNotAssignable, at(3), 4, "cannot assign to constant").Emit()

	want := "error LINT1005 rtl/top.sv:3:1 cannot assign to constant\n" +
		"warning LINT1004 rtl/top.sv:7:1 net y is driven by 2 assignments\n" +
		"note LINT1004 rtl/top.sv:9:1 second driver"
	if got := FormatShort(bag.Items(), strs, true); got != want {
		t.Fatalf("FormatShort:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagLimitAndDedup(t *testing.T) {
	bag := NewBag(2)
	d := New(SevWarning, LintPort, source.NoLoc, 1, "x")
	for i := 0; i < 3; i++ {
		bag.Add(d)
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d, want 2 and 1", bag.Len(), bag.Dropped())
	}
	bag.Dedup()
	if bag.Len() != 1 {
		t.Errorf("Len after Dedup = %d, want 1", bag.Len())
	}
}

func TestFilterReporter(t *testing.T) {
	bag := NewBag(10)
	r := FilterReporter{
		Next:             BagReporter{Bag: bag},
		Disabled:         map[Code]bool{LintPort: true},
		WarningsAsErrors: true,
	}
	ReportWarning(r, LintPort, source.NoLoc, 1, "dropped").Emit()
	ReportWarning(r, LintNetRange, source.NoLoc, 2, "promoted").Emit()
	if bag.Len() != 1 || bag.Items()[0].Severity != SevError {
		t.Fatalf("got %+v", bag.Items())
	}
}

func TestFilterReporterMinSeverity(t *testing.T) {
	bag := NewBag(10)
	r := FilterReporter{Next: BagReporter{Bag: bag}, MinSeverity: SevWarning}
	ReportInfo(r, LintPort, source.NoLoc, 1, "quiet").Emit()
	ReportWarning(r, LintNetRange, source.NoLoc, 2, "kept").Emit()
	if bag.Len() != 1 || bag.Items()[0].Message != "kept" {
		t.Fatalf("got %+v", bag.Items())
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"info", SevInfo, true},
		{"Warning", SevWarning, true},
		{"ERROR", SevError, true},
		{"fatal", SevInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseSeverity(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseCode(t *testing.T) {
	for _, s := range []string{"LINT1004", "1004"} {
		if c, ok := ParseCode(s); !ok || c != LintMultipleDrivers {
			t.Errorf("ParseCode(%q) = %v, %v", s, c, ok)
		}
	}
	if _, ok := ParseCode("nope"); ok {
		t.Error("ParseCode accepted garbage")
	}
}
