package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/model"
	"hdlgraph/internal/source"
	"hdlgraph/internal/testkit"
	"hdlgraph/internal/vpi"
)

func sampleBag(strs *source.Interner) *diag.Bag {
	file := strs.Intern("/work/rtl/top.sv")
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LintMultipleDrivers,
		source.Loc{File: file, Line: 7, Col: 3, EndLine: 7, EndCol: 20}, 12,
		"net sum has 2 drivers").
		WithNote(source.Loc{File: file, Line: 9, Col: 1}, "other driver"))
	bag.Add(diag.New(diag.SevWarning, diag.LintNetRange,
		source.Loc{File: file, Line: 3, Col: 1}, 4, "range [0:7] is ascending"))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	strs := source.NewInterner()
	bag := sampleBag(strs)
	var buf bytes.Buffer
	Pretty(&buf, bag, strs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})

	want := "top.sv:7:3: ERROR LINT1004: net sum has 2 drivers\n" +
		"  note: top.sv:9:1: other driver\n" +
		"top.sv:3:1: WARNING LINT1006: range [0:7] is ascending\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyRelativeHidesNotes(t *testing.T) {
	strs := source.NewInterner()
	bag := sampleBag(strs)
	var buf bytes.Buffer
	Pretty(&buf, bag, strs, PrettyOpts{PathMode: PathModeRelative, BaseDir: "/work"})
	out := buf.String()
	if !strings.HasPrefix(out, "rtl/top.sv:7:3:") {
		t.Errorf("unexpected path in %q", out)
	}
	if strings.Contains(out, "note:") {
		t.Errorf("notes printed without ShowNotes: %q", out)
	}
}

func TestJSONBasic(t *testing.T) {
	strs := source.NewInterner()
	bag := sampleBag(strs)
	var buf bytes.Buffer
	err := JSON(&buf, bag, strs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 2 {
		t.Fatalf("count = %d, want 2", output.Count)
	}
	first := output.Diagnostics[0]
	want := DiagnosticJSON{
		Severity: "ERROR",
		Code:     "LINT1004",
		Message:  "net sum has 2 drivers",
		Object:   12,
		Location: LocationJSON{File: "top.sv", Line: 7, Col: 3, EndLine: 7, EndCol: 20},
		Notes: []NoteJSON{{
			Message:  "other driver",
			Location: LocationJSON{File: "top.sv", Line: 9, Col: 1},
		}},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONMax(t *testing.T) {
	strs := source.NewInterner()
	out := BuildDiagnosticsOutput(sampleBag(strs), strs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Errorf("count=%d dropped=%d, want 1/1", out.Count, out.Dropped)
	}
	if out.Diagnostics[0].Location.Line != 0 {
		t.Errorf("positions included without IncludePositions")
	}
}

func design1Graph(t *testing.T) []*GraphNode {
	t.Helper()
	a := model.NewArena(model.Hints{})
	testkit.BuildDesign1(a)
	nodes := BuildGraph(vpi.Roots(a))
	if len(nodes) != 1 {
		t.Fatalf("got %d roots, want 1", len(nodes))
	}
	return nodes
}

func TestGraphPretty(t *testing.T) {
	nodes := design1Graph(t)
	var buf bytes.Buffer
	if err := GraphPretty(&buf, nodes); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"design design1 @design1.sv:1:",
		"module M1",
		"cont_assigns: cont_assign",
		"actual->M1.sum",
		"op_type=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %q:\n%s", want, out)
		}
	}
	// M1 is listed in both all_modules and top_modules but expanded once
	if n := strings.Count(out, "module M1 @"); n != 1 {
		t.Errorf("M1 expanded %d times", n)
	}
}

func TestGraphYAMLAndJSONAgree(t *testing.T) {
	nodes := design1Graph(t)
	var yb, jb bytes.Buffer
	if err := GraphYAML(&yb, nodes); err != nil {
		t.Fatal(err)
	}
	if err := GraphJSON(&jb, nodes); err != nil {
		t.Fatal(err)
	}
	var fromYAML, fromJSON []*GraphNode
	if err := yaml.Unmarshal(yb.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(jb.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("yaml and json dumps differ (-json +yaml):\n%s", diff)
	}
}

func TestTableAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, []string{"kind", "count"}, [][]string{
		{"módulo", "3"},
		{"网", "12"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "kind    count\n" +
		"módulo  3\n" +
		"网      12\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}
