package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRingTracerKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		PointTo(r, ScopePass, "p", string(rune('a'+i)), SpanContext{})
	}
	snap := r.Snapshot()
	if len(snap) != 3 || r.Len() != 3 {
		t.Fatalf("Snapshot len = %d, Len = %d, want 3", len(snap), r.Len())
	}
	got := snap[0].Detail + snap[1].Detail + snap[2].Detail
	if got != "cde" {
		t.Errorf("ring order = %q, want cde", got)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelPhase, []string{"file:x"}},
		{LevelDetail, []string{"file:x", "lint"}},
		{LevelDebug, []string{"file:x", "lint", "obj"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		st := NewStreamTracer(&buf, tt.level, FormatNDJSON)
		ctx := WithTracer(context.Background(), st)
		ctx, file := Start(ctx, ScopeFile, "file:x")
		ctx, pass := Start(ctx, ScopePass, "lint")
		Point(ctx, ScopeObject, "obj", "")
		pass.End("")
		file.End("")

		var names []string
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			for _, n := range []string{"file:x", "lint", "obj"} {
				if strings.Contains(line, `"name":"`+n+`"`) && (len(names) == 0 || names[len(names)-1] != n) {
					names = append(names, n)
				}
			}
		}
		if diff := cmp.Diff(tt.want, dedup(names)); diff != "" {
			t.Errorf("%s: emitted spans mismatch (-want +got):\n%s", tt.level, diff)
		}
	}
}

func dedup(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func TestErrorLevelFillsRingOnly(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	_, sp := Start(ctx, ScopePass, "restore")
	sp.EndErr(errors.New("bad magic"))

	if buf.Len() != 0 {
		t.Errorf("stream wrote at error level:\n%s", buf.String())
	}
	ring, ok := FindRing(tr)
	if !ok {
		t.Fatal("no ring behind a both-mode tracer")
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[1].Detail != "bad magic" {
		t.Fatalf("ring = %+v", snap)
	}
	var dump bytes.Buffer
	if err := ring.Dump(&dump, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dump.String(), "← restore (bad magic)") {
		t.Errorf("dump:\n%s", dump.String())
	}
}

func TestStartNestsUnderContextSpanAndLane(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx, outer := Start(ctx, ScopeDriver, "run")
	ctx = WithLane(ctx, 3)
	_, inner := Start(ctx, ScopePass, "restore")
	inner.End("")
	outer.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("got %d events", len(snap))
	}
	if snap[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
	if snap[1].Lane != 3 || snap[0].Lane != 0 {
		t.Errorf("lanes = %d, %d", snap[0].Lane, snap[1].Lane)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatText)
	Begin(st, ScopePass, "save", SpanContext{Lane: 2}).Count("objects", 12).End("done")
	out := buf.String()
	if !strings.Contains(out, "w2 → save") || !strings.Contains(out, "← save (done) {objects=12}") {
		t.Errorf("unexpected text output:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || !strings.EqualFold(l.String(), s) {
			t.Errorf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted an unknown level")
	}
}

func TestNopWhenOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("tracer enabled at LevelOff")
	}
	sp := Begin(tr, ScopeDriver, "x", SpanContext{})
	if sp.ID() != 0 || sp.Count("n", 1).End("") != 0 {
		t.Error("disabled span is not inert")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want StorageMode
		ok   bool
	}{
		{"", ModeStream, true},
		{"stream", ModeStream, true},
		{"RING", ModeRing, true},
		{"both", ModeBoth, true},
		{"disk", ModeStream, false},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if ModeBoth.String() != "both" || StorageMode(9).String() != "mode(9)" {
		t.Errorf("mode names: %s %s", ModeBoth, StorageMode(9))
	}
}

func TestStreamTracerChromeArray(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	Begin(st, ScopePass, "lint", SpanContext{}).End("")
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	PointTo(st, ScopePass, "late", "", SpanContext{})
	if err := st.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("chrome output is not JSON: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 2 {
		t.Errorf("got %d events, want begin and end only", len(doc.TraceEvents))
	}
}

func TestHeartbeatTicksUntilStopped(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil || StartHeartbeat(NewRingTracer(4, LevelPhase), 0) != nil {
		t.Fatal("heartbeat started without a tracer or interval")
	}
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(5 * time.Second)
	for r.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	(*Heartbeat)(nil).Stop()

	n := r.Len()
	if n == 0 {
		t.Fatal("no heartbeat recorded")
	}
	snap := r.Snapshot()
	if snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Errorf("first event = %+v", snap[0])
	}
	time.Sleep(10 * time.Millisecond)
	if r.Len() != n {
		t.Error("heartbeat emitted after Stop")
	}
}
