package pipeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimingsSum(t *testing.T) {
	var tm Timings
	if tm.Has(StageLint) || tm.Sum() != 0 {
		t.Fatal("zero timings not empty")
	}
	tm.Set(StageRestore, 2*time.Millisecond)
	tm.Set(StageLint, 3*time.Millisecond)
	if got := tm.Sum(); got != 5*time.Millisecond {
		t.Errorf("Sum() = %v", got)
	}
	if got := tm.Sum(StageLint, StageSave); got != 3*time.Millisecond {
		t.Errorf("Sum(lint, save) = %v", got)
	}
}

func TestNormalizeFiles(t *testing.T) {
	base := t.TempDir()
	files := []string{
		filepath.Join(base, "b.hgb"),
		filepath.Join(base, "sub", "a.hgb"),
		filepath.Join(base, "b.hgb"),
		"",
	}
	want := []string{"b.hgb", "sub/a.hgb"}
	if diff := cmp.Diff(want, NormalizeFiles(files, base)); diff != "" {
		t.Errorf("NormalizeFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderAndEmit(t *testing.T) {
	var r Recorder
	EmitQueued(&r, []string{"a", "b"})
	Emit(nil, Event{File: "ignored"})
	Emit(&r, Event{File: "a", Stage: StageLint, Status: StatusDone})
	got := r.Events()
	if len(got) != 3 || got[2].Stage != StageLint || got[0].Status != StatusQueued {
		t.Fatalf("events = %+v", got)
	}
}
