package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	end := tm.Track("restore")
	end("3 objects")
	idx := tm.Begin("lint")
	tm.End(idx, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("got %d phases", len(r.Phases))
	}
	if r.Phases[0].Name != "restore" || r.Phases[0].Note != "3 objects" {
		t.Errorf("phase 0 = %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %f below phase %f", r.TotalMS, r.Phases[0].DurationMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "restore", "// 3 objects", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("report = %+v", r)
	}
}
