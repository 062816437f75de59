package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	list := tm.Begin("list")
	tm.End(list, "3 files")
	scan := tm.Begin("scan")
	tm.End(scan, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("got %d phases", len(r.Phases))
	}
	if r.Phases[0].Name != "list" || r.Phases[0].Note != "3 files" {
		t.Fatalf("phase 0 = %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %f smaller than a phase", r.TotalMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "list", "// 3 files", "scan", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary misses %q:\n%s", want, s)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("got %+v", r)
	}
}
