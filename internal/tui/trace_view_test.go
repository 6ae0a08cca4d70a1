package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/natural"
)

// traceOf records the recursion trace of x * y.
func traceOf(t *testing.T, x, y uint64) *karatsuba.Trace {
	t.Helper()
	trace := karatsuba.NewTrace()
	_, _, err := karatsuba.MultiplyContext(context.Background(),
		natural.FromUint64(x), natural.FromUint64(y), karatsuba.Options{Trace: trace})
	if err != nil {
		t.Fatalf("MultiplyContext: %v", err)
	}
	return trace
}

func TestBuildRows(t *testing.T) {
	events := traceOf(t, 4, 100).Events()

	tests := []struct {
		name        string
		filter      Filter
		maxDepth    int
		limit       int
		wantRows    int
		wantOmitted int
	}{
		{"all events", FilterAll, 1, MaxTraceRows, 15, 0},
		{"root level only", FilterAll, 0, MaxTraceRows, 12, 0},
		{"splits", FilterSplits, 1, MaxTraceRows, 8, 0},
		{"base cases", FilterBases, 1, MaxTraceRows, 3, 0},
		{"base cases hidden by depth", FilterBases, 0, MaxTraceRows, 0, 0},
		{"combines", FilterCombines, 1, MaxTraceRows, 4, 0},
		{"limited", FilterAll, 1, 5, 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, omitted := buildRows(events, tt.filter, tt.maxDepth, tt.limit)
			if len(rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(rows), tt.wantRows)
			}
			if omitted != tt.wantOmitted {
				t.Errorf("omitted = %d, want %d", omitted, tt.wantOmitted)
			}
		})
	}
}

func TestBuildRows_KeepsEventKind(t *testing.T) {
	rows, _ := buildRows(traceOf(t, 4, 100).Events(), FilterBases, 1, MaxTraceRows)
	for _, r := range rows {
		if r.Kind != karatsuba.EventBase {
			t.Errorf("row %q has kind %v", r.Text, r.Kind)
		}
		if !strings.HasPrefix(r.Text, "  :: ") {
			t.Errorf("base row %q is not indented one level", r.Text)
		}
	}
}

func TestDepthProfile(t *testing.T) {
	tests := []struct {
		name string
		x, y uint64
		want []int
	}{
		{"base case", 3, 100, []int{1}},
		{"one level", 4, 100, []int{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DepthProfile(traceOf(t, tt.x, tt.y).Events())
			if len(got) != len(tt.want) {
				t.Fatalf("DepthProfile = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("DepthProfile = %v, want %v", got, tt.want)
				}
			}
		})
	}

	if got := DepthProfile(nil); len(got) != 0 {
		t.Errorf("DepthProfile(nil) = %v", got)
	}
}

func TestFilterCycle(t *testing.T) {
	f := FilterAll
	want := []Filter{FilterSplits, FilterBases, FilterCombines, FilterAll}
	for _, w := range want {
		f = f.Next()
		if f != w {
			t.Fatalf("Next() = %v, want %v", f, w)
		}
	}
	if FilterAll.String() != "all events" || FilterBases.String() != "base cases" {
		t.Error("unexpected filter names")
	}
}

func TestTraceModel_DepthLimits(t *testing.T) {
	tm := NewTraceModel()
	tm.SetSize(80, 20)
	tm.SetEvents(traceOf(t, 4, 100).Events())

	if tm.deepest != 1 || tm.maxDepth != 1 {
		t.Fatalf("deepest = %d, maxDepth = %d, want 1 and 1", tm.deepest, tm.maxDepth)
	}
	if tm.rows != 15 {
		t.Errorf("rows = %d, want 15", tm.rows)
	}

	tm.Deeper()
	if tm.maxDepth != 1 {
		t.Errorf("Deeper went past the deepest level: %d", tm.maxDepth)
	}
	tm.Shallower()
	tm.Shallower()
	if tm.maxDepth != 0 {
		t.Errorf("maxDepth = %d, want 0", tm.maxDepth)
	}
	if tm.rows != 12 {
		t.Errorf("rows = %d, want 12", tm.rows)
	}

	tm.CycleFilter()
	if tm.filter != FilterSplits || tm.rows != 8 {
		t.Errorf("filter = %v rows = %d, want splits and 8", tm.filter, tm.rows)
	}
}

func TestTraceModel_View(t *testing.T) {
	tm := NewTraceModel()
	tm.SetSize(80, 20)
	if view := tm.View(); !strings.Contains(view, "no trace events") {
		t.Errorf("empty view = %q", view)
	}

	tm.SetEvents(traceOf(t, 5, 6).Events())
	view := tm.View()
	for _, want := range []string{":: 5 * 6", "all events", "depth <= 1 of 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q:\n%s", want, view)
		}
	}
}
