package orchestration

import (
	"testing"
	"time"

	"github.com/agbru/karatsuba/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	tests := []struct {
		runs      int
		wantNil   bool
		wantMulti bool
	}{
		{-1, true, false},
		{0, true, false},
		{1, false, false},
		{3, false, true},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.runs)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) = %v, wantNil %v", tt.runs, agg, tt.wantNil)
			continue
		}
		if agg == nil {
			continue
		}
		if agg.NumRuns() != tt.runs || agg.IsMultiRun() != tt.wantMulti {
			t.Errorf("runs=%d: NumRuns()=%d IsMultiRun()=%v", tt.runs, agg.NumRuns(), agg.IsMultiRun())
		}
	}
}

// The karatsuba, schoolbook and textbook runs of an "all" comparison report
// independently; the aggregate is their mean.
func TestProgressAggregator_AveragesRuns(t *testing.T) {
	agg := NewProgressAggregator(3)
	steps := []struct {
		update progress.ProgressUpdate
		want   float64
	}{
		{progress.ProgressUpdate{RunIndex: 1, Value: 1}, 1.0 / 3},
		{progress.ProgressUpdate{RunIndex: 0, Value: 0.5}, 0.5},
		{progress.ProgressUpdate{RunIndex: 2, Value: 0.5}, 2.0 / 3},
		{progress.ProgressUpdate{RunIndex: 5, Value: 1}, 2.0 / 3},
		{progress.ProgressUpdate{RunIndex: 0, Value: 1}, 5.0 / 6},
	}
	for i, s := range steps {
		ap := agg.Update(s.update)
		if ap.RunIndex != s.update.RunIndex || ap.Value != s.update.Value {
			t.Errorf("step %d echoed %+v", i, ap)
		}
		if diff := ap.AverageProgress - s.want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("step %d: AverageProgress = %v, want %v", i, ap.AverageProgress, s.want)
		}
		if agg.CalculateAverage() != ap.AverageProgress {
			t.Errorf("step %d: CalculateAverage disagrees with Update", i)
		}
	}
}

func TestProgressAggregator_ETA(t *testing.T) {
	agg := NewProgressAggregator(1)
	if eta := agg.GetETA(); eta != 0 {
		t.Errorf("ETA before any update = %v, want 0", eta)
	}
	if ap := agg.Update(progress.ProgressUpdate{Value: 1}); ap.ETA != 0 {
		t.Errorf("ETA of a finished run = %v, want 0", ap.ETA)
	}
	if eta := agg.GetETA(); eta < 0 || eta > 24*time.Hour {
		t.Errorf("ETA out of range: %v", eta)
	}
}

func TestDrainChannel(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		ch := make(chan progress.ProgressUpdate, n)
		for i := range n {
			ch <- progress.ProgressUpdate{Value: float64(i) / 4}
		}
		close(ch)
		DrainChannel(ch)
		if len(ch) != 0 {
			t.Errorf("n=%d: %d updates left", n, len(ch))
		}
	}
}
