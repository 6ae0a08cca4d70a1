package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/orchestration"
)

func TestHeaderModel_Status(t *testing.T) {
	h := NewHeaderModel("v1.2.0", 4, 7)
	h.SetWidth(100)

	view := h.View()
	for _, want := range []string{"Karatsuba Trace Explorer v1.2.0", "4 x 7 bits", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q: %q", want, view)
		}
	}

	h.SetDone(true)
	if !strings.Contains(h.View(), "FAILED") {
		t.Error("failed header does not say FAILED")
	}
	frozen := h.Elapsed()
	time.Sleep(5 * time.Millisecond)
	if h.Elapsed() != frozen {
		t.Error("elapsed time kept running after SetDone")
	}

	h.Reset()
	if !strings.Contains(h.View(), "RUNNING") {
		t.Error("reset header does not say RUNNING")
	}
}

func TestHeaderModel_DevVersionHidden(t *testing.T) {
	h := NewHeaderModel("dev", 1, 1)
	h.SetWidth(100)
	if strings.Contains(h.View(), "dev") {
		t.Error("dev version shown in header")
	}
}

func TestStatsModel(t *testing.T) {
	s := NewStatsModel()
	s.SetSize(40, 30)
	if !strings.Contains(s.View(), "in progress") {
		t.Error("empty stats panel does not say in progress")
	}

	s.UpdateProgress(0.5)
	s.UpdateMemStats(MemStatsMsg{Alloc: 1 << 20, HeapSys: 4 << 20, NumGoroutine: 3})
	s.UpdateMemStats(MemStatsMsg{Alloc: 1 << 19, HeapSys: 4 << 20, NumGoroutine: 3, CPUPercent: 25, SysMemPercent: 60})
	if s.peakHeap != 1<<20 {
		t.Errorf("peakHeap = %d", s.peakHeap)
	}
	if got := s.heap.Last(); got != 50 {
		t.Errorf("last heap sample = %v, want 50", got)
	}
	if got := s.cpu.Last(); got != 25 {
		t.Errorf("last cpu sample = %v, want 25", got)
	}
	if !strings.Contains(s.View(), "CPU 25%  RAM 60%") {
		t.Error("stats view does not show system usage")
	}

	s.SetResult(orchestration.CalculationResult{
		Name:    "karatsuba",
		Product: natural.FromUint64(400),
		Trace:   traceOf(t, 4, 100),
	}, 0, 1)
	if len(s.profile) != 2 {
		t.Errorf("profile = %v", s.profile)
	}
	if !strings.Contains(s.View(), "karatsuba (1/1)") {
		t.Error("stats view does not name the run")
	}

	s.Reset()
	if s.result != nil || s.progress.Len() != 0 || s.heap.Len() != 0 {
		t.Error("Reset left state behind")
	}
}

func TestScaleCounts(t *testing.T) {
	got := scaleCounts([]int{1, 3, 9})
	want := []float64{100.0 / 9, 100.0 / 3, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scaleCounts()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	for _, v := range scaleCounts([]int{0, 0}) {
		if v != 0 {
			t.Error("scaleCounts of zeros is not zero")
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a rather long message", 10); got != "a rathe..." {
		t.Errorf("truncate = %q", got)
	}
}
