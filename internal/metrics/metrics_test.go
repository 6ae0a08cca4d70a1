package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/karatsuba/internal/karatsuba"
)

func TestRecordRun(t *testing.T) {
	t.Parallel()
	m := New()

	m.RecordRun("karatsuba", 3*time.Millisecond, karatsuba.Stats{Calls: 40, BaseCases: 27, Forks: 2, MaxDepth: 3}, nil)
	m.RecordRun("karatsuba", time.Millisecond, karatsuba.Stats{}, errors.New("boom"))

	if got := testutil.ToFloat64(m.runs.WithLabelValues("karatsuba", StatusSuccess)); got != 1 {
		t.Errorf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("karatsuba", StatusError)); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.calls.WithLabelValues("karatsuba")); got != 40 {
		t.Errorf("calls = %v, want 40", got)
	}
	if got := testutil.ToFloat64(m.maxDepth.WithLabelValues("karatsuba")); got != 3 {
		t.Errorf("max depth = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestRecordOperandsAndMemory(t *testing.T) {
	t.Parallel()
	m := New()
	m.RecordOperands(4, 4096)
	m.RecordMemory(MemorySnapshot{HeapAlloc: 2048, HeapObjects: 10, PauseTotalNs: uint64(time.Second)})

	if got := testutil.ToFloat64(m.operandBits.WithLabelValues("y")); got != 4096 {
		t.Errorf("y bits = %v", got)
	}
	if got := testutil.ToFloat64(m.heapAlloc); got != 2048 {
		t.Errorf("heap alloc = %v", got)
	}
	if got := testutil.ToFloat64(m.gcPauseTotal); got != 1 {
		t.Errorf("gc pause = %v", got)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	t.Parallel()
	a, b := New(), New()
	a.RecordRun("schoolbook", time.Microsecond, karatsuba.Stats{Calls: 1}, nil)
	if got := testutil.ToFloat64(b.runs.WithLabelValues("schoolbook", StatusSuccess)); got != 0 {
		t.Errorf("second instance saw %v runs", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	m := New()
	m.RecordRun("textbook", time.Millisecond, karatsuba.Stats{Calls: 4, BaseCases: 3, MaxDepth: 1}, nil)

	path := filepath.Join(t.TempDir(), "karatsuba.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, name := range []string{
		"karatsuba_multiplications_total",
		"karatsuba_recursion_calls",
		"go_goroutines",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("textfile missing %s", name)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	t.Parallel()
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
