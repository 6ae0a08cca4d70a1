package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/metrics"
	"github.com/agbru/karatsuba/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.CalculationResult{
		{Name: "karatsuba", Duration: 1500 * time.Microsecond, Stats: karatsuba.Stats{Calls: 1093}},
		{Name: "schoolbook", Duration: 0, Stats: karatsuba.Stats{Calls: 1}},
		{Name: "textbook", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}
	header := lines[1]
	statusCol := strings.Index(header, "Status")
	for _, row := range lines[2:] {
		// Status cells start in the same column as the header.
		if idx := strings.IndexAny(row, "✅❌"); idx < 0 || len([]rune(row[:idx])) != statusCol {
			t.Errorf("misaligned row %q (status at byte %d, header at %d)", row, idx, statusCol)
		}
	}
	for _, want := range []string{"1,093", "< 1µs", "Failure (boom)", "✅ Success"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table should contain %q:\n%s", want, buf.String())
		}
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"config", apperrors.NewConfigError("bad"), apperrors.ExitErrorConfig},
		{"other", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, TotalAlloc: 3 << 20, NumGC: 4, PauseTotalNs: 1_500_000}, &buf)
	for _, want := range []string{"2.0 KiB", "3.0 MiB", "GC cycles:       4", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, buf.String())
		}
	}
}

func TestCLIColorProvider(t *testing.T) {
	t.Parallel()
	var p apperrors.ColorProvider = CLIColorProvider{}
	if p.Red()+p.Yellow()+p.Reset() != "" {
		t.Error("colors should be empty while the no-color theme is active")
	}
}
