package tui

import (
	"time"

	"github.com/agbru/karatsuba/internal/orchestration"
)

// ProgressMsg carries one progress update of a running multiplication.
type ProgressMsg struct {
	RunIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent when the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the results of every run, sorted by the
// orchestration.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg names the run whose product is reported.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling while multiplications run.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample and the system-wide usage
// measured at the same time.
type MemStatsMsg struct {
	CPUPercent    float64
	SysMemPercent float64

	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// CalculationCompleteMsg is sent when every run has finished.
type CalculationCompleteMsg struct {
	Results    []orchestration.CalculationResult
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context is canceled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
