package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/progress"
)

// CalculationResult is the outcome of one multiplier run. It is the domain
// type shared by the orchestration and presentation layers.
type CalculationResult struct {
	// Name is the registry key of the multiplier (e.g. "karatsuba").
	Name string
	// Product is x * y. It is the zero Natural if an error occurred.
	Product natural.Natural
	// Stats describes the recursion tree of the run.
	Stats karatsuba.Stats
	// Trace is the recursion trace, when one was requested.
	Trace *karatsuba.Trace
	// Duration is the time taken by the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	XBits     int
	YBits     int
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter displays progress while multipliers run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed and calls
	// wg.Done when finished.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from the runs.
	//   - numRuns: The number of concurrent runs being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. It is used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents run results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final product.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// RunRecorder receives the outcome of every run, typically to update
// metrics. *metrics.Metrics implements it.
type RunRecorder interface {
	RecordRun(algorithm string, d time.Duration, stats karatsuba.Stats, err error)
}
