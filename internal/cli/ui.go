//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/karatsuba/internal/format"
	"github.com/agbru/karatsuba/internal/orchestration"
	"github.com/agbru/karatsuba/internal/progress"
	"github.com/agbru/karatsuba/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a product is truncated
	// in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// product.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the averaged progress of numRuns
// concurrent multiplications and an ETA. It consumes progressChan until it
// is closed and calls wg.Done when finished.
//
// Parameters:
//   - wg: The WaitGroup to signal on completion.
//   - progressChan: The channel receiving progress updates.
//   - numRuns: The number of runs being tracked.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	label := "Multiplying"
	if agg.IsMultiRun() {
		label = fmt.Sprintf("Comparing %d multipliers", numRuns)
	}
	render := func(avg float64, eta time.Duration) string {
		return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}
	s.UpdateSuffix(render(0, 0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(render(1, 0))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(render(agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

// DisplayResult prints the product of a run. The value itself is shown only
// with showValue, truncated around an ellipsis unless verbose is set;
// details adds the recursion statistics.
//
// Parameters:
//   - result: The run to display.
//   - opts: Operand sizes and display switches.
//   - out: The output writer.
func DisplayResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	product := result.Product
	fmt.Fprintf(out, "Product binary size: %s%s%s bits (%d x %d).\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(product.BitLen())), ui.ColorReset(), opts.XBits, opts.YBits)

	if opts.Details {
		digits := product.String()
		fmt.Fprintf(out, "\n%s--- Detailed product analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits        : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(digits))), ui.ColorReset())
		DisplayStats(result, out)
	}

	if !opts.ShowValue {
		return
	}
	digits := product.String()
	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	if !opts.Verbose && len(digits) > TruncationLimit {
		fmt.Fprintf(out, "x * y = %s%s%s (truncated)\n", ui.ColorGreen(), format.TruncateDigits(digits, DisplayEdges), ui.ColorReset())
		fmt.Fprintf(out, "%sTip: use --verbose to print the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "x * y = %s%s%s\n", ui.ColorGreen(), format.FormatNumberString(digits), ui.ColorReset())
}

// DisplayStats prints the shape of the recursion tree of a run.
func DisplayStats(result orchestration.CalculationResult, out io.Writer) {
	st := result.Stats
	fmt.Fprintf(out, "Recursive calls         : %s%d%s\n", ui.ColorCyan(), st.Calls, ui.ColorReset())
	fmt.Fprintf(out, "Base cases              : %s%d%s\n", ui.ColorCyan(), st.BaseCases, ui.ColorReset())
	fmt.Fprintf(out, "Parallel forks          : %s%d%s\n", ui.ColorCyan(), st.Forks, ui.ColorReset())
	fmt.Fprintf(out, "Maximum depth           : %s%d%s\n", ui.ColorCyan(), st.MaxDepth, ui.ColorReset())
}

// DisplayTrace prints the recursion trace of a run, if it has one.
func DisplayTrace(result orchestration.CalculationResult, out io.Writer) error {
	if result.Trace == nil {
		return nil
	}
	fmt.Fprintf(out, "\n%s--- Recursion trace (%s) ---%s\n", ui.ColorBold(), result.Name, ui.ColorReset())
	return result.Trace.WriteText(out)
}
