package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/logging"
	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per run so that a slow
// display rarely causes updates to be dropped.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/karatsuba/internal/orchestration"

// ExecuteMultiplications runs every multiplier on x and y concurrently and
// collects their results in input order. A failing run does not cancel the
// others.
//
// Each run gets an OpenTelemetry span carrying the operand sizes and the
// recursion statistics, and is reported to recorder when it is non-nil.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - multipliers: The multipliers to run.
//   - x, y: The operands.
//   - opts: Options passed to every multiplier. Its Progress field is
//     replaced by a per-run channel reporter.
//   - reporter: Displays progress; use NullProgressReporter for quiet mode.
//   - recorder: Receives every run outcome; may be nil.
//   - out: The writer for progress output.
//
// Returns:
//   - []CalculationResult: One result per multiplier, in input order.
func ExecuteMultiplications(ctx context.Context, multipliers []multiplier.Multiplier, x, y natural.Natural, opts multiplier.Options, reporter ProgressReporter, recorder RunRecorder, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(multipliers))
	progressChan := make(chan progress.ProgressUpdate, len(multipliers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(multipliers), out)

	tracer := otel.Tracer(tracerName)
	for i, m := range multipliers {
		g.Go(func() error {
			runOpts := opts
			runOpts.Progress = progress.ChannelReporter(progressChan, i)
			results[i] = runOne(ctx, tracer, m, x, y, runOpts)
			if recorder != nil {
				recorder.RecordRun(results[i].Name, results[i].Duration, results[i].Stats, results[i].Err)
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runOne(ctx context.Context, tracer trace.Tracer, m multiplier.Multiplier, x, y natural.Natural, opts multiplier.Options) CalculationResult {
	ctx, span := tracer.Start(ctx, "multiply", trace.WithAttributes(
		attribute.String("algorithm", m.Name()),
		attribute.Int("x.bits", x.BitLen()),
		attribute.Int("y.bits", y.BitLen()),
		attribute.Int("parallel.threshold", opts.ParallelThreshold),
	))
	defer span.End()

	start := time.Now()
	res, err := m.Multiply(ctx, x, y, opts)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if opts.Logger != nil {
			opts.Logger.Error("multiplication failed", err,
				logging.String("algorithm", m.Name()),
				logging.Duration("duration", duration))
		}
		return CalculationResult{Name: m.Name(), Duration: duration, Err: err}
	}
	if opts.Logger != nil {
		opts.Logger.Info("multiplication finished",
			logging.String("algorithm", m.Name()),
			logging.Duration("duration", duration),
			logging.Int("product_bits", res.Product.BitLen()))
	}

	span.SetAttributes(
		attribute.Int64("recursion.calls", res.Stats.Calls),
		attribute.Int64("recursion.base_cases", res.Stats.BaseCases),
		attribute.Int64("recursion.forks", res.Stats.Forks),
		attribute.Int("recursion.max_depth", res.Stats.MaxDepth),
	)
	span.SetStatus(codes.Ok, "")
	return CalculationResult{
		Name:     m.Name(),
		Product:  res.Product,
		Stats:    res.Stats,
		Trace:    res.Trace,
		Duration: duration,
	}
}

// AnalyzeComparisonResults sorts results by duration (successes first),
// checks that all successful products agree and presents the comparison.
//
// Parameters:
//   - results: The run results to analyze; sorted in place.
//   - opts: Presentation options for the final result.
//   - presenter: Formats the table and the result.
//   - errHandler: Maps the first error to an exit code when every run failed.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: apperrors.ExitSuccess, apperrors.ExitErrorMismatch, or the code
//     chosen by errHandler.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the multiplication.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !res.Product.Equal(firstValid.Product) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The algorithms produced different products.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
