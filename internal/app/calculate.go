package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/agbru/karatsuba/internal/cli"
	"github.com/agbru/karatsuba/internal/config"
	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/format"
	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/logging"
	"github.com/agbru/karatsuba/internal/metrics"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/orchestration"
	"github.com/agbru/karatsuba/internal/ui"
)

// checkTraceSize rejects --trace and --tui runs whose trace would not fit
// in memory or on screen.
func checkTraceSize(x, y natural.Natural) error {
	if err := karatsuba.CheckTraceSize(x, y); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// runCalculate orchestrates the execution of the CLI multiplication.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	colors := cli.CLIColorProvider{}
	x, y, err := a.Config.Operands()
	if err == nil && a.Config.Trace {
		err = checkTraceSize(x, y)
	}
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, colors)
	}

	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(x, y, out); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	multipliers := orchestration.GetMultipliersToRun(a.Config.Algo, a.Factory)
	if len(multipliers) == 0 {
		return apperrors.HandleCalculationError(apperrors.NewConfigError("no multiplier named %q", a.Config.Algo), 0, a.ErrWriter, colors)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, x.BitLen(), y.BitLen(), out)
		cli.PrintExecutionMode(multipliers, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	var m *metrics.Metrics
	var recorder orchestration.RunRecorder
	if a.Config.MetricsOut != "" {
		m = metrics.New()
		m.RecordOperands(x.BitLen(), y.BitLen())
		recorder = m
	}

	opts := a.Config.ToMultiplierOptions()
	if a.Config.Verbose {
		opts.Logger = logging.NewZerologAdapter(log.Logger)
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := orchestration.ExecuteMultiplications(ctx, multipliers, x, y, opts, progressReporter, recorder, progressOut)
	after := collector.Snapshot()

	exitCode := a.analyzeResultsWithOutput(x, y, results, out)

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(after.Delta(before), out)
	}
	if m != nil {
		m.RecordMemory(after)
		if err := m.WriteTextfile(a.Config.MetricsOut); err != nil {
			fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}
	return exitCode
}

// validateMemoryBudget checks that the estimated footprint of the product
// fits within --memory-limit.
func (a *Application) validateMemoryBudget(x, y natural.Natural, out io.Writer) int {
	limit, err := config.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}
	est := metrics.EstimateProductBytes(x.BitLen(), y.BitLen())
	if est > limit {
		return apperrors.HandleCalculationError(apperrors.MemoryError{Requested: est, Limit: limit}, 0, out, cli.CLIColorProvider{})
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n", format.FormatBytes(est), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		ShowValue:  a.Config.ShowValue,
	}
}

func (a *Application) analyzeResultsWithOutput(x, y natural.Natural, results []orchestration.CalculationResult, out io.Writer) int {
	outputCfg := a.outputConfig()

	if outputCfg.Quiet {
		return a.quietResult(x, y, results, outputCfg, out)
	}

	presOpts := orchestration.PresentationOptions{
		XBits:     x.BitLen(),
		YBits:     y.BitLen(),
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	if a.Config.Trace {
		if traced := findTracedResult(results); traced != nil {
			if err := cli.DisplayTrace(*traced, out); err != nil {
				fmt.Fprintf(a.ErrWriter, "Error writing trace: %v\n", err)
				return apperrors.ExitErrorGeneric
			}
		}
	}

	if best := findBestResult(results); best != nil && outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(x, y, *best, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// quietResult prints only the product of the fastest run. Disagreeing
// runs and failures are still reported, on ErrWriter.
func (a *Application) quietResult(x, y natural.Natural, results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	best := findBestResult(results)
	if best == nil {
		var firstErr error
		for _, r := range results {
			if r.Err != nil {
				firstErr = r.Err
				break
			}
		}
		return apperrors.HandleCalculationError(firstErr, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	for _, r := range results {
		if r.Err == nil && !r.Product.Equal(best.Product) {
			fmt.Fprintf(a.ErrWriter, "Error: %s and %s produced different products\n", best.Name, r.Name)
			return apperrors.ExitErrorMismatch
		}
	}
	if err := cli.DisplayResultWithConfig(out, x, y, *best, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}

func findTracedResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	for i := range results {
		if results[i].Err == nil && results[i].Trace != nil {
			return &results[i]
		}
	}
	return nil
}
