// Package calibration measures the parallel threshold of the recursive
// multiplier on the current machine and caches the result in a JSON
// profile.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agbru/karatsuba/internal/config"
	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/orchestration"
	"github.com/agbru/karatsuba/internal/progress"
)

const (
	// CalibrationAlgorithm is the multiplier whose threshold is measured.
	CalibrationAlgorithm = "karatsuba"
	// FullCalibrationBits is the operand size of --calibrate.
	FullCalibrationBits = 8192
	// QuickCalibrationBits is the operand size of --auto-calibrate.
	QuickCalibrationBits = 2048

	fullRepeats     = 3
	calibrationSeed = 0x6b617261
)

// errMismatch reports a threshold whose product differs from the others.
var errMismatch = errors.New("product differs from the other thresholds")

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// benchmarkThresholds multiplies two random bits-bit operands once per
// repeat for every threshold and keeps the fastest duration of each.
// report, when non-nil, receives the completed fraction. Only a context
// error aborts the benchmark.
func benchmarkThresholds(ctx context.Context, m multiplier.Multiplier, bits int, thresholds []int, repeats int, report func(float64)) ([]calibrationResult, error) {
	r := rand.New(rand.NewPCG(calibrationSeed, uint64(bits)))
	x, y := natural.Random(r, bits), natural.Random(r, bits)

	repeats = max(repeats, 1)
	total := float64(len(thresholds) * repeats)
	done := 0

	var reference natural.Natural
	haveReference := false
	results := make([]calibrationResult, 0, len(thresholds))

	for _, th := range thresholds {
		res := calibrationResult{Threshold: th}
		for range repeats {
			start := time.Now()
			out, err := m.Multiply(ctx, x, y, multiplier.Options{ParallelThreshold: th})
			elapsed := time.Since(start)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return results, ctxErr
			}
			done++
			if report != nil {
				report(float64(done) / total)
			}
			if err != nil {
				res.Err = err
				continue
			}
			if !haveReference {
				reference, haveReference = out.Product, true
			} else if !out.Product.Equal(reference) {
				res.Err = errMismatch
				continue
			}
			if res.Duration == 0 || elapsed < res.Duration {
				res.Duration = elapsed
			}
		}
		log.Debug().Int("threshold", th).Dur("duration", res.Duration).Err(res.Err).Msg("calibration sample")
		results = append(results, res)
	}
	return results, nil
}

// bestThreshold returns the fastest successful threshold. Ties go to the
// earlier candidate.
func bestThreshold(results []calibrationResult) (int, bool) {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.Duration < results[best].Duration {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return results[best].Threshold, true
}

func newProfileFromResults(results []calibrationResult, best, bits int, elapsed time.Duration) *CalibrationProfile {
	p := NewProfile()
	p.OptimalParallelThreshold = best
	p.CalibrationBits = bits
	p.CalibrationTime = elapsed.Round(time.Millisecond).String()
	for _, r := range results {
		if r.Err == nil {
			p.Measurements = append(p.Measurements, Measurement{Threshold: r.Threshold, Duration: r.Duration})
		}
	}
	return p
}

// RunCalibration runs the full calibration, prints the summary table and
// saves the profile.
//
// Parameters:
//   - ctx: Cancels the benchmark.
//   - out: Destination of progress and results.
//   - profilePath: Where to save the profile; "" selects the default path.
//   - multipliers: The registered multipliers; CalibrationAlgorithm is used.
//   - reporter: Displays the benchmark progress.
//   - colors: Colors for error output.
//
// Returns:
//   - int: The process exit code.
func RunCalibration(ctx context.Context, out io.Writer, profilePath string, multipliers map[string]multiplier.Multiplier, reporter orchestration.ProgressReporterFunc, colors apperrors.ColorProvider) int {
	m, ok := multipliers[CalibrationAlgorithm]
	if !ok {
		return apperrors.HandleCalculationError(
			apperrors.NewConfigError("calibration needs the %q multiplier", CalibrationAlgorithm), 0, out, colors)
	}

	thresholds := GenerateParallelThresholds()
	fmt.Fprintf(out, "--- Calibration: %d thresholds on %d-bit operands ---\n", len(thresholds), FullCalibrationBits)

	progressChan := make(chan progress.ProgressUpdate, len(thresholds)*fullRepeats)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter(&wg, progressChan, 1, out)

	start := time.Now()
	results, err := benchmarkThresholds(ctx, m, FullCalibrationBits, thresholds, fullRepeats, progress.ChannelReporter(progressChan, 0))
	close(progressChan)
	wg.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return apperrors.HandleCalculationError(err, elapsed, out, colors)
	}

	best, ok := bestThreshold(results)
	printCalibrationResults(out, results, best)
	if !ok {
		fmt.Fprintf(out, "%sEvery threshold failed; no profile saved.%s\n", colors.Red(), colors.Reset())
		return apperrors.ExitErrorGeneric
	}

	path := resolveProfilePath(profilePath)
	if err := newProfileFromResults(results, best, FullCalibrationBits, elapsed).SaveProfile(path); err != nil {
		fmt.Fprintf(out, "%sWarning: %v%s\n", colors.Yellow(), err, colors.Reset())
	} else {
		fmt.Fprintf(out, "Profile saved to %s\n", path)
	}
	fmt.Fprintf(out, "Recommended: --threshold %d\n", best)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs the quick calibration and returns cfg with the
// measured threshold. The quick measurement is not saved, so it never
// replaces the profile of a full calibration. It returns false, and cfg
// unchanged, when no threshold could be measured.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, multipliers map[string]multiplier.Multiplier) (config.AppConfig, bool) {
	m, ok := multipliers[CalibrationAlgorithm]
	if !ok {
		return cfg, false
	}
	results, err := benchmarkThresholds(ctx, m, QuickCalibrationBits, GenerateQuickParallelThresholds(), 1, nil)
	if err != nil {
		log.Warn().Err(err).Msg("auto-calibration interrupted")
		return cfg, false
	}
	best, ok := bestThreshold(results)
	if !ok {
		log.Warn().Msg("auto-calibration measured no threshold")
		return cfg, false
	}
	cfg.Threshold = best
	printCalibrationOutput(cfg, out)
	return cfg, true
}

// LoadCachedCalibration fills a zero threshold of cfg from the profile at
// path ("" selects the default path). It returns false when there is no
// valid, fresh profile.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	p, err := loadProfile(resolveProfilePath(path))
	if err != nil {
		return cfg, false
	}
	if !p.IsValid() || p.IsStale(MaxProfileAge) {
		log.Debug().Str("profile", p.String()).Msg("ignoring calibration profile")
		return cfg, false
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = p.OptimalParallelThreshold
	}
	return cfg, true
}
