// Package config defines the application configuration and parses it from
// command-line flags and KARATSUBA_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/natural"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "KARATSUBA_"

// Default values.
const (
	DefaultAlgo    = "karatsuba"
	DefaultTimeout = 5 * time.Minute
	DefaultSeed    = 1
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// X and Y are the operand texts, parsed in Base.
	X, Y string
	// Base is the input base of X and Y; 0 auto-detects 0b, 0o and 0x prefixes.
	Base int
	// XBits and YBits generate random operands of that bit length when X
	// or Y is empty.
	XBits, YBits int
	// Seed seeds the random operand generator.
	Seed uint64

	// Algo is a registered multiplier name or "all".
	Algo string
	// Threshold is the parallel threshold in bits; 0 means sequential.
	Threshold int
	// Timeout bounds the whole run.
	Timeout time.Duration

	Trace     bool
	TUI       bool
	Verbose   bool
	Details   bool
	Quiet     bool
	ShowValue bool
	NoColor   bool
	Version   bool

	// Interactive starts the read-eval-print session.
	Interactive bool
	// Completion names a shell to print a completion script for.
	Completion string

	OutputFile string
	MetricsOut string

	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	// MemoryLimit is a size such as "512M"; empty means unlimited.
	MemoryLimit string
}

// ToMultiplierOptions converts the configuration to per-run options.
func (c AppConfig) ToMultiplierOptions() multiplier.Options {
	return multiplier.Options{
		ParallelThreshold: c.Threshold,
		Trace:             c.Trace || c.TUI,
	}
}

// needsOperands reports whether the selected mode multiplies anything.
func (c AppConfig) needsOperands() bool {
	return !c.Calibrate && !c.Version && !c.Interactive && c.Completion == ""
}

// ParseConfig parses args into an AppConfig and validates it.
//
// Values are resolved with the priority: command-line flag, then
// KARATSUBA_* environment variable, then default. Thresholds still at 0
// afterwards are filled in later from a calibration profile or a hardware
// estimate.
//
// Parameters:
//   - programName: Name used in usage messages.
//   - args: The arguments without the program name.
//   - errWriter: Destination of usage and parse errors.
//   - availableAlgos: Registered multiplier names accepted by --algo.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.X, "x", "", "First operand (non-negative integer).")
	fs.StringVar(&cfg.Y, "y", "", "Second operand (non-negative integer).")
	fs.IntVar(&cfg.Base, "base", 0, "Input base of -x and -y (0 auto-detects 0b/0o/0x prefixes).")
	fs.IntVar(&cfg.XBits, "x-bits", 0, "Generate a random first operand with this many bits.")
	fs.IntVar(&cfg.YBits, "y-bits", 0, "Generate a random second operand with this many bits.")
	fs.Uint64Var(&cfg.Seed, "seed", DefaultSeed, "Seed of the random operand generator.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Multiplier to use: 'all' or one of %s.", strings.Join(availableAlgos, ", ")))
	fs.IntVar(&cfg.Threshold, "threshold", 0, "Operand size in bits from which sub-products run in parallel (0 = auto).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&cfg.Trace, "trace", false, "Print the recursion trace.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Explore the recursion trace interactively.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output, including debug logs.")
	fs.BoolVar(&cfg.Details, "d", false, "Show recursion statistics (shorthand).")
	fs.BoolVar(&cfg.Details, "details", false, "Show recursion statistics.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the product (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the product.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Show the full product (shorthand).")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Show the full product instead of a truncated one.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the product to this file (shorthand).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the product to this file.")
	fs.StringVar(&cfg.MetricsOut, "metrics-out", "", "Write Prometheus metrics in textfile format to this path.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Benchmark parallel thresholds and save a profile.")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration before multiplying.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "Refuse runs whose estimated memory exceeds this size (e.g. 512M, 8G).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Interactive mode (shorthand).")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start an interactive multiplication session.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Algo = strings.ToLower(strings.TrimSpace(cfg.Algo))

	if err := cfg.Validate(availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistent or out-of-range values.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.Base != 0 && (c.Base < 2 || c.Base > 62) {
		return apperrors.NewConfigError("base must be 0 or between 2 and 62, got %d", c.Base)
	}
	if c.Threshold < 0 {
		return apperrors.NewConfigError("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.XBits < 0 || c.YBits < 0 {
		return apperrors.NewConfigError("operand bit lengths must be non-negative")
	}
	if c.X != "" && c.XBits > 0 {
		return apperrors.NewConfigError("-x and --x-bits are mutually exclusive")
	}
	if c.Y != "" && c.YBits > 0 {
		return apperrors.NewConfigError("-y and --y-bits are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui are mutually exclusive")
	}
	if c.MemoryLimit != "" {
		if _, err := ParseMemoryLimit(c.MemoryLimit); err != nil {
			return apperrors.NewConfigError("%v", err)
		}
	}
	if c.needsOperands() {
		if c.X == "" && c.XBits == 0 {
			return apperrors.NewConfigError("missing first operand: use -x or --x-bits")
		}
		if c.Y == "" && c.YBits == 0 {
			return apperrors.NewConfigError("missing second operand: use -y or --y-bits")
		}
	}
	return nil
}

// Operands returns the operands described by the configuration: parsed from
// X and Y, or drawn from a generator seeded with Seed. Random operands are
// drawn x first, so a given seed always yields the same pair.
func (c AppConfig) Operands() (natural.Natural, natural.Natural, error) {
	r := rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	resolve := func(name, text string, bitLen int) (natural.Natural, error) {
		if text == "" {
			return natural.Random(r, bitLen), nil
		}
		n, err := natural.Parse(text, c.Base)
		if err != nil {
			return natural.Natural{}, apperrors.NewConfigError("operand %s: %v", name, err)
		}
		return n, nil
	}

	x, err := resolve("x", c.X, c.XBits)
	if err != nil {
		return natural.Natural{}, natural.Natural{}, err
	}
	y, err := resolve("y", c.Y, c.YBits)
	if err != nil {
		return natural.Natural{}, natural.Natural{}, err
	}
	return x, y, nil
}
