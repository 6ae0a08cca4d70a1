package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/karatsuba/internal/config"
	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/ui"
)

// PrintExecutionConfig displays the operand sizes, the timeout, the
// environment and the parallel threshold of the run.
//
// Parameters:
//   - cfg: The application configuration.
//   - xBits: Bit length of the first operand.
//   - yBits: Bit length of the second operand.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, xBits, yBits int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Multiplying %s%d-bit%s by %s%d-bit%s operands with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), xBits, ui.ColorReset(), ui.ColorMagenta(), yBits, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())

	features := "none detected"
	if f := config.CPUFeatures(); len(f) > 0 {
		features = strings.Join(f, ", ")
	}
	fmt.Fprintf(out, "CPU features: %s%s%s.\n", ui.ColorCyan(), features, ui.ColorReset())

	if cfg.Threshold > 0 {
		fmt.Fprintf(out, "Parallel threshold: %s%d%s bits.\n", ui.ColorCyan(), cfg.Threshold, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Parallel threshold: %sdisabled%s (sequential recursion).\n", ui.ColorCyan(), ui.ColorReset())
	}
}

// PrintExecutionMode displays whether one multiplier runs or several are
// compared.
//
// Parameters:
//   - multipliers: The multipliers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(multipliers []multiplier.Multiplier, out io.Writer) {
	var modeDesc string
	if len(multipliers) > 1 {
		names := make([]string, len(multipliers))
		for i, m := range multipliers {
			names[i] = m.Name()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %s", strings.Join(names, ", "))
	} else {
		modeDesc = fmt.Sprintf("Single multiplication with the %s%s%s multiplier",
			ui.ColorGreen(), multipliers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
