// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/orchestration"
	"github.com/agbru/karatsuba/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the product (empty for no file output).
	OutputFile string
	// Quiet prints only the product.
	Quiet bool
	// Verbose shows the full product value.
	Verbose bool
	// Details shows the recursion statistics.
	Details bool
	// ShowValue enables the product display.
	ShowValue bool
}

// WriteResultToFile writes the operands and product of a run to a file,
// creating parent directories as needed. It does nothing when
// config.OutputFile is empty.
//
// Parameters:
//   - x, y: The operands.
//   - result: The run whose product is written.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(x, y natural.Natural, result orchestration.CalculationResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Karatsuba Multiplication Result\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Algorithm: %s\n", result.Name)
	fmt.Fprintf(w, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(w, "# Operand bits: %d x %d\n", x.BitLen(), y.BitLen())
	fmt.Fprintf(w, "# Product bits: %d\n", result.Product.BitLen())
	fmt.Fprintf(w, "# Recursive calls: %d\n", result.Stats.Calls)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "x =\n%s\n", x)
	fmt.Fprintf(w, "y =\n%s\n", y)
	fmt.Fprintf(w, "x * y =\n%s\n", result.Product)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}

// FormatQuietResult formats a product for quiet mode: the bare decimal
// value, suitable for scripting.
func FormatQuietResult(product natural.Natural) string {
	return product.String()
}

// DisplayQuietResult prints a product in quiet mode.
func DisplayQuietResult(out io.Writer, product natural.Natural) {
	fmt.Fprintln(out, FormatQuietResult(product))
}

// DisplayResultWithConfig displays a run according to config and saves it
// to config.OutputFile when set.
//
// Parameters:
//   - out: The output writer.
//   - x, y: The operands.
//   - result: The run to display.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, x, y natural.Natural, result orchestration.CalculationResult, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result.Product)
	} else {
		DisplayResult(result, orchestration.PresentationOptions{
			XBits:     x.BitLen(),
			YBits:     y.BitLen(),
			Verbose:   config.Verbose,
			Details:   config.Details,
			ShowValue: config.ShowValue,
		}, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(x, y, result, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
