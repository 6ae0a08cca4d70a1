package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/format"
	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/progress"
	"github.com/agbru/karatsuba/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// DefaultAlgo is the multiplier selected at start.
	DefaultAlgo string
	// Timeout bounds each multiplication.
	Timeout time.Duration
	// Threshold is the parallel threshold in bits.
	Threshold int
	// Base is the input base of operands; 0 auto-detects prefixes.
	Base int
	// HexOutput displays products in hexadecimal.
	HexOutput bool
	// Trace prints the recursion trace of each product.
	Trace bool
}

// REPL is an interactive multiplication session.
type REPL struct {
	config      REPLConfig
	registry    map[string]multiplier.Multiplier
	names       []string
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over the given multipliers.
//
// Parameters:
//   - registry: Available multipliers by name.
//   - config: Session configuration.
//
// Returns:
//   - *REPL: A new session reading stdin and writing stdout.
func NewREPL(registry map[string]multiplier.Multiplier, config REPLConfig) *REPL {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)

	currentAlgo := config.DefaultAlgo
	if _, ok := registry[currentAlgo]; !ok && len(names) > 0 {
		currentAlgo = names[0]
	}

	return &REPL{
		config:      config,
		registry:    registry,
		names:       names,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets the reader commands are read from.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets the writer output goes to.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"mul> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sKaratsuba Multiplier - Interactive Mode%s          %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smul <x> <y>%s     - Multiply with the current algorithm (also: x * y)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scompare <x> <y>%s - Compare all algorithms on x * y\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s     - Change algorithm (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.names, ", "))
	fmt.Fprintf(r.out, "  %slist%s            - List available algorithms\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %strace%s           - Toggle the recursion trace\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s             - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one input line. It returns false when the
// session should end.
func (r *REPL) processCommand(input string) bool {
	if x, y, ok := strings.Cut(input, "*"); ok {
		r.multiplyArgs([]string{strings.TrimSpace(x), strings.TrimSpace(y)})
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "mul", "m":
		r.multiplyArgs(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "trace":
		r.config.Trace = !r.config.Trace
		fmt.Fprintf(r.out, "Recursion trace: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Trace), ui.ColorReset())
	case "hex":
		r.config.HexOutput = !r.config.HexOutput
		fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), onOff(r.config.HexOutput), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// parseOperands parses exactly two operands from args.
func (r *REPL) parseOperands(usage string, args []string) (natural.Natural, natural.Natural, bool) {
	if len(args) != 2 || args[0] == "" || args[1] == "" {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return natural.Natural{}, natural.Natural{}, false
	}
	var ops [2]natural.Natural
	for i, a := range args {
		n, err := natural.Parse(a, r.config.Base)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid operand: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return natural.Natural{}, natural.Natural{}, false
		}
		ops[i] = n
	}
	return ops[0], ops[1], true
}

func (r *REPL) options() multiplier.Options {
	return multiplier.Options{ParallelThreshold: r.config.Threshold, Trace: r.config.Trace}
}

func (r *REPL) multiplyArgs(args []string) {
	x, y, ok := r.parseOperands("mul <x> <y>", args)
	if !ok {
		return
	}
	if r.config.Trace {
		if err := karatsuba.CheckTraceSize(x, y); err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %strace%s to turn the recursion trace off.\n", ui.ColorYellow(), ui.ColorReset())
			return
		}
	}
	m, ok := r.registry[r.currentAlgo]
	if !ok {
		fmt.Fprintf(r.out, "%sAlgorithm not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	progressChan := make(chan progress.ProgressUpdate, 10)
	opts := r.options()
	opts.Progress = progress.ChannelReporter(progressChan, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	res, err := m.Multiply(ctx, x, y, opts)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()
	err = r.timeoutError(m.Name(), err)

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:  %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:  %s%d%s\n", ui.ColorCyan(), res.Product.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Calls: %s%d%s (depth %d)\n", ui.ColorCyan(), res.Stats.Calls, ui.ColorReset(), res.Stats.MaxDepth)

	if r.config.HexOutput {
		fmt.Fprintf(r.out, "  x * y = %s0x%s%s\n", ui.ColorGreen(), res.Product.Text(16), ui.ColorReset())
	} else {
		digits := res.Product.String()
		if len(digits) > TruncationLimit {
			fmt.Fprintf(r.out, "  x * y = %s%s%s (truncated)\n", ui.ColorGreen(), format.TruncateDigits(digits, DisplayEdges), ui.ColorReset())
		} else {
			fmt.Fprintf(r.out, "  x * y = %s%s%s\n", ui.ColorGreen(), digits, ui.ColorReset())
		}
	}
	if res.Trace != nil {
		fmt.Fprintln(r.out)
		if err := res.Trace.WriteText(r.out); err != nil {
			fmt.Fprintf(r.out, "%sTrace error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		}
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdCompare(args []string) {
	x, y, ok := r.parseOperands("compare <x> <y>", args)
	if !ok {
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for a %d-bit by %d-bit product:%s\n", ui.ColorBold(), x.BitLen(), y.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	opts := r.options()
	opts.Trace = false
	var first *natural.Natural
	for _, name := range r.names {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		res, err := r.registry[name].Multiply(ctx, x, y, opts)
		duration := time.Since(start)
		cancel()
		err = r.timeoutError(name, err)

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if first == nil {
			p := res.Product
			first = &p
		}

		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !res.Product.Equal(*first) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(duration), ui.ColorReset(),
			status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.names, ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.names, ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.names {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:   %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Threshold:   %s%d%s bits\n", ui.ColorCyan(), r.config.Threshold, ui.ColorReset())
	fmt.Fprintf(r.out, "  Input base:  %s%d%s\n", ui.ColorCyan(), r.config.Base, ui.ColorReset())
	fmt.Fprintf(r.out, "  Trace:       %s%s%s\n", ui.ColorCyan(), onOff(r.config.Trace), ui.ColorReset())
	fmt.Fprintf(r.out, "  Hexadecimal: %s%s%s\n", ui.ColorCyan(), onOff(r.config.HexOutput), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// timeoutError replaces a deadline error with a TimeoutError naming the
// multiplier and the session time limit.
func (r *REPL) timeoutError(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: name, Limit: r.config.Timeout}
	}
	return err
}
