package karatsuba

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/agbru/karatsuba/internal/natural"
)

// EventKind classifies a trace event.
type EventKind int

const (
	// EventSplit is emitted on entry to a recursive level, after the split.
	EventSplit EventKind = iota
	// EventBase is emitted by a level answered with a direct product.
	EventBase
	// EventCombine is emitted when a recursive level has combined its
	// sub-products.
	EventCombine
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSplit:
		return "split"
	case EventBase:
		return "base"
	case EventCombine:
		return "combine"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one observation of the recursion. Which fields are set depends
// on Kind: split events carry the decomposition, base events the direct
// product, combine events the three sub-products and the result.
type Event struct {
	Kind  EventKind
	Depth int

	// X and Y are the operands after ordering (X ≤ Y).
	X, Y natural.Natural
	// B is the split width.
	B uint

	X0, X1, Y0, Y1 natural.Natural
	Z0, Z1, Z2     natural.Natural
	Result         natural.Natural
}

// MaxTraceBits is the largest smaller-operand bit length that may be traced.
// A trace holds about 3^log2(bits) events.
const MaxTraceBits = 1024

// TraceSizeError reports operands too large to trace.
type TraceSizeError struct {
	// Bits is the bit length of the smaller operand.
	Bits int
}

// Error returns a formatted message naming the operand size and the limit.
func (e TraceSizeError) Error() string {
	return fmt.Sprintf("cannot trace a %d-bit operand: traces are limited to %d bits", e.Bits, MaxTraceBits)
}

// CheckTraceSize returns a TraceSizeError when the smaller of x and y is
// longer than MaxTraceBits.
func CheckTraceSize(x, y natural.Natural) error {
	if bits := min(x.BitLen(), y.BitLen()); bits > MaxTraceBits {
		return TraceSizeError{Bits: bits}
	}
	return nil
}

// Trace collects events from one or more multiplications. Events of a
// single multiplication are stored contiguously in pre-order (the order
// of recursion entry), independent of parallel scheduling.
type Trace struct {
	mu     sync.Mutex
	events []Event
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

func (t *Trace) append(events []Event) {
	t.mu.Lock()
	t.events = append(t.events, events...)
	t.mu.Unlock()
}

// Events returns a copy of the collected events.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len returns the number of collected events.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Lines renders the trace as indented text, two spaces per recursion
// level. Operands of a split are shown in binary, padded to the bit length
// of the smaller operand (x, y), the split width (x0, y0) and the remaining
// width (x1, y1).
func (t *Trace) Lines() []string {
	var lines []string
	for _, e := range t.Events() {
		lines = append(lines, e.Lines()...)
	}
	return lines
}

// Lines renders a single event.
func (e Event) Lines() []string {
	pad := strings.Repeat("  ", e.Depth)
	switch e.Kind {
	case EventBase:
		return []string{fmt.Sprintf("%s:: %s * %s = %s", pad, e.X, e.Y, e.Result)}

	case EventSplit:
		l := e.X.BitLen()
		b := int(e.B)
		rest := l - b
		return []string{
			fmt.Sprintf("%s:: %s * %s", pad, e.X, e.Y),
			fmt.Sprintf("%s b = %d", pad, e.B),
			fmt.Sprintf("%s x = %s", pad, e.X.Binary(l)),
			fmt.Sprintf("%s  x0 = %s", pad, e.X0.Binary(b)),
			fmt.Sprintf("%s  x1 = %s", pad, e.X1.Binary(rest)),
			fmt.Sprintf("%s y = %s", pad, e.Y.Binary(l)),
			fmt.Sprintf("%s  y0 = %s", pad, e.Y0.Binary(b)),
			fmt.Sprintf("%s  y1 = %s", pad, e.Y1.Binary(rest)),
		}

	case EventCombine:
		return []string{
			fmt.Sprintf("%s z0 = %s", pad, e.Z0),
			fmt.Sprintf("%s z1 = %s", pad, e.Z1),
			fmt.Sprintf("%s z2 = %s", pad, e.Z2),
			fmt.Sprintf("%s= %s", pad, e.Result),
		}
	}
	return nil
}

// WriteText writes the rendered trace to w, one line per row.
func (t *Trace) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
