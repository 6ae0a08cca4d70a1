package karatsuba

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/agbru/karatsuba/internal/logging"
	"github.com/agbru/karatsuba/internal/natural"
)

// Multiply returns x * y using the default Options.
//
// It never fails: the background context is never canceled and the
// combination step cannot underflow for non-negative operands.
func Multiply(x, y natural.Natural) natural.Natural {
	p, _, err := MultiplyContext(context.Background(), x, y, Options{})
	if err != nil {
		panic(fmt.Sprintf("karatsuba: internal invariant violated: %v", err))
	}
	return p
}

// MultiplyContext returns x * y together with statistics about the
// recursion tree.
//
// The context is consulted before the recursion starts and at every fork
// point, so a sequential multiplication runs to completion once started.
// On error no partial product is returned.
//
// Parameters:
//   - ctx: The context for cancellation of parallel multiplications.
//   - x: The first operand.
//   - y: The second operand.
//   - opts: Split policy, parallelism and instrumentation.
//
// Returns:
//   - natural.Natural: The product x * y.
//   - Stats: Call, base-case, fork and depth counters.
//   - error: A context error, or a wrapped natural.ErrUnderflow if the
//     combination invariant were ever broken.
func MultiplyContext(ctx context.Context, x, y natural.Natural, opts Options) (natural.Natural, Stats, error) {
	if err := ctx.Err(); err != nil {
		return natural.Natural{}, Stats{}, err
	}

	s := &state{
		ctx:     ctx,
		opts:    opts,
		tracing: opts.Trace != nil,
	}
	if opts.Progress != nil {
		s.progress = newProgressTracker(opts.Progress)
	}

	product, events, err := s.mul(x, y, 0)
	stats := s.snapshot()
	if err != nil {
		return natural.Natural{}, stats, err
	}

	if s.tracing {
		opts.Trace.append(events)
	}
	if opts.Progress != nil {
		opts.Progress(1.0)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("karatsuba multiplication complete",
			logging.Int("x_bits", x.BitLen()),
			logging.Int("y_bits", y.BitLen()),
			logging.String("split", opts.Split.String()),
			logging.Int64("calls", stats.Calls),
			logging.Int64("base_cases", stats.BaseCases),
			logging.Int64("forks", stats.Forks),
			logging.Int("max_depth", stats.MaxDepth),
		)
	}
	return product, stats, nil
}

// MultiplyBig validates x and y and returns their product. Negative
// operands are rejected with a natural.InvalidOperandError before any
// recursion takes place.
func MultiplyBig(x, y *big.Int) (*big.Int, error) {
	nx, err := natural.FromBig(x)
	if err != nil {
		return nil, fmt.Errorf("operand x: %w", err)
	}
	ny, err := natural.FromBig(y)
	if err != nil {
		return nil, fmt.Errorf("operand y: %w", err)
	}
	return Multiply(nx, ny).Big(), nil
}

// MultiplySigned multiplies two signed integers. The magnitude comes from
// the recursive multiplier; the sign is the exclusive-or of the input signs.
// A nil operand is treated as 0.
func MultiplySigned(x, y *big.Int) *big.Int {
	if x == nil || y == nil {
		return new(big.Int)
	}
	mx, _ := natural.FromBig(new(big.Int).Abs(x))
	my, _ := natural.FromBig(new(big.Int).Abs(y))
	p := Multiply(mx, my).Big()
	if (x.Sign() < 0) != (y.Sign() < 0) {
		p.Neg(p)
	}
	return p
}

// state is shared by every level of one multiplication.
type state struct {
	ctx      context.Context
	opts     Options
	tracing  bool
	progress *progressTracker

	calls     atomic.Int64
	baseCases atomic.Int64
	forks     atomic.Int64
	maxDepth  atomic.Int64
}

func (s *state) snapshot() Stats {
	return Stats{
		Calls:     s.calls.Load(),
		BaseCases: s.baseCases.Load(),
		Forks:     s.forks.Load(),
		MaxDepth:  int(s.maxDepth.Load()),
	}
}

func (s *state) enter(depth int) {
	s.calls.Add(1)
	d := int64(depth)
	for {
		cur := s.maxDepth.Load()
		if d <= cur || s.maxDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

// mul is one recursion level. It returns the product and, when tracing,
// the events of its whole subtree in pre-order.
func (s *state) mul(x, y natural.Natural, depth int) (natural.Natural, []Event, error) {
	s.enter(depth)

	// Equal operands keep their order.
	if x.Cmp(y) > 0 {
		x, y = y, x
	}

	if x.BitLen() <= baseCaseBits {
		p := x.MulDirect(y)
		s.baseCases.Add(1)
		s.progress.complete(depth, true)
		if !s.tracing {
			return p, nil, nil
		}
		return p, []Event{{Kind: EventBase, Depth: depth, X: x, Y: y, Result: p}}, nil
	}

	b := s.opts.Split.width(x, y)
	x0, x1 := x.Low(b), x.High(b)
	y0, y1 := y.Low(b), y.High(b)

	var events []Event
	if s.tracing {
		events = append(events, Event{
			Kind: EventSplit, Depth: depth, X: x, Y: y, B: b,
			X0: x0, X1: x1, Y0: y0, Y1: y1,
		})
	}

	subs, err := s.subProducts([3]operandPair{
		{x1, y1},
		{x0, y0},
		{x1.Add(x0), y1.Add(y0)},
	}, depth+1, x.BitLen())
	if err != nil {
		return natural.Natural{}, nil, err
	}
	z2, z0, z3 := subs[0].product, subs[1].product, subs[2].product

	t, err := z3.Sub(z2)
	if err != nil {
		return natural.Natural{}, nil, fmt.Errorf("karatsuba: z3 - z2 at depth %d: %w", depth, err)
	}
	z1, err := t.Sub(z0)
	if err != nil {
		return natural.Natural{}, nil, fmt.Errorf("karatsuba: z3 - z2 - z0 at depth %d: %w", depth, err)
	}

	result := z0.Add(z1.Lsh(b)).Add(z2.Lsh(2 * b))
	s.progress.complete(depth, false)

	if s.tracing {
		for _, sub := range subs {
			events = append(events, sub.events...)
		}
		events = append(events, Event{
			Kind: EventCombine, Depth: depth, X: x, Y: y, B: b,
			Z0: z0, Z1: z1, Z2: z2, Result: result,
		})
	}
	return result, events, nil
}
