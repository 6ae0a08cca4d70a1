package multiplier

import (
	"context"

	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/natural"
)

// Recursive runs the recursive Karatsuba multiplier with a fixed split
// policy.
type Recursive struct {
	name  string
	split karatsuba.SplitPolicy
}

// NewKaratsuba returns the multiplier that splits at half the bit length of
// the smaller operand.
func NewKaratsuba() *Recursive {
	return &Recursive{name: "karatsuba", split: karatsuba.SplitSmaller}
}

// NewTextbook returns the multiplier that splits at half the bit length of
// the larger operand.
func NewTextbook() *Recursive {
	return &Recursive{name: "textbook", split: karatsuba.SplitLarger}
}

// Name returns the registry key.
func (r *Recursive) Name() string { return r.name }

// Multiply returns x * y with recursion statistics and, on request, a trace.
func (r *Recursive) Multiply(ctx context.Context, x, y natural.Natural, opts Options) (Result, error) {
	kopts := karatsuba.Options{
		Split:             r.split,
		ParallelThreshold: opts.ParallelThreshold,
		Progress:          opts.Progress,
		Logger:            opts.Logger,
	}
	if opts.Trace {
		kopts.Trace = karatsuba.NewTrace()
	}

	product, stats, err := karatsuba.MultiplyContext(ctx, x, y, kopts)
	if err != nil {
		if !apperrors.IsContextError(err) {
			err = apperrors.CalculationError{Cause: err}
		}
		return Result{}, err
	}
	return Result{Product: product, Stats: stats, Trace: kopts.Trace}, nil
}

// Schoolbook multiplies with a single direct product. It is the reference
// the recursive multipliers are compared against.
type Schoolbook struct{}

// NewSchoolbook returns the direct-product multiplier.
func NewSchoolbook() Schoolbook { return Schoolbook{} }

// Name returns the registry key.
func (Schoolbook) Name() string { return "schoolbook" }

// Multiply returns x * y. It reports a single base-case call.
func (Schoolbook) Multiply(ctx context.Context, x, y natural.Natural, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	product := x.MulDirect(y)
	if opts.Progress != nil {
		opts.Progress(1.0)
	}
	return Result{Product: product, Stats: karatsuba.Stats{Calls: 1, BaseCases: 1}}, nil
}
