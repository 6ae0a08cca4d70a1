package karatsuba

import (
	"fmt"

	"github.com/agbru/karatsuba/internal/logging"
	"github.com/agbru/karatsuba/internal/natural"
)

// baseCaseBits is the largest bit length of the smaller operand that is
// multiplied directly. Operands 0..3 stop the recursion.
const baseCaseBits = 2

// SplitPolicy selects how the split width b is derived at each level.
type SplitPolicy int

const (
	// SplitSmaller uses half the bit length of the smaller operand.
	SplitSmaller SplitPolicy = iota
	// SplitLarger uses half the bit length of the larger operand, as in the
	// textbook formulation.
	SplitLarger
)

// String returns the policy name logged with each multiplication.
func (p SplitPolicy) String() string {
	switch p {
	case SplitSmaller:
		return "smaller"
	case SplitLarger:
		return "larger"
	default:
		return fmt.Sprintf("SplitPolicy(%d)", int(p))
	}
}

// width returns the split width for operands already ordered so that x ≤ y.
func (p SplitPolicy) width(x, y natural.Natural) uint {
	if p == SplitLarger {
		return uint(y.BitLen() / 2)
	}
	return uint(x.BitLen() / 2)
}

// ProgressFunc receives the completed fraction of a multiplication, from
// 0.0 to 1.0. Calls are serialized and never report a smaller value than
// the previous one, even when sub-products run on helper goroutines.
type ProgressFunc func(progress float64)

// Options tunes a multiplication. The zero value is a sequential
// multiplication with the SplitSmaller policy and no instrumentation.
type Options struct {
	// Split selects the split-width policy.
	Split SplitPolicy
	// ParallelThreshold is the bit length of the smaller operand from which
	// the three sub-products are evaluated concurrently. 0 disables it.
	ParallelThreshold int
	// Trace, when non-nil, receives every recursion level in pre-order.
	Trace *Trace
	// Progress, when non-nil, is called as the recursion tree completes.
	Progress ProgressFunc
	// Logger, when non-nil, receives one debug event per multiplication.
	Logger logging.Logger
}

// Stats describes the recursion tree of one multiplication.
type Stats struct {
	// Calls is the number of recursive invocations, the root included.
	Calls int64
	// BaseCases is the number of invocations answered by a direct product.
	BaseCases int64
	// Forks is the number of sub-products evaluated on a helper goroutine.
	Forks int64
	// MaxDepth is the deepest recursion level reached; the root is depth 0.
	MaxDepth int
}
