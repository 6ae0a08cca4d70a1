package karatsuba

import (
	"math"
	"sync"
)

// progressDepth is the deepest level whose completion is reported. Each
// level below the root carries a third of its parent's weight, so the
// reported fraction has a resolution of 3^-progressDepth.
const progressDepth = 6

// progressTracker accumulates the weight of completed recursion nodes. A
// node counts when it is a base case at or above progressDepth, or any
// node exactly at progressDepth; every root-to-leaf path crosses exactly one
// such node, so the weights sum to 1.
type progressTracker struct {
	mu       sync.Mutex
	done     float64
	callback ProgressFunc
}

func newProgressTracker(cb ProgressFunc) *progressTracker {
	return &progressTracker{callback: cb}
}

// complete records the end of a node at the given depth. It is a no-op on a
// nil tracker.
func (p *progressTracker) complete(depth int, base bool) {
	if p == nil || depth > progressDepth {
		return
	}
	if !base && depth != progressDepth {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += math.Pow(3, -float64(depth))
	p.callback(math.Min(p.done, 1.0))
}
