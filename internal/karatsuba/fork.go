package karatsuba

import (
	"runtime"
	"sync"

	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/parallel"
)

type operandPair struct {
	x, y natural.Natural
}

type subResult struct {
	product natural.Natural
	events  []Event
}

// taskSemaphore bounds helper goroutines across every concurrent
// multiplication in the process.
var taskSemaphore = sync.OnceValue(func() parallel.Semaphore {
	return parallel.NewSemaphore(runtime.NumCPU())
})

// shouldFork reports whether a level whose smaller operand has minBits bits
// evaluates its sub-products concurrently.
func (s *state) shouldFork(minBits int) bool {
	return s.opts.ParallelThreshold > 0 && minBits >= s.opts.ParallelThreshold
}

// subProducts evaluates z2, z0 and z3 for one level. Results are returned in
// input order whatever the scheduling, which keeps traces in pre-order.
func (s *state) subProducts(pairs [3]operandPair, depth, minBits int) ([3]subResult, error) {
	var out [3]subResult

	if !s.shouldFork(minBits) {
		for i, p := range pairs {
			product, events, err := s.mul(p.x, p.y, depth)
			if err != nil {
				return out, err
			}
			out[i] = subResult{product: product, events: events}
		}
		return out, nil
	}

	if err := s.ctx.Err(); err != nil {
		return out, err
	}

	sem := taskSemaphore()
	var wg sync.WaitGroup
	var errs parallel.ErrorCollector

	for i, p := range pairs {
		// The last sub-product always runs on the calling goroutine.
		if i == len(pairs)-1 || !sem.TryAcquire() {
			product, events, err := s.mul(p.x, p.y, depth)
			errs.SetError(err)
			out[i] = subResult{product: product, events: events}
			continue
		}
		s.forks.Add(1)
		wg.Add(1)
		go func(i int, p operandPair) {
			defer wg.Done()
			defer sem.Release()
			product, events, err := s.mul(p.x, p.y, depth)
			errs.SetError(err)
			out[i] = subResult{product: product, events: events}
		}(i, p)
	}
	wg.Wait()

	if err := errs.Err(); err != nil {
		return out, err
	}
	return out, nil
}
