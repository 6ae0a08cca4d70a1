// Package parallel holds the small concurrency primitives shared by the
// fork-join multiplier: a first-error collector and a non-blocking
// counting semaphore.
package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by a group of
// goroutines. The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Semaphore bounds the number of helper goroutines in flight.
type Semaphore chan struct{}

// NewSemaphore returns a semaphore with n slots (at least one).
func NewSemaphore(n int) Semaphore {
	if n < 1 {
		n = 1
	}
	return make(Semaphore, n)
}

// TryAcquire takes a slot without blocking and reports whether it succeeded.
// Callers that fail to acquire run their work inline, so a saturated
// semaphore degrades to sequential execution instead of deadlocking.
func (s Semaphore) TryAcquire() bool {
	select {
	case s <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a slot taken by TryAcquire.
func (s Semaphore) Release() {
	<-s
}
