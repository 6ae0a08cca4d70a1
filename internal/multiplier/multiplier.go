//go:generate mockgen -source=multiplier.go -destination=mocks/mock_multiplier.go -package=mocks

package multiplier

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/logging"
	"github.com/agbru/karatsuba/internal/natural"
)

// Options configures a single multiplication run.
type Options struct {
	// ParallelThreshold is the operand size in bits from which recursive
	// multipliers evaluate sub-products concurrently. 0 disables it.
	ParallelThreshold int
	// Trace requests a recursion trace in the Result, when the algorithm
	// has one.
	Trace bool
	// Progress, when non-nil, receives the completed fraction of the run.
	Progress func(float64)
	// Logger, when non-nil, receives debug events from the algorithm.
	Logger logging.Logger
}

// Result is the outcome of a successful multiplication.
type Result struct {
	Product natural.Natural
	Stats   karatsuba.Stats
	// Trace is nil unless Options.Trace was set and the algorithm records one.
	Trace *karatsuba.Trace
}

// Multiplier computes the product of two naturals.
type Multiplier interface {
	// Name returns the registry key of the algorithm.
	Name() string
	// Multiply returns x * y. It honours ctx cancellation where the
	// algorithm has suspension points.
	Multiply(ctx context.Context, x, y natural.Natural, opts Options) (Result, error)
}

// Factory creates and looks up multipliers by name.
type Factory interface {
	// Get returns the multiplier registered under name.
	Get(name string) (Multiplier, error)
	// List returns the registered names in sorted order.
	List() []string
	// Register adds or replaces a multiplier.
	Register(name string, creator func() Multiplier) error
	// GetAll returns every registered multiplier keyed by name.
	GetAll() map[string]Multiplier
}

// DefaultFactory is the standard Factory. Multipliers are created lazily
// on first use and cached. It is safe for concurrent use.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Multiplier
	cache    map[string]Multiplier
}

// extraCreators holds multipliers contributed by build-tagged files.
var extraCreators = map[string]func() Multiplier{}

// NewDefaultFactory returns a factory with the built-in multipliers:
// "karatsuba", "textbook" and "schoolbook", plus "gmp" when built with the
// gmp tag.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: map[string]func() Multiplier{
			"karatsuba":  func() Multiplier { return NewKaratsuba() },
			"textbook":   func() Multiplier { return NewTextbook() },
			"schoolbook": func() Multiplier { return NewSchoolbook() },
		},
		cache: make(map[string]Multiplier),
	}
	for name, creator := range extraCreators {
		f.creators[name] = creator
	}
	return f
}

// Get returns the multiplier registered under name.
func (f *DefaultFactory) Get(name string) (Multiplier, error) {
	f.mu.RLock()
	if m, ok := f.cache[name]; ok {
		f.mu.RUnlock()
		return m, nil
	}
	creator, ok := f.creators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown multiplier %q", name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.cache[name]; ok {
		return m, nil
	}
	m := creator()
	f.cache[name] = m
	return m, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a multiplier. A replaced multiplier is evicted
// from the cache.
func (f *DefaultFactory) Register(name string, creator func() Multiplier) error {
	if name == "" {
		return fmt.Errorf("multiplier name must not be empty")
	}
	if creator == nil {
		return fmt.Errorf("multiplier %q: creator must not be nil", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.cache, name)
	return nil
}

// GetAll returns every registered multiplier keyed by name.
func (f *DefaultFactory) GetAll() map[string]Multiplier {
	all := make(map[string]Multiplier)
	for _, name := range f.List() {
		if m, err := f.Get(name); err == nil {
			all[name] = m
		}
	}
	return all
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
