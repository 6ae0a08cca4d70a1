package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/progress"
)

// stubMultiplier simulates various multiplier behaviors for deadlock testing.
type stubMultiplier struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *stubMultiplier) Multiply(ctx context.Context, x, y natural.Natural, opts multiplier.Options) (multiplier.Result, error) {
	product := multiplier.Result{Product: natural.FromUint64(1)}
	switch m.behavior {
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return multiplier.Result{}, ctx.Err()
			default:
			}
			opts.Progress(float64(i) / 100.0)
			time.Sleep(m.delay)
		}
	case "error":
		return multiplier.Result{}, fmt.Errorf("simulated error")
	case "progress_flood":
		for i := 0; i < 10000; i++ {
			opts.Progress(float64(i) / 10000.0)
		}
		opts.Progress(1.0)
	}
	return product, nil
}

func (m *stubMultiplier) Name() string { return m.name }

// slowProgressReporter drains the channel with a delay per update.
type slowProgressReporter struct{}

func (slowProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		time.Sleep(10 * time.Microsecond)
	}
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that
// ExecuteMultiplications completes under various multiplier behaviors.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name        string
		multipliers []multiplier.Multiplier
	}{
		{
			name: "all_instant",
			multipliers: []multiplier.Multiplier{
				&stubMultiplier{name: "m1", behavior: "instant"},
				&stubMultiplier{name: "m2", behavior: "instant"},
				&stubMultiplier{name: "m3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			multipliers: []multiplier.Multiplier{
				&stubMultiplier{name: "fast", behavior: "instant"},
				&stubMultiplier{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors",
			multipliers: []multiplier.Multiplier{
				&stubMultiplier{name: "ok", behavior: "instant"},
				&stubMultiplier{name: "err", behavior: "error"},
			},
		},
		{
			name: "progress_flood",
			multipliers: []multiplier.Multiplier{
				&stubMultiplier{name: "flood1", behavior: "progress_flood"},
				&stubMultiplier{name: "flood2", behavior: "progress_flood"},
			},
		},
		{
			name: "single_multiplier",
			multipliers: []multiplier.Multiplier{
				&stubMultiplier{name: "solo", behavior: "instant"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteMultiplications(ctx, tc.multipliers, natural.FromUint64(2), natural.FromUint64(3), multiplier.Options{}, slowProgressReporter{}, nil, io.Discard)
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteMultiplications did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ms := []multiplier.Multiplier{
		&stubMultiplier{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&stubMultiplier{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	}

	done := make(chan struct{})
	var results []CalculationResult
	go func() {
		defer close(done)
		results = ExecuteMultiplications(ctx, ms, natural.FromUint64(2), natural.FromUint64(3), multiplier.Options{}, NullProgressReporter{}, nil, io.Discard)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("%s completed despite cancellation", r.Name)
		}
	}
}
