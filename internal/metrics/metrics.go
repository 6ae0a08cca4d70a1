package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/karatsuba/internal/karatsuba"
)

const namespace = "karatsuba"

// Run status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the collectors of one process. Each instance owns its
// registry, so instances never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	calls        *prometheus.GaugeVec
	baseCases    *prometheus.GaugeVec
	forks        *prometheus.GaugeVec
	maxDepth     *prometheus.GaugeVec
	operandBits  *prometheus.GaugeVec
	heapAlloc    prometheus.Gauge
	heapObjects  prometheus.Gauge
	gcPauseTotal prometheus.Gauge
}

// New creates a Metrics with all collectors registered, including the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "multiplications_total",
			Help:      "Number of multiplications run, by algorithm and status.",
		}, []string{"algorithm", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "multiplication_duration_seconds",
			Help:      "Wall-clock duration of successful multiplications.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"algorithm"}),
		calls: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recursion_calls",
			Help:      "Recursive invocations of the last multiplication.",
		}, []string{"algorithm"}),
		baseCases: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recursion_base_cases",
			Help:      "Direct products of the last multiplication.",
		}, []string{"algorithm"}),
		forks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recursion_forks",
			Help:      "Sub-products evaluated on helper goroutines in the last multiplication.",
		}, []string{"algorithm"}),
		maxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recursion_max_depth",
			Help:      "Deepest recursion level of the last multiplication.",
		}, []string{"algorithm"}),
		operandBits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operand_bits",
			Help:      "Bit length of the operands of the last multiplication.",
		}, []string{"operand"}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use after the last multiplication.",
		}),
		heapObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_objects",
			Help:      "Allocated heap objects after the last multiplication.",
		}),
		gcPauseTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_pause_total_seconds",
			Help:      "Cumulative GC pause time after the last multiplication.",
		}),
	}

	m.registry.MustRegister(
		m.runs, m.duration,
		m.calls, m.baseCases, m.forks, m.maxDepth,
		m.operandBits,
		m.heapAlloc, m.heapObjects, m.gcPauseTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperands records the bit lengths of the operands.
func (m *Metrics) RecordOperands(xBits, yBits int) {
	m.operandBits.WithLabelValues("x").Set(float64(xBits))
	m.operandBits.WithLabelValues("y").Set(float64(yBits))
}

// RecordRun records the outcome of one multiplier run. Recursion gauges and
// the duration histogram are only updated for successful runs.
func (m *Metrics) RecordRun(algorithm string, d time.Duration, stats karatsuba.Stats, err error) {
	if err != nil {
		m.runs.WithLabelValues(algorithm, StatusError).Inc()
		return
	}
	m.runs.WithLabelValues(algorithm, StatusSuccess).Inc()
	m.duration.WithLabelValues(algorithm).Observe(d.Seconds())
	m.calls.WithLabelValues(algorithm).Set(float64(stats.Calls))
	m.baseCases.WithLabelValues(algorithm).Set(float64(stats.BaseCases))
	m.forks.WithLabelValues(algorithm).Set(float64(stats.Forks))
	m.maxDepth.WithLabelValues(algorithm).Set(float64(stats.MaxDepth))
}

// RecordMemory copies a memory snapshot into the heap gauges.
func (m *Metrics) RecordMemory(s MemorySnapshot) {
	m.heapAlloc.Set(float64(s.HeapAlloc))
	m.heapObjects.Set(float64(s.HeapObjects))
	m.gcPauseTotal.Set(time.Duration(s.PauseTotalNs).Seconds())
}

// WriteTextfile writes the registry in the text exposition format to path,
// atomically, for collection by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
