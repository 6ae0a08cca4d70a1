// Package sysmon samples system-wide CPU and memory usage for the trace
// explorer, so that a long multiplication can be watched against the load of
// the whole machine.
package sysmon

import (
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sampler reads system usage. The zero value is not usable; use NewSampler.
// A Sampler is safe for concurrent use.
type Sampler struct {
	mu          sync.Mutex
	cpuPercent  func() ([]float64, error)
	memPercent  func() (float64, error)
	lastCPU     float64
	haveLastCPU bool
}

// NewSampler returns a sampler backed by gopsutil.
func NewSampler() *Sampler {
	return &Sampler{
		// interval 0 reports the delta since the previous call.
		cpuPercent: func() ([]float64, error) { return cpu.Percent(0, false) },
		memPercent: func() (float64, error) {
			v, err := mem.VirtualMemory()
			if err != nil || v == nil {
				return 0, err
			}
			return v.UsedPercent, nil
		},
	}
}

// Sample collects one snapshot. A failed CPU read repeats the previous CPU
// value; a failed memory read reports zero.
func (s *Sampler) Sample() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out Stats
	if pcts, err := s.cpuPercent(); err == nil && len(pcts) > 0 {
		s.lastCPU, s.haveLastCPU = clamp(pcts[0]), true
	}
	if s.haveLastCPU {
		out.CPUPercent = s.lastCPU
	}
	if p, err := s.memPercent(); err == nil {
		out.MemPercent = clamp(p)
	}
	return out
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
