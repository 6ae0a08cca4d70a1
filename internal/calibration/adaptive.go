package calibration

import (
	"runtime"

	"github.com/agbru/karatsuba/internal/config"
)

// GenerateParallelThresholds returns the parallel thresholds, in bits of
// the smaller operand, tried by a full calibration. 0 (sequential) always
// comes first. Machines with more cores also try lower thresholds, since
// they can keep more forked sub-products busy.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{0}
	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 512, 1024, 2048, 4096)
	case numCPU <= 8:
		thresholds = append(thresholds, 256, 512, 1024, 2048, 4096)
	default:
		thresholds = append(thresholds, 128, 256, 512, 1024, 2048, 4096)
	}
	return thresholds
}

// GenerateQuickParallelThresholds returns the smaller set tried by
// --auto-calibrate before a run.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU == 1:
		return []int{0}
	case numCPU <= 4:
		return []int{0, 512, 1024}
	default:
		return []int{0, 256, 512}
	}
}

// EstimateOptimalParallelThreshold delegates to config.EstimateOptimalParallelThreshold.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }
