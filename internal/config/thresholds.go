package config

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flag (--threshold)
//   2. Environment variable (KARATSUBA_THRESHOLD)
//   3. Cached calibration profile (~/.karatsuba_calibration.json)
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills a zero parallel threshold with a hardware
// estimate. A user-supplied threshold is preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold estimates, without benchmarking, the
// operand size in bits from which forking sub-products pays off. The
// recursion bottoms out at 2-bit operands, so even a 512-bit sub-tree holds
// thousands of calls. Wide vector units make the word loops cheaper and
// push it up.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	var threshold int
	switch {
	case numCPU == 1:
		return 0 // No parallelism
	case numCPU <= 2:
		threshold = 4096
	case numCPU <= 4:
		threshold = 2048
	case numCPU <= 8:
		threshold = 1024
	case numCPU <= 16:
		threshold = 512
	default:
		threshold = 256
	}

	if HasWideVectors() {
		threshold *= 2
	}
	return threshold
}

// HasWideVectors reports whether the CPU has the vector extensions that
// speed up math/big word loops (AVX2 with BMI2 on amd64, ASIMD on arm64).
func HasWideVectors() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAVX2 && cpu.X86.HasBMI2
	case "arm64":
		return cpu.ARM64.HasASIMD
	}
	return false
}

// CPUFeatures lists the detected CPU extensions relevant to big-number
// arithmetic, for display.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64":
		add(cpu.X86.HasBMI2, "BMI2")
		add(cpu.X86.HasADX, "ADX")
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasAVX512F, "AVX512F")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "ASIMD")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}
