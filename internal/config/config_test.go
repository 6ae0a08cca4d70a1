package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/karatsuba/internal/errors"
)

var testAlgos = []string{"karatsuba", "schoolbook", "textbook"}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("karatsuba", []string{"-x", "5", "-y", "6"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Algo != DefaultAlgo {
		t.Errorf("Algo = %q, want %q", cfg.Algo, DefaultAlgo)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Seed != DefaultSeed || cfg.Threshold != 0 || cfg.Quiet {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{
		"-x", "0xff", "--y-bits", "4096", "--seed", "9",
		"--algo", "ALL", "--threshold", "2048", "--timeout", "30s",
		"-v", "-d", "-c", "-o", "out.txt", "--trace", "--memory-limit", "1G",
	}
	cfg, err := ParseConfig("karatsuba", args, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.X != "0xff" || cfg.YBits != 4096 || cfg.Seed != 9 {
		t.Errorf("operands not parsed: %+v", cfg)
	}
	if cfg.Algo != "all" || cfg.Threshold != 2048 || cfg.Timeout != 30*time.Second {
		t.Errorf("execution flags not parsed: %+v", cfg)
	}
	if !cfg.Verbose || !cfg.Details || !cfg.ShowValue || !cfg.Trace || cfg.OutputFile != "out.txt" {
		t.Errorf("switches not parsed: %+v", cfg)
	}
	if opts := cfg.ToMultiplierOptions(); opts.ParallelThreshold != 2048 || !opts.Trace {
		t.Errorf("ToMultiplierOptions = %+v", opts)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown algorithm", []string{"-x", "1", "-y", "2", "--algo", "toom3"}},
		{"bad base", []string{"-x", "1", "-y", "2", "--base", "1"}},
		{"negative threshold", []string{"-x", "1", "-y", "2", "--threshold", "-1"}},
		{"zero timeout", []string{"-x", "1", "-y", "2", "--timeout", "0s"}},
		{"operand twice", []string{"-x", "1", "--x-bits", "8", "-y", "2"}},
		{"missing x", []string{"-y", "2"}},
		{"missing y", []string{"-x", "2"}},
		{"quiet and verbose", []string{"-x", "1", "-y", "2", "-q", "-v"}},
		{"quiet and tui", []string{"-x", "1", "-y", "2", "-q", "--tui"}},
		{"bad memory limit", []string{"-x", "1", "-y", "2", "--memory-limit", "lots"}},
		{"unknown flag", []string{"--frobnicate"}},
		{"positional argument", []string{"-x", "1", "-y", "2", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("karatsuba", tt.args, io.Discard, testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("err = %v, want ConfigError", err)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := ParseConfig("karatsuba", []string{"-h"}, io.Discard, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
}

func TestModesNeedNoOperands(t *testing.T) {
	for _, args := range [][]string{
		{"--calibrate"},
		{"--version"},
		{"-i"},
		{"--completion", "zsh"},
	} {
		if _, err := ParseConfig("karatsuba", args, io.Discard, testAlgos); err != nil {
			t.Errorf("ParseConfig(%v): unexpected error: %v", args, err)
		}
	}
}

// Environment tests use t.Setenv and therefore cannot run in parallel.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("KARATSUBA_X_BITS", "128")
	t.Setenv("KARATSUBA_Y", "77")
	t.Setenv("KARATSUBA_ALGO", "textbook")
	t.Setenv("KARATSUBA_THRESHOLD", "4096")
	t.Setenv("KARATSUBA_TIMEOUT", "1m")
	t.Setenv("KARATSUBA_DETAILS", "yes")
	t.Setenv("KARATSUBA_METRICS_OUT", "/tmp/k.prom")

	cfg, err := ParseConfig("karatsuba", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.XBits != 128 || cfg.Y != "77" || cfg.Algo != "textbook" {
		t.Errorf("env operands/algo not applied: %+v", cfg)
	}
	if cfg.Threshold != 4096 || cfg.Timeout != time.Minute || !cfg.Details || cfg.MetricsOut != "/tmp/k.prom" {
		t.Errorf("env execution values not applied: %+v", cfg)
	}
}

func TestFlagBeatsEnv(t *testing.T) {
	t.Setenv("KARATSUBA_ALGO", "textbook")
	t.Setenv("KARATSUBA_VERBOSE", "true")

	cfg, err := ParseConfig("karatsuba", []string{"-x", "1", "-y", "1", "--algo", "schoolbook", "--verbose=false"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Algo != "schoolbook" {
		t.Errorf("Algo = %q, want schoolbook", cfg.Algo)
	}
	if cfg.Verbose {
		t.Error("explicit --verbose=false was overridden by the environment")
	}
}

func TestInvalidEnvValueIgnored(t *testing.T) {
	t.Setenv("KARATSUBA_THRESHOLD", "many")
	t.Setenv("KARATSUBA_QUIET", "perhaps")

	cfg, err := ParseConfig("karatsuba", []string{"-x", "1", "-y", "1"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threshold != 0 || cfg.Quiet {
		t.Errorf("invalid env values applied: %+v", cfg)
	}
}

func TestOperands(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{X: "ff", Base: 16, YBits: 300, Seed: 3}
	x, y, err := cfg.Operands()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x.String() != "255" {
		t.Errorf("x = %s, want 255", x)
	}
	if y.BitLen() != 300 {
		t.Errorf("y has %d bits, want 300", y.BitLen())
	}

	_, y2, _ := cfg.Operands()
	if !y.Equal(y2) {
		t.Error("same seed produced different operands")
	}

	if _, _, err := (AppConfig{X: "-5", Y: "1"}).Operands(); err == nil {
		t.Error("negative operand accepted")
	}
}

func TestParseMemoryLimit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"512M", 512 << 20, false},
		{"8g", 8 << 30, false},
		{"2GiB", 2 << 30, false},
		{"16 KB", 16 << 10, false},
		{"1T", 1 << 40, false},
		{"100B", 100, false},
		{"", 0, true},
		{"0", 0, true},
		{"-1G", 0, true},
		{"many", 0, true},
		{"99999999999999999999T", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMemoryLimit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMemoryLimit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		var valErr apperrors.ValidationError
		if err != nil && (!errors.As(err, &valErr) || valErr.Field != "memory-limit") {
			t.Errorf("ParseMemoryLimit(%q) error = %#v, want a memory-limit ValidationError", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMemoryLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestApplyAdaptiveThresholds(t *testing.T) {
	t.Parallel()
	if got := ApplyAdaptiveThresholds(AppConfig{Threshold: 1234}); got.Threshold != 1234 {
		t.Errorf("user threshold overwritten: %d", got.Threshold)
	}
	got := ApplyAdaptiveThresholds(AppConfig{})
	if got.Threshold != EstimateOptimalParallelThreshold() {
		t.Errorf("Threshold = %d, want estimate %d", got.Threshold, EstimateOptimalParallelThreshold())
	}
	if got.Threshold < 0 {
		t.Errorf("negative estimate %d", got.Threshold)
	}
}

func TestCPUFeaturesConsistent(t *testing.T) {
	t.Parallel()
	features := CPUFeatures()
	if HasWideVectors() && len(features) == 0 {
		t.Error("wide vectors detected but no features listed")
	}
}
