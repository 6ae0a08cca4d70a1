package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/orchestration"
)

func sampleRun() (natural.Natural, natural.Natural, orchestration.CalculationResult) {
	x, y := natural.FromUint64(5), natural.FromUint64(11)
	return x, y, orchestration.CalculationResult{
		Name:     "karatsuba",
		Product:  natural.FromUint64(55),
		Stats:    karatsuba.Stats{Calls: 4, BaseCases: 3, MaxDepth: 1},
		Duration: 100 * time.Millisecond,
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write product to file",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("failed to read output file: %v", err)
				}
				for _, want := range []string{"# Algorithm: karatsuba", "# Operand bits: 3 x 4", "# Recursive calls: 4", "x =\n5\n", "y =\n11\n", "x * y =\n55\n"} {
					if !strings.Contains(string(content), want) {
						t.Errorf("file should contain %q, got:\n%s", want, content)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("file should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			x, y, res := sampleRun()
			if err := WriteResultToFile(x, y, res, OutputConfig{OutputFile: tc.outputFile}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteResultToFileError(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	x, y, res := sampleRun()
	// A regular file cannot be used as a parent directory.
	if err := WriteResultToFile(x, y, res, OutputConfig{OutputFile: filepath.Join(blocker, "out.txt")}); err == nil {
		t.Error("expected an error when the parent is a file")
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	if got := FormatQuietResult(natural.MustParse("123456789012345678901234567890")); got != "123456789012345678901234567890" {
		t.Errorf("FormatQuietResult = %q", got)
	}
	if got := FormatQuietResult(natural.Zero()); got != "0" {
		t.Errorf("FormatQuietResult(0) = %q", got)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, natural.FromUint64(55))
	if buf.String() != "55\n" {
		t.Errorf("DisplayQuietResult = %q, want %q", buf.String(), "55\n")
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		config   OutputConfig
		contains []string
		exact    string
	}{
		{
			name:   "Quiet",
			config: OutputConfig{Quiet: true},
			exact:  "55\n",
		},
		{
			name:     "Standard with value",
			config:   OutputConfig{ShowValue: true, Details: true},
			contains: []string{"Product binary size: 6 bits (3 x 4)", "x * y = 55", "Recursive calls"},
		},
		{
			name:     "Saved to file",
			config:   OutputConfig{OutputFile: filepath.Join(tmpDir, "out.txt")},
			contains: []string{"Result saved to:", "out.txt"},
		},
		{
			name:   "Quiet saved to file",
			config: OutputConfig{Quiet: true, OutputFile: filepath.Join(tmpDir, "quiet.txt")},
			exact:  "55\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			x, y, res := sampleRun()
			if err := DisplayResultWithConfig(&buf, x, y, res, tt.config); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.exact != "" && buf.String() != tt.exact {
				t.Errorf("output = %q, want %q", buf.String(), tt.exact)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output should contain %q, got:\n%s", s, buf.String())
				}
			}
			if tt.config.OutputFile != "" {
				if _, err := os.Stat(tt.config.OutputFile); err != nil {
					t.Errorf("output file not written: %v", err)
				}
			}
		})
	}
}
