package main

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"
)

func TestOracleHelpers(t *testing.T) {
	tests := []struct {
		name     string
		got      *big.Int
		expected string
	}{
		{"2^8 - 1", mersenne(8), "255"},
		{"2^64 - 1", mersenne(64), "18446744073709551615"},
		{"0xaaaa", repeatByte(0xaa, 2), "43690"},
		{"10!", factorial(10), "3628800"},
		{"10^5", pow10(5), "100000"},
		{"12 * 11", mulBig(big.NewInt(12), big.NewInt(11)), "132"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.String() != tt.expected {
				t.Errorf("got %s, want %s", tt.got, tt.expected)
			}
		})
	}
}

// TestVectors_Consistent re-checks every generated vector.
func TestVectors_Consistent(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range vectors() {
		if seen[v.Name] {
			t.Errorf("duplicate vector name %q", v.Name)
		}
		seen[v.Name] = true

		x, okX := new(big.Int).SetString(v.X, 10)
		y, okY := new(big.Int).SetString(v.Y, 10)
		p, okP := new(big.Int).SetString(v.Product, 10)
		if !okX || !okY || !okP {
			t.Fatalf("%s: vector is not decimal", v.Name)
		}
		if x.Sign() < 0 || y.Sign() < 0 {
			t.Errorf("%s: negative operand", v.Name)
		}
		if mulBig(x, y).Cmp(p) != 0 {
			t.Errorf("%s: product mismatch", v.Name)
		}
	}
}

func TestWriteVectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	if err := writeVectors(path, vectors()); err != nil {
		t.Fatalf("writeVectors: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got []Vector
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != len(vectors()) {
		t.Fatalf("got %d vectors, want %d", len(got), len(vectors()))
	}
	if got[4].Name != "twelve by eleven" || got[4].Product != "132" {
		t.Errorf("unexpected vector: %+v", got[4])
	}

	if err := writeVectors(filepath.Join(t.TempDir(), "missing", "golden.json"), nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

// The checked-in vectors must match what the generator produces today.
func TestCheckedInVectorsUpToDate(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", "karatsuba", "testdata", "golden.json"))
	if err != nil {
		t.Skipf("golden file not available: %v", err)
	}
	var got []Vector
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := vectors()
	if len(got) != len(want) {
		t.Fatalf("golden file has %d vectors, generator %d; rerun generate-golden", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vector %d (%s) is stale; rerun generate-golden", i, want[i].Name)
		}
	}
}
