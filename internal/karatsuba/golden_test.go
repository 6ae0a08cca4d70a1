package karatsuba

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/agbru/karatsuba/internal/natural"
)

type goldenVector struct {
	Name    string `json:"name"`
	X       string `json:"x"`
	Y       string `json:"y"`
	Product string `json:"product"`
}

func loadGolden(t *testing.T) []goldenVector {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "golden.json"))
	if err != nil {
		t.Fatalf("reading golden vectors: %v", err)
	}
	var vs []goldenVector
	if err := json.Unmarshal(data, &vs); err != nil {
		t.Fatalf("decoding golden vectors: %v", err)
	}
	return vs
}

// TestGoldenVectors checks products generated by cmd/generate-golden under
// both split policies, sequentially and in parallel.
func TestGoldenVectors(t *testing.T) {
	t.Parallel()
	configs := []struct {
		name string
		opts Options
	}{
		{"smaller", Options{}},
		{"larger", Options{Split: SplitLarger}},
		{"parallel", Options{ParallelThreshold: 256}},
	}

	for _, v := range loadGolden(t) {
		x, y, want := natural.MustParse(v.X), natural.MustParse(v.Y), natural.MustParse(v.Product)
		for _, c := range configs {
			t.Run(v.Name+"/"+c.name, func(t *testing.T) {
				t.Parallel()
				got, _, err := MultiplyContext(context.Background(), x, y, c.opts)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !got.Equal(want) {
					t.Errorf("product mismatch:\n got %s\nwant %s", got, want)
				}
			})
		}
	}
}
