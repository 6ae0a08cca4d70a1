//go:build gmp

package multiplier

import (
	"context"
	"testing"

	"github.com/agbru/karatsuba/internal/natural"
)

func TestGMPRegistered(t *testing.T) {
	t.Parallel()
	m, err := NewDefaultFactory().Get("gmp")
	if err != nil {
		t.Fatalf("Get(gmp): %v", err)
	}
	x := natural.MustParse("340282366920938463463374607431768211457")
	y := natural.MustParse("18446744073709551629")
	res, err := m.Multiply(context.Background(), x, y, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Product.Equal(x.MulDirect(y)) {
		t.Errorf("gmp product = %s", res.Product)
	}
}
