//go:build gmp

package multiplier

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/karatsuba/internal/karatsuba"
	"github.com/agbru/karatsuba/internal/natural"
)

func init() {
	extraCreators["gmp"] = func() Multiplier { return GMP{} }
}

// GMP multiplies with the GNU Multiple Precision library. It is only
// available in binaries built with the gmp tag.
type GMP struct{}

// Name returns the registry key.
func (GMP) Name() string { return "gmp" }

// Multiply returns x * y computed by mpz_mul.
func (GMP) Multiply(ctx context.Context, x, y natural.Natural, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	gx := new(gmp.Int).SetBytes(x.Big().Bytes())
	gy := new(gmp.Int).SetBytes(y.Big().Bytes())
	gz := new(gmp.Int).Mul(gx, gy)

	product, err := natural.FromBig(new(big.Int).SetBytes(gz.Bytes()))
	if err != nil {
		return Result{}, err
	}
	if opts.Progress != nil {
		opts.Progress(1.0)
	}
	return Result{Product: product, Stats: karatsuba.Stats{Calls: 1, BaseCases: 1}}, nil
}
