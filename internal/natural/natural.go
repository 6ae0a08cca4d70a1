package natural

import (
	"math/big"
	"math/bits"
	"math/rand/v2"
	"strings"
)

// wordBits is the width of a big.Word on the host.
const wordBits = bits.UintSize

// bigZero backs the zero value. It is never written to.
var bigZero = new(big.Int)

// Natural is an immutable non-negative integer of arbitrary size.
// The zero value is 0 and ready to use.
type Natural struct {
	v *big.Int
}

// Zero returns the Natural 0.
func Zero() Natural { return Natural{} }

// FromUint64 returns the Natural with value u.
func FromUint64(u uint64) Natural {
	return Natural{v: new(big.Int).SetUint64(u)}
}

// FromBig returns a Natural holding a copy of b. A nil b is treated as 0.
// Negative values are rejected with an InvalidOperandError.
func FromBig(b *big.Int) (Natural, error) {
	if b == nil {
		return Zero(), nil
	}
	if b.Sign() < 0 {
		return Natural{}, InvalidOperandError{Value: b.String(), Reason: "must be non-negative"}
	}
	return Natural{v: new(big.Int).Set(b)}, nil
}

// Parse converts s to a Natural using the conventions of big.Int.SetString:
// base 0 accepts the 0b, 0o and 0x prefixes and underscore separators.
// Surrounding whitespace is ignored.
func Parse(s string, base int) (Natural, error) {
	text := strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(text, base)
	if !ok {
		return Natural{}, InvalidOperandError{Value: s, Reason: "not an integer"}
	}
	if v.Sign() < 0 {
		return Natural{}, InvalidOperandError{Value: s, Reason: "must be non-negative"}
	}
	return Natural{v: v}, nil
}

// MustParse is like Parse with base 0 but panics on error.
// It is intended for constants in tests and examples.
func MustParse(s string) Natural {
	n, err := Parse(s, 0)
	if err != nil {
		panic(err)
	}
	return n
}

// Random returns a pseudo-random Natural drawn from r with exactly n bits,
// that is with bit n-1 set. Random(r, 0) is 0.
func Random(r *rand.Rand, n int) Natural {
	if n <= 0 {
		return Zero()
	}
	v := new(big.Int)
	for v.BitLen() < n {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(r.Uint64()))
	}
	v.Rsh(v, uint(v.BitLen()-n))
	v.SetBit(v, n-1, 1)
	return Natural{v: v}
}

func (x Natural) big() *big.Int {
	if x.v == nil {
		return bigZero
	}
	return x.v
}

// Big returns a copy of x as a *big.Int.
func (x Natural) Big() *big.Int {
	return new(big.Int).Set(x.big())
}

// BitLen returns the smallest n such that x < 2^n. BitLen of 0 is 0.
func (x Natural) BitLen() int {
	return x.big().BitLen()
}

// IsZero reports whether x == 0.
func (x Natural) IsZero() bool {
	return x.big().Sign() == 0
}

// Low returns x mod 2^b, the low b bits of x.
// When b is at least BitLen, x is returned unchanged.
func (x Natural) Low(b uint) Natural {
	if b >= uint(x.BitLen()) {
		return x
	}
	words := x.big().Bits()
	n := int(b / wordBits)
	r := b % wordBits

	out := make([]big.Word, n, n+1)
	copy(out, words[:n])
	if r != 0 {
		out = append(out, words[n]&(big.Word(1)<<r-1))
	}
	return Natural{v: new(big.Int).SetBits(out)}
}

// High returns x div 2^b, the bits of x above the low b bits.
// For every b, x == High(b)*2^b + Low(b).
func (x Natural) High(b uint) Natural {
	if b == 0 {
		return x
	}
	return Natural{v: new(big.Int).Rsh(x.big(), b)}
}

// Lsh returns x * 2^b.
func (x Natural) Lsh(b uint) Natural {
	if b == 0 || x.IsZero() {
		return x
	}
	return Natural{v: new(big.Int).Lsh(x.big(), b)}
}

// Add returns x + y.
func (x Natural) Add(y Natural) Natural {
	return Natural{v: new(big.Int).Add(x.big(), y.big())}
}

// Sub returns x - y. It fails with an UnderflowError when x < y; the result
// is never wrapped or clamped.
func (x Natural) Sub(y Natural) (Natural, error) {
	if x.Cmp(y) < 0 {
		return Natural{}, UnderflowError{Minuend: x.String(), Subtrahend: y.String()}
	}
	return Natural{v: new(big.Int).Sub(x.big(), y.big())}, nil
}

// MulDirect returns x * y computed in one step, without recursive
// decomposition. It is the primitive used at the base of a recursive
// multiplier and as an independent reference product.
func (x Natural) MulDirect(y Natural) Natural {
	return Natural{v: new(big.Int).Mul(x.big(), y.big())}
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Natural) Cmp(y Natural) int {
	return x.big().Cmp(y.big())
}

// Equal reports whether x == y.
func (x Natural) Equal(y Natural) bool {
	return x.Cmp(y) == 0
}

// String returns the decimal representation of x.
func (x Natural) String() string {
	return x.big().String()
}

// Text returns the representation of x in the given base (2..62).
func (x Natural) Text(base int) string {
	return x.big().Text(base)
}

// Binary returns the base-2 representation of x left-padded with zeros to
// at least width digits.
func (x Natural) Binary(width int) string {
	s := x.big().Text(2)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
