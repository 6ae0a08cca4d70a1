// Command generate-golden writes the golden product vectors used by the
// karatsuba package tests. Products are computed with math/big, which keeps
// the vectors independent of the code under test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
)

// Vector is one golden test case. Operands and product are decimal strings.
type Vector struct {
	Name    string `json:"name"`
	X       string `json:"x"`
	Y       string `json:"y"`
	Product string `json:"product"`
}

func main() {
	out := flag.String("out", "internal/karatsuba/testdata/golden.json", "Destination of the golden vectors.")
	flag.Parse()

	if err := writeVectors(*out, vectors()); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}

func writeVectors(path string, vs []Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// mulBig is the oracle product.
func mulBig(x, y *big.Int) *big.Int {
	return new(big.Int).Mul(x, y)
}

// mersenne returns 2^k - 1.
func mersenne(k uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), k)
	return m.Sub(m, big.NewInt(1))
}

// repeatByte returns the integer whose n bytes all equal b.
func repeatByte(b byte, n int) *big.Int {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return new(big.Int).SetBytes(buf)
}

func factorial(n int64) *big.Int {
	return new(big.Int).MulRange(1, n)
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func vectors() []Vector {
	type pair struct {
		name string
		x, y *big.Int
	}
	pairs := []pair{
		{"zero", big.NewInt(0), big.NewInt(0)},
		{"zero times one", big.NewInt(0), big.NewInt(1)},
		{"one", big.NewInt(1), big.NewInt(1)},
		{"five by six", big.NewInt(5), big.NewInt(6)},
		{"twelve by eleven", big.NewInt(12), big.NewInt(11)},
		{"three by hundred", big.NewInt(3), big.NewInt(100)},
		{"four by hundred", big.NewInt(4), big.NewInt(100)},
		{"mersenne 64 squared", mersenne(64), mersenne(64)},
		{"mersenne 127 squared", mersenne(127), mersenne(127)},
		{"mersenne 521 squared", mersenne(521), mersenne(521)},
		{"mersenne 1279 squared", mersenne(1279), mersenne(1279)},
		{"alternating bits", repeatByte(0xaa, 96), repeatByte(0x55, 96)},
		{"powers of ten", pow10(50), new(big.Int).Add(pow10(80), big.NewInt(1))},
		{"unbalanced", big.NewInt(3), mersenne(2048)},
		{"factorials", factorial(50), factorial(60)},
	}

	out := make([]Vector, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Vector{
			Name:    p.name,
			X:       p.x.String(),
			Y:       p.y.String(),
			Product: mulBig(p.x, p.y).String(),
		})
	}
	return out
}
