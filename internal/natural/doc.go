// Package natural provides Natural, an immutable arbitrary-precision
// non-negative integer with the small set of bit-level operations a
// divide-and-conquer multiplier needs: bit length, low/high bit-range
// extraction, left shift, addition, checked subtraction, comparison and a
// direct (non-recursive) product.
//
// Every operation returns a fresh value; receivers are never modified, so
// Naturals may be shared freely between goroutines.
package natural
